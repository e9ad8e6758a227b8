package fix_test

import (
	"testing"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/fix"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/geometry"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/rope"
)

const sample = "The quick brown fox jumps over the lazy dog."

func loc(start, end int) geometry.DenormalizedLocation {
	return geometry.LocationFromOffsets(geometry.AdjustedOffset(start), geometry.AdjustedOffset(end), rope.FromString(sample))
}

func ins(at int, text string) fix.Correction { return fix.NewInsert(loc(at, at), text) }
func del(start, end int) fix.Correction      { return fix.NewDelete(loc(start, end)) }
func rep(start, end int, text string) fix.Correction {
	return fix.NewReplace(loc(start, end), text)
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b fix.Correction
		want int
	}{
		{"inserts ordered by point", ins(1, "a"), ins(3, "b"), -1},
		{"inserts at same point collide", ins(3, "a"), ins(3, "b"), 0},
		{"insert inside delete", ins(5, "x"), del(4, 9), 0},
		{"insert at delete start", ins(4, "x"), del(4, 9), 0},
		{"insert at delete end", ins(9, "x"), del(4, 9), 1},
		{"insert before replace", ins(2, "x"), rep(4, 9, "y"), -1},
		{"replace containing insert", rep(4, 9, "y"), ins(5, "x"), 0},
		{"disjoint deletes", del(0, 3), del(4, 9), -1},
		{"adjacent deletes", del(0, 4), del(4, 9), -1},
		{"overlapping deletes", del(0, 5), del(4, 9), 0},
		{"overlap reversed", del(4, 9), del(0, 5), 0},
		{"later replace", rep(10, 15, "a"), del(0, 3), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fix.Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestChooseOrMerge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		a, b   fix.Correction
		want   fix.Correction
		wantOK bool
	}{
		{"insert insert rejected", ins(3, "a"), ins(3, "b"), fix.Correction{}, false},
		{"insert delete keeps delete", ins(5, "x"), del(4, 9), del(4, 9), true},
		{"delete insert keeps delete", del(4, 9), ins(5, "x"), del(4, 9), true},
		{"insert replace keeps replace", ins(5, "x"), rep(4, 9, "y"), rep(4, 9, "y"), true},
		{"deletes merge", del(0, 5), del(4, 9), del(0, 9), true},
		{"nested deletes merge", del(4, 9), del(5, 6), del(4, 9), true},
		{"delete containing replace", del(0, 10), rep(2, 4, "z"), del(0, 10), true},
		{"replace containing delete", rep(0, 10, "z"), del(2, 4), rep(0, 10, "z"), true},
		{"delete replace partial overlap", del(0, 5), rep(4, 9, "z"), fix.Correction{}, false},
		{"replace wraps replace", rep(2, 4, "a"), rep(0, 10, "b"), rep(0, 10, "b"), true},
		{"replace shares start", rep(0, 4, "a"), rep(0, 10, "b"), fix.Correction{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := fix.ChooseOrMerge(tt.a, tt.b)
			if ok != tt.wantOK {
				t.Fatalf("ChooseOrMerge ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ChooseOrMerge = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPlan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		corrections []fix.Correction
		want        []fix.Correction
	}{
		{
			name: "empty",
		},
		{
			name:        "disjoint corrections in descending order",
			corrections: []fix.Correction{rep(0, 3, "A"), del(4, 10), ins(20, "!")},
			want:        []fix.Correction{ins(20, "!"), del(4, 10), rep(0, 3, "A")},
		},
		{
			name:        "conflicting inserts dropped",
			corrections: []fix.Correction{ins(3, "a"), ins(3, "b"), del(10, 12)},
			want:        []fix.Correction{del(10, 12)},
		},
		{
			name:        "overlapping deletes merged",
			corrections: []fix.Correction{del(4, 9), del(0, 5)},
			want:        []fix.Correction{del(0, 9)},
		},
		{
			name:        "merge cascades into previous delete",
			corrections: []fix.Correction{del(8, 12), del(4, 6), del(0, 9)},
			want:        []fix.Correction{del(0, 12)},
		},
		{
			name:        "partial replace overlap drops both",
			corrections: []fix.Correction{rep(0, 5, "a"), rep(4, 9, "b"), ins(30, "c")},
			want:        []fix.Correction{ins(30, "c")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fix.Plan(tt.corrections)
			if len(got) != len(tt.want) {
				t.Fatalf("Plan() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Plan()[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
			if err := fix.DetectConflicts(got); err != nil {
				t.Errorf("planned corrections conflict: %v", err)
			}
		})
	}
}

func TestPlan_Idempotent(t *testing.T) {
	t.Parallel()

	corrections := []fix.Correction{
		rep(0, 3, "A"), del(2, 6), ins(10, "x"), ins(10, "y"), del(15, 20), rep(16, 18, "zz"), del(30, 35), del(34, 40),
	}

	once := fix.Plan(corrections)
	twice := fix.Plan(once)
	if len(once) != len(twice) {
		t.Fatalf("Plan not idempotent: %v vs %v", once, twice)
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("Plan not idempotent at %d: %s vs %s", i, once[i], twice[i])
		}
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	r := rope.FromString("héllo")

	tests := []struct {
		name    string
		c       fix.Correction
		wantErr bool
	}{
		{"valid", fix.Correction{Kind: fix.Delete, Location: geometry.DenormalizedLocation{OffsetRange: geometry.AdjustedRange{Start: 0, End: 1}}}, false},
		{"past end", fix.Correction{Kind: fix.Delete, Location: geometry.DenormalizedLocation{OffsetRange: geometry.AdjustedRange{Start: 0, End: 9}}}, true},
		{"negative", fix.Correction{Kind: fix.Insert, Location: geometry.DenormalizedLocation{OffsetRange: geometry.AdjustedRange{Start: -1, End: -1}}}, true},
		{"inverted", fix.Correction{Kind: fix.Replace, Location: geometry.DenormalizedLocation{OffsetRange: geometry.AdjustedRange{Start: 3, End: 1}}}, true},
		{"splits character", fix.Correction{Kind: fix.Delete, Location: geometry.DenormalizedLocation{OffsetRange: geometry.AdjustedRange{Start: 0, End: 2}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fix.Validate([]fix.Correction{tt.c}, r)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
