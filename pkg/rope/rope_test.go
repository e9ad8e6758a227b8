package rope_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/rope"
)

func TestFromString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantLines int
	}{
		{name: "empty", input: "", wantLines: 1},
		{name: "single line", input: "hello", wantLines: 1},
		{name: "trailing newline", input: "a\nb\n", wantLines: 3},
		{name: "unicode", input: "héllo\n你好\n🤝", wantLines: 3},
		{name: "long", input: strings.Repeat("some words here\n", 200), wantLines: 201},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := rope.FromString(tt.input)
			assert.Equal(t, tt.input, r.String())
			assert.Equal(t, len(tt.input), r.Len())
			assert.Equal(t, tt.wantLines, r.LineLen())
		})
	}
}

func TestLineConversions(t *testing.T) {
	t.Parallel()

	r := rope.FromString("a\nbc\n\ndef")

	assert.Equal(t, 4, r.LineLen())
	assert.Equal(t, 0, r.ByteOfLine(0))
	assert.Equal(t, 2, r.ByteOfLine(1))
	assert.Equal(t, 5, r.ByteOfLine(2))
	assert.Equal(t, 6, r.ByteOfLine(3))
	assert.Equal(t, r.Len(), r.ByteOfLine(4))

	assert.Equal(t, 0, r.LineOfByte(1))
	assert.Equal(t, 1, r.LineOfByte(2))
	assert.Equal(t, 1, r.LineOfByte(4))
	assert.Equal(t, 2, r.LineOfByte(5))
	assert.Equal(t, 3, r.LineOfByte(r.Len()))

	row, col := r.LineColumnOfByte(8)
	assert.Equal(t, 3, row)
	assert.Equal(t, 2, col)
}

func TestLineOfByteAtEndIsLastLine(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "x", "x\n", "x\ny\n\n", strings.Repeat("line\n", 100)} {
		r := rope.FromString(input)
		assert.Equal(t, r.LineLen()-1, r.LineOfByte(r.Len()), "input %q", input)
	}
}

func TestOffsetRoundTrip(t *testing.T) {
	t.Parallel()

	input := strings.Repeat("Some text — with ümlauts and 🤝 emoji.\nNext line\n\n", 20)
	r := rope.FromString(input)

	for b := 0; b <= r.Len(); b++ {
		if !r.IsCharBoundary(b) {
			continue
		}
		row, col := r.LineColumnOfByte(b)
		require.Equal(t, b, r.ByteOfLine(row)+col, "offset %d", b)
	}
}

func TestEdits(t *testing.T) {
	t.Parallel()

	base := rope.FromString("hello world")

	inserted := base.Insert(5, ",")
	assert.Equal(t, "hello, world", inserted.String())
	assert.Equal(t, "hello world", base.String(), "original rope is unchanged")

	deleted := inserted.Delete(0, 7)
	assert.Equal(t, "world", deleted.String())

	replaced := base.Replace(6, 11, "there")
	assert.Equal(t, "hello there", replaced.String())

	assert.Equal(t, "hello world", base.Replace(3, 3, "").String())
}

func TestEditsOnLargeRopeStayBalanced(t *testing.T) {
	t.Parallel()

	var want strings.Builder
	r := rope.FromString("")
	for i := range 2000 {
		piece := "line " + strings.Repeat("x", i%7) + "\n"
		r = r.Insert(r.Len(), piece)
		want.WriteString(piece)
	}

	assert.Equal(t, want.String(), r.String())
	assert.Less(t, r.Height(), 40)

	mid := r.ByteOfLine(1000)
	r = r.Delete(mid, r.ByteOfLine(1500))
	assert.Equal(t, 1501, r.LineLen())
}

func TestByteSliceAndSlice(t *testing.T) {
	t.Parallel()

	r := rope.FromString("first line\nsecond line\nthird")

	assert.Equal(t, "second", r.ByteSlice(11, 17))

	s := r.Slice(6, 23)
	assert.Equal(t, "line\nsecond line\n", s.String())
	assert.True(t, s.Equal("line\nsecond line\n"))
	assert.False(t, s.Equal("line\nsecond line"))
	assert.Equal(t, 3, s.LineLen())
	assert.Equal(t, 0, s.ByteOfLine(0))
	assert.Equal(t, 5, s.ByteOfLine(1))
	assert.Equal(t, 1, s.LineOfByte(6))

	assert.Equal(t, "second line\n", r.Line(1).String())
}

func TestSliceRunes(t *testing.T) {
	t.Parallel()

	r := rope.FromString("a🤝b")

	var offsets []int
	var runes []rune
	for off, ch := range r.Slice(0, r.Len()).Runes() {
		offsets = append(offsets, off)
		runes = append(runes, ch)
	}

	assert.Equal(t, []int{0, 1, 5}, offsets)
	assert.Equal(t, []rune{'a', '🤝', 'b'}, runes)
}

func TestPanicsOnNonBoundary(t *testing.T) {
	t.Parallel()

	r := rope.FromString("é")

	assert.Panics(t, func() { r.Slice(1, 2) })
	assert.Panics(t, func() { r.Insert(1, "x") })
	assert.Panics(t, func() { r.ByteOfLine(5) })
}
