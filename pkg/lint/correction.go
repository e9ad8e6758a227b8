package lint

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/fix"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/geometry"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/rope"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/words"
)

// UpperFirst uppercases the first character of s.
func UpperFirst(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	return cases.Upper(language.Und).String(string(first)) + s[size:]
}

// WordSpliceCorrection replaces the words in splice, which lies inside the
// text span outer, while keeping the surrounding sentence well formed.
//
// With a replacement, the replacement is capitalized when splice starts a
// sentence. Without one, the words are deleted along with the whitespace
// that follows them, and the next word is capitalized if the deleted words
// started a sentence. When countBeginning is set, the start of outer counts
// as a sentence start.
func WordSpliceCorrection(ctx *Context, outer, splice geometry.AdjustedRange, countBeginning bool, replacement *string) fix.Correction {
	return SpliceCorrection(ctx.Rope(), outer, splice, countBeginning, replacement)
}

// SpliceCorrection is WordSpliceCorrection over a bare rope.
func SpliceCorrection(r rope.Rope, outer, splice geometry.AdjustedRange, countBeginning bool, replacement *string) fix.Correction {
	outerText := r.ByteSlice(outer.Start.Int(), outer.End.Int())
	isStart := words.IsSentenceStart(outerText, int(splice.Start-outer.Start), countBeginning)

	if replacement != nil {
		text := *replacement
		if isStart {
			text = UpperFirst(text)
		}
		return fix.NewReplace(geometry.LocationFromRange(splice, r), text)
	}

	it := words.NewIterator(r.Slice(splice.End.Int(), r.Len()), splice.End.Int(), words.Options{})
	next, ok := it.Next()
	if ok {
		between := r.ByteSlice(splice.End.Int(), next.Offset)
		if strings.TrimFunc(between, unicode.IsSpace) == "" {
			nextStart := geometry.AdjustedOffset(next.Offset)
			if isStart {
				first, size := utf8.DecodeRuneInString(next.Text)
				return fix.NewReplace(
					geometry.LocationFromOffsets(splice.Start, nextStart.Add(size), r),
					UpperFirst(string(first)),
				)
			}
			return fix.NewDelete(geometry.LocationFromOffsets(splice.Start, nextStart, r))
		}
	}

	return fix.NewDelete(geometry.LocationFromRange(splice, r))
}
