package rope

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// Slice is a read-only window onto a rope. Offsets accepted and returned by
// its methods are relative to the start of the slice.
type Slice struct {
	rope       Rope
	start, end int
}

// Start returns the slice's starting offset within the parent rope.
func (s Slice) Start() int {
	return s.start
}

// Len returns the length of the slice in bytes.
func (s Slice) Len() int {
	return s.end - s.start
}

// String materializes the slice.
func (s Slice) String() string {
	return s.rope.ByteSlice(s.start, s.end)
}

// Chunks yields the slice's text in tree order without copying.
func (s Slice) Chunks() iter.Seq[string] {
	return func(yield func(string) bool) {
		s.rope.root.walk(s.start, s.end, yield)
	}
}

// Runes yields each rune with its byte offset relative to the slice. Leaves
// are always cut on character boundaries, so no rune straddles two chunks.
func (s Slice) Runes() iter.Seq2[int, rune] {
	return func(yield func(int, rune) bool) {
		offset := 0
		for chunk := range s.Chunks() {
			for i := 0; i < len(chunk); {
				r, size := utf8.DecodeRuneInString(chunk[i:])
				if !yield(offset, r) {
					return
				}
				offset += size
				i += size
			}
		}
	}
}

// Equal reports whether the slice holds exactly text, without allocating.
func (s Slice) Equal(text string) bool {
	if s.Len() != len(text) {
		return false
	}
	equal := true
	s.rope.root.walk(s.start, s.end, func(chunk string) bool {
		if !strings.HasPrefix(text, chunk) {
			equal = false
			return false
		}
		text = text[len(chunk):]
		return true
	})
	return equal
}

// Slice returns a sub-view of [start, end) relative to this slice.
func (s Slice) Slice(start, end int) Slice {
	return s.rope.Slice(s.start+start, s.start+end)
}

// LineLen returns the number of lines the slice touches.
func (s Slice) LineLen() int {
	return s.LineOfByte(s.Len()) + 1
}

// LineOfByte returns the slice-relative line containing offset.
func (s Slice) LineOfByte(offset int) int {
	return s.rope.LineOfByte(s.start+offset) - s.rope.LineOfByte(s.start)
}

// ByteOfLine returns the slice-relative offset at which line starts. Line 0
// always starts at 0 even when the slice begins mid-line.
func (s Slice) ByteOfLine(line int) int {
	if line == 0 {
		return 0
	}
	first := s.rope.LineOfByte(s.start)
	return min(s.rope.ByteOfLine(first+line), s.end) - s.start
}
