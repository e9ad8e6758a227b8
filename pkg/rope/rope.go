package rope

import (
	"fmt"
	"strings"
)

// Rope is an immutable text value. The zero value is an empty rope.
type Rope struct {
	root *node
}

// FromString builds a balanced rope holding s.
func FromString(s string) Rope {
	chunks := splitIntoChunks(s)
	leaves := make([]*node, 0, len(chunks))
	for _, c := range chunks {
		leaves = append(leaves, newLeaf(c))
	}
	return Rope{root: buildBalanced(leaves)}
}

// Len returns the length of the text in bytes.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.sum.bytes
}

// LineLen returns the number of lines. A rope always has at least one line;
// text ending in a newline has an empty last line.
func (r Rope) LineLen() int {
	if r.root == nil {
		return 1
	}
	return r.root.sum.newlines + 1
}

// String returns the full text.
func (r Rope) String() string {
	var b strings.Builder
	b.Grow(r.Len())
	r.root.walk(0, r.Len(), func(s string) bool {
		b.WriteString(s)
		return true
	})
	return b.String()
}

// ByteSlice returns the text in [start, end).
func (r Rope) ByteSlice(start, end int) string {
	r.checkRange(start, end)
	var b strings.Builder
	b.Grow(end - start)
	r.root.walk(start, end, func(s string) bool {
		b.WriteString(s)
		return true
	})
	return b.String()
}

// Slice returns a read-only view of [start, end).
func (r Rope) Slice(start, end int) Slice {
	r.checkRange(start, end)
	return Slice{rope: r, start: start, end: end}
}

// ByteAt returns the byte at offset.
func (r Rope) ByteAt(offset int) byte {
	if offset < 0 || offset >= r.Len() {
		panic(fmt.Sprintf("rope: byte offset %d out of range [0, %d)", offset, r.Len()))
	}
	return r.root.byteAt(offset)
}

// IsCharBoundary reports whether offset falls on a UTF-8 character
// boundary. Offsets 0 and Len() are always boundaries.
func (r Rope) IsCharBoundary(offset int) bool {
	if offset == 0 || offset == r.Len() {
		return true
	}
	if offset < 0 || offset > r.Len() {
		return false
	}
	return isCharBoundary(r.root.byteAt(offset))
}

// Insert returns a rope with text inserted at offset.
func (r Rope) Insert(offset int, text string) Rope {
	r.checkOffset(offset)
	if text == "" {
		return r
	}
	left, right := split(r.root, offset)
	return Rope{root: join(join(left, FromString(text).root), right)}
}

// Delete returns a rope with [start, end) removed.
func (r Rope) Delete(start, end int) Rope {
	r.checkRange(start, end)
	if start == end {
		return r
	}
	left, rest := split(r.root, start)
	_, right := split(rest, end-start)
	return Rope{root: join(left, right)}
}

// Replace returns a rope with [start, end) replaced by text.
func (r Rope) Replace(start, end int, text string) Rope {
	r.checkRange(start, end)
	left, rest := split(r.root, start)
	_, right := split(rest, end-start)
	return Rope{root: join(join(left, FromString(text).root), right)}
}

// ByteOfLine returns the byte offset at which line starts. Passing
// LineLen() returns Len().
func (r Rope) ByteOfLine(line int) int {
	switch {
	case line < 0 || line > r.LineLen():
		panic(fmt.Sprintf("rope: line %d out of range [0, %d]", line, r.LineLen()))
	case line == 0:
		return 0
	case line == r.LineLen():
		return r.Len()
	}
	return r.root.offsetAfterNewline(line)
}

// LineOfByte returns the line containing offset. Len() maps to the last
// line.
func (r Rope) LineOfByte(offset int) int {
	if offset < 0 || offset > r.Len() {
		panic(fmt.Sprintf("rope: byte offset %d out of range [0, %d]", offset, r.Len()))
	}
	if r.root == nil {
		return 0
	}
	return r.root.newlinesBefore(offset)
}

// LineColumnOfByte converts offset to a 0-based (row, column) pair where
// column is a byte count from the line start.
func (r Rope) LineColumnOfByte(offset int) (int, int) {
	row := r.LineOfByte(offset)
	return row, offset - r.ByteOfLine(row)
}

// Line returns a view of a single line, including its terminating newline.
func (r Rope) Line(line int) Slice {
	if line < 0 || line >= r.LineLen() {
		panic(fmt.Sprintf("rope: line %d out of range [0, %d)", line, r.LineLen()))
	}
	return r.Slice(r.ByteOfLine(line), r.ByteOfLine(line+1))
}

// Height returns the tree height, useful for balance checks in tests.
func (r Rope) Height() int {
	return heightOf(r.root) + 1
}

func (r Rope) checkOffset(offset int) {
	if offset < 0 || offset > r.Len() {
		panic(fmt.Sprintf("rope: byte offset %d out of range [0, %d]", offset, r.Len()))
	}
	if !r.IsCharBoundary(offset) {
		panic(fmt.Sprintf("rope: byte offset %d is not a character boundary", offset))
	}
}

func (r Rope) checkRange(start, end int) {
	if start > end {
		panic(fmt.Sprintf("rope: invalid range [%d, %d)", start, end))
	}
	r.checkOffset(start)
	r.checkOffset(end)
}
