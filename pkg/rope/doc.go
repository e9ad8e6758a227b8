// Package rope provides an immutable rope used as the text model for linted
// documents.
//
// A rope is a height-balanced binary tree whose leaves hold short string
// chunks. Every node caches the byte length and newline count of its subtree,
// so conversions between byte offsets, line indices and (row, column) pairs
// run in O(log n), as do Insert, Delete and Replace. Edits return a new rope
// and leave the receiver untouched, which lets a linted document and its
// fixed version share structure.
//
// Rows and columns are 0-based and columns count bytes from the line start.
// The newline terminating a line belongs to that line, so the offset equal
// to Len() sits on the last line:
//
//	r := rope.FromString("a\nb\n")
//	r.LineLen()      // 3
//	r.LineOfByte(4)  // 2
//	r.ByteOfLine(1)  // 2
//
// Offsets passed to slicing and editing operations must fall on UTF-8
// character boundaries; violating that panics.
package rope
