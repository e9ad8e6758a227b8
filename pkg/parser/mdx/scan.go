package mdx

import (
	"bytes"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/mdast"
)

type tagKind uint8

const (
	tagOpen tagKind = iota
	tagClose
	tagSelfClosing
)

// tag is a scanned JSX tag. Offsets index the goldmark source.
type tag struct {
	kind  tagKind
	name  string
	attrs []mdast.Attribute
	start int
	end   int
}

func isNameStart(c byte) bool {
	return c == '_' || c == '$' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c >= 0x80
}

func isNamePart(c byte) bool {
	return isNameStart(c) || ('0' <= c && c <= '9') || c == '-' || c == '.' || c == ':'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func skipSpace(src []byte, i, limit int) int {
	for i < limit && isSpace(src[i]) {
		i++
	}
	return i
}

// blankUntilEOL reports whether src holds only spaces between i and the next
// newline.
func blankUntilEOL(src []byte, i int) bool {
	for ; i < len(src) && src[i] != '\n'; i++ {
		if src[i] != ' ' && src[i] != '\t' && src[i] != '\r' {
			return false
		}
	}
	return true
}

// scanExpression reads a brace-balanced expression starting at src[start],
// which must be '{'. It returns the offset just past the matching '}'.
func scanExpression(src []byte, start, limit int) (int, bool) {
	if start >= limit || src[start] != '{' {
		return 0, false
	}

	depth := 0
	for i := start; i < limit; i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}

	return 0, false
}

// scanTag reads a JSX tag starting at src[start], which must be '<'. The tag
// may not extend past limit.
func scanTag(src []byte, start, limit int) (tag, bool) {
	t := tag{start: start}
	if start+1 >= limit || src[start] != '<' {
		return t, false
	}

	i := start + 1
	if src[i] == '/' {
		t.kind = tagClose
		i++
	}

	if i >= limit {
		return t, false
	}
	switch {
	case isNameStart(src[i]):
		j := i
		for j < limit && isNamePart(src[j]) {
			j++
		}
		t.name = string(src[i:j])
		i = j
	case src[i] == '>':
		// Fragment.
	default:
		return t, false
	}

	for {
		i = skipSpace(src, i, limit)
		if i >= limit {
			return t, false
		}

		switch c := src[i]; {
		case c == '>':
			t.end = i + 1
			return t, true

		case c == '/' && t.kind != tagClose:
			i = skipSpace(src, i+1, limit)
			if i >= limit || src[i] != '>' {
				return t, false
			}
			t.kind = tagSelfClosing
			t.end = i + 1
			return t, true

		case t.kind == tagClose:
			return t, false

		case c == '{':
			end, ok := scanExpression(src, i, limit)
			if !ok {
				return t, false
			}
			t.attrs = append(t.attrs, mdast.Attribute{
				Value:        string(src[i+1 : end-1]),
				HasValue:     true,
				IsExpression: true,
				Position:     mdast.Position{Start: i, End: end},
			})
			i = end

		case isNameStart(c):
			attr, next, ok := scanAttribute(src, i, limit)
			if !ok {
				return t, false
			}
			t.attrs = append(t.attrs, attr)
			i = next

		default:
			return t, false
		}
	}
}

func scanAttribute(src []byte, start, limit int) (mdast.Attribute, int, bool) {
	i := start
	for i < limit && isNamePart(src[i]) {
		i++
	}
	attr := mdast.Attribute{
		Name:     string(src[start:i]),
		Position: mdast.Position{Start: start, End: i},
	}

	j := skipSpace(src, i, limit)
	if j >= limit || src[j] != '=' {
		return attr, i, true
	}

	j = skipSpace(src, j+1, limit)
	if j >= limit {
		return attr, 0, false
	}

	switch quote := src[j]; quote {
	case '"', '\'':
		end := bytes.IndexByte(src[j+1:limit], quote)
		if end < 0 {
			return attr, 0, false
		}
		end += j + 1
		attr.Value = string(src[j+1 : end])
		attr.HasValue = true
		attr.Position.End = end + 1
		return attr, end + 1, true

	case '{':
		end, ok := scanExpression(src, j, limit)
		if !ok {
			return attr, 0, false
		}
		attr.Value = string(src[j+1 : end-1])
		attr.HasValue = true
		attr.IsExpression = true
		attr.Position.End = end
		return attr, end, true
	}

	return attr, 0, false
}

// lineBounds returns the source offsets of the first non-space byte of line
// and of the end of its trimmed content.
func lineBounds(line []byte, start, padding int) (int, int) {
	trimmed := bytes.TrimRight(line, " \t\r\n")
	first := len(trimmed) - len(bytes.TrimLeft(trimmed, " \t"))
	return max(start, start+first-padding), max(start, start+len(trimmed)-padding)
}
