package mdx

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// jsxFlowParser parses JSX elements that stand alone on their lines. An
// element whose opening tag is followed by other content on the same line is
// left to the paragraph and becomes a text element.
type jsxFlowParser struct{}

func (p *jsxFlowParser) Trigger() []byte {
	return []byte{'<'}
}

func (p *jsxFlowParser) Open(_ ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, seg := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pos >= len(line) || line[pos] != '<' {
		return nil, parser.NoChildren
	}

	src := reader.Source()
	start := seg.Start + pos - seg.Padding
	t, ok := scanTag(src, start, len(src))
	if !ok || t.kind == tagClose || !blankUntilEOL(src, t.end) {
		return nil, parser.NoChildren
	}

	node := &JSXFlowElement{
		Name:          t.name,
		JSXAttributes: t.attrs,
		Start:         start,
		End:           t.end,
		tagEnd:        t.end,
		selfClosing:   t.kind == tagSelfClosing,
	}
	reader.AdvanceToEOL()

	if t.end > seg.Stop {
		node.openPending = true
		return node, parser.NoChildren
	}
	if node.selfClosing {
		node.closed = true
		return node, parser.NoChildren
	}
	return node, parser.HasChildren
}

func (p *jsxFlowParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	n, _ := node.(*JSXFlowElement)
	line, seg := reader.PeekLine()
	if line == nil {
		return parser.Close
	}

	if n.openPending {
		reader.AdvanceToEOL()
		if n.tagEnd <= seg.Stop {
			n.openPending = false
			n.closed = n.selfClosing
		}
		return parser.Continue | parser.NoChildren
	}

	if n.closed || n.closePending {
		n.closed = true
		return parser.Close
	}

	src := reader.Source()
	if pos := util.FirstNonSpacePosition(line); pos >= 0 && line[pos] == '<' {
		start := seg.Start + pos - seg.Padding
		t, ok := scanTag(src, start, seg.Stop)
		if ok && t.kind == tagClose && t.name == n.Name && blankUntilEOL(src, t.end) && !shadowed(n, pc) {
			n.End = t.end
			n.closed = true
			reader.AdvanceToEOL()
			return parser.Close
		}
	}

	if end, ok := trailingCloseTag(src, seg, n.Name); ok && !shadowed(n, pc) {
		n.End = end
		n.closePending = true
	}

	return parser.Continue | parser.HasChildren
}

func (p *jsxFlowParser) Close(node ast.Node, _ text.Reader, pc parser.Context) {
	n, _ := node.(*JSXFlowElement)
	if n.closePending {
		n.closed = true
	}
	if !n.closed {
		trackerFrom(pc).fail(n.Start, "Expected a closing tag for `<%s>`", n.Name)
	}
}

func (p *jsxFlowParser) CanInterruptParagraph() bool {
	return true
}

func (p *jsxFlowParser) CanAcceptIndentedLine() bool {
	return false
}

// shadowed reports whether a closing tag for n on the current line belongs
// to something opened inside n instead: a same-named element or a code
// block.
func shadowed(n *JSXFlowElement, pc parser.Context) bool {
	blocks := pc.OpenedBlocks()
	inside := false
	for _, b := range blocks {
		if b.Node == n {
			inside = true
			continue
		}
		if !inside {
			continue
		}
		switch child := b.Node.(type) {
		case *JSXFlowElement:
			if child.Name == n.Name && !child.closed {
				return true
			}
		case *ast.FencedCodeBlock:
			return true
		case *FlowExpression:
			if child.pending {
				return true
			}
		}
	}
	return false
}

// trailingCloseTag finds a closing tag for name at the end of a line that
// also holds other content.
func trailingCloseTag(src []byte, seg text.Segment, name string) (int, bool) {
	line := bytes.TrimRight(src[seg.Start:seg.Stop], " \t\r\n")
	idx := bytes.LastIndex(line, []byte("</"))
	if idx <= 0 {
		return 0, false
	}
	start := seg.Start + idx
	t, ok := scanTag(src, start, seg.Start+len(line))
	if !ok || t.kind != tagClose || t.name != name || t.end != seg.Start+len(line) {
		return 0, false
	}
	return t.end, true
}

// flowExpressionParser parses `{...}` expressions that occupy whole lines,
// including the `{/* comment */}` form used for lint directives.
type flowExpressionParser struct{}

func (p *flowExpressionParser) Trigger() []byte {
	return []byte{'{'}
}

func (p *flowExpressionParser) Open(_ ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, seg := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pos >= len(line) || line[pos] != '{' {
		return nil, parser.NoChildren
	}

	src := reader.Source()
	start := seg.Start + pos - seg.Padding
	end, ok := scanExpression(src, start, len(src))
	if !ok {
		trackerFrom(pc).fail(start, "Unexpected end of file in expression, expected a corresponding closing brace for `{`")
		return nil, parser.NoChildren
	}
	if !blankUntilEOL(src, end) {
		return nil, parser.NoChildren
	}

	node := &FlowExpression{
		Value:   string(src[start+1 : end-1]),
		Start:   start,
		End:     end,
		pending: end > seg.Stop,
	}
	reader.AdvanceToEOL()
	return node, parser.NoChildren
}

func (p *flowExpressionParser) Continue(node ast.Node, reader text.Reader, _ parser.Context) parser.State {
	n, _ := node.(*FlowExpression)
	line, seg := reader.PeekLine()
	if !n.pending || line == nil {
		return parser.Close
	}
	reader.AdvanceToEOL()
	if n.End <= seg.Stop {
		n.pending = false
	}
	return parser.Continue | parser.NoChildren
}

func (p *flowExpressionParser) Close(ast.Node, text.Reader, parser.Context) {}

func (p *flowExpressionParser) CanInterruptParagraph() bool {
	return true
}

func (p *flowExpressionParser) CanAcceptIndentedLine() bool {
	return false
}

// esmParser parses top-level import and export statements. A statement
// block runs until the next blank line.
type esmParser struct{}

func (p *esmParser) Trigger() []byte {
	return []byte{'i', 'e'}
}

func (p *esmParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	if parent.Kind() != ast.KindDocument || pc.BlockOffset() != 0 {
		return nil, parser.NoChildren
	}
	line, seg := reader.PeekLine()
	if !bytes.HasPrefix(line, []byte("import ")) && !bytes.HasPrefix(line, []byte("export ")) {
		return nil, parser.NoChildren
	}

	start, end := lineBounds(line, seg.Start, seg.Padding)
	reader.AdvanceToEOL()
	return &ESM{Start: start, End: end}, parser.NoChildren
}

func (p *esmParser) Continue(node ast.Node, reader text.Reader, _ parser.Context) parser.State {
	n, _ := node.(*ESM)
	line, seg := reader.PeekLine()
	if line == nil || util.IsBlank(line) {
		return parser.Close
	}
	_, end := lineBounds(line, seg.Start, seg.Padding)
	n.End = end
	reader.AdvanceToEOL()
	return parser.Continue | parser.NoChildren
}

func (p *esmParser) Close(ast.Node, text.Reader, parser.Context) {}

func (p *esmParser) CanInterruptParagraph() bool {
	return false
}

func (p *esmParser) CanAcceptIndentedLine() bool {
	return false
}
