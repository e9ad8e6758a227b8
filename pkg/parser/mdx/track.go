package mdx

import (
	"fmt"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// SyntaxError reports MDX that cannot be parsed, such as an unclosed JSX
// element or an unterminated expression.
type SyntaxError struct {
	// Offset is the byte offset of the construct in the parsed content.
	Offset  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (offset %d)", e.Message, e.Offset)
}

// span records where a goldmark node was seen in the source.
type span struct {
	start   int
	openEnd int
	end     int
}

// tracker collects source spans that goldmark does not keep on its nodes.
// One tracker lives in the parser.Context of each parse.
type tracker struct {
	blocks  map[ast.Node]span
	inlines map[ast.Node]span
	err     *SyntaxError
}

//nolint:gochecknoglobals // Context keys are process-wide by design of goldmark.
var trackerKey = parser.NewContextKey()

func newTracker() *tracker {
	return &tracker{
		blocks:  make(map[ast.Node]span),
		inlines: make(map[ast.Node]span),
	}
}

func trackerFrom(pc parser.Context) *tracker {
	if t, ok := pc.Get(trackerKey).(*tracker); ok {
		return t
	}
	t := newTracker()
	pc.Set(trackerKey, t)
	return t
}

// fail records the first syntax error of the parse.
func (t *tracker) fail(offset int, format string, args ...any) {
	if t.err == nil {
		t.err = &SyntaxError{Offset: offset, Message: fmt.Sprintf(format, args...)}
	}
}

// trackedBlockParser records the lines a block parser consumes.
type trackedBlockParser struct {
	parser.BlockParser
}

func (p trackedBlockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, seg := reader.PeekLine()
	node, state := p.BlockParser.Open(parent, reader, pc)
	if node != nil && line != nil {
		start, end := lineBounds(line, seg.Start, seg.Padding)
		trackerFrom(pc).blocks[node] = span{start: start, openEnd: end, end: end}
	}
	return node, state
}

func (p trackedBlockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, seg := reader.PeekLine()
	_, before := reader.Position()
	state := p.BlockParser.Continue(node, reader, pc)
	_, after := reader.Position()

	if line == nil || util.IsBlank(line) {
		return state
	}
	if state&parser.Continue != 0 || after.Start != before.Start {
		t := trackerFrom(pc)
		if s, ok := t.blocks[node]; ok {
			_, end := lineBounds(line, seg.Start, seg.Padding)
			s.end = max(s.end, end)
			t.blocks[node] = s
		}
	}
	return state
}

// indentedParagraphParser lets paragraphs start on lines indented by four
// or more spaces, which would otherwise be indented code.
type indentedParagraphParser struct {
	parser.BlockParser
}

func (p indentedParagraphParser) CanAcceptIndentedLine() bool {
	return true
}

// trackedInlineParser records the source span of the nodes an inline parser
// returns.
type trackedInlineParser struct {
	parser.InlineParser
}

func (p trackedInlineParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	_, before := block.Position()
	node := p.InlineParser.Parse(parent, block, pc)
	if node != nil {
		_, after := block.Position()
		trackerFrom(pc).inlines[node] = span{start: before.Start, end: after.Start}
	}
	return node
}

func (p trackedInlineParser) CloseBlock(parent ast.Node, block text.Reader, pc parser.Context) {
	if cb, ok := p.InlineParser.(parser.CloseBlocker); ok {
		cb.CloseBlock(parent, block, pc)
	}
}
