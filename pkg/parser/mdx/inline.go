package mdx

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// textExpressionParser parses inline `{...}` expressions. An expression may
// continue over the following lines of its paragraph.
type textExpressionParser struct{}

func (p *textExpressionParser) Trigger() []byte {
	return []byte{'{'}
}

func (p *textExpressionParser) Parse(_ ast.Node, block text.Reader, pc parser.Context) ast.Node {
	savedLine, savedPos := block.Position()
	src := block.Source()
	start := savedPos.Start

	depth := 0
	for {
		line, seg := block.PeekLine()
		if line == nil {
			block.SetPosition(savedLine, savedPos)
			trackerFrom(pc).fail(start, "Unexpected end of file in expression, expected a corresponding closing brace for `{`")
			return nil
		}

		for i, c := range line {
			switch c {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					end := seg.Start + i + 1 - seg.Padding
					block.Advance(i + 1)
					return &TextExpression{
						Value: string(src[start+1 : end-1]),
						Start: start,
						End:   end,
					}
				}
			}
		}
		block.AdvanceLine()
	}
}

// textJSXParser parses single inline JSX tags.
type textJSXParser struct{}

func (p *textJSXParser) Trigger() []byte {
	return []byte{'<'}
}

func (p *textJSXParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, seg := block.PeekLine()
	if seg.Padding != 0 || len(line) < 2 {
		return nil
	}

	t, ok := scanTag(block.Source(), seg.Start, seg.Stop)
	if !ok {
		return nil
	}
	block.Advance(t.end - seg.Start)
	return &JSXTag{tag: t}
}
