// Package mdx parses MDX content with goldmark and converts the result into
// an mdast tree whose nodes carry byte positions.
//
// The goldmark configuration mirrors the MDX dialect of the linted docs:
// CommonMark headings, lists, block quotes, fenced code, emphasis, code
// spans, links and images; GFM tables, strikethrough and footnotes; and the
// MDX constructs (ESM, JSX elements and `{...}` expressions). Indented code,
// autolinks and raw HTML are disabled because their syntax collides with
// JSX and expressions.
package mdx

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/mdast"
)

// Parser converts MDX content into an mdast tree. A Parser is safe for
// concurrent use.
type Parser struct {
	md goldmark.Markdown
}

// New creates a Parser.
func New() *Parser {
	return &Parser{md: newGoldmarkInstance()}
}

// Parse parses content. Node positions in the returned tree are byte
// offsets into content. A *SyntaxError is returned for malformed MDX.
func (p *Parser) Parse(content []byte) (*mdast.Node, error) {
	pc := parser.NewContext()
	spans := trackerFrom(pc)

	reader := text.NewReader(content)
	doc := p.md.Parser().Parse(reader, parser.WithContext(pc))
	if spans.err != nil {
		return nil, spans.err
	}

	m := newMapper(content, spans)
	return m.mapDocument(doc), nil
}

//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance() goldmark.Markdown {
	blockParsers := []util.PrioritizedValue{
		util.Prioritized(trackedBlockParser{parser.NewSetextHeadingParser()}, 100),
		util.Prioritized(trackedBlockParser{parser.NewThematicBreakParser()}, 200),
		util.Prioritized(trackedBlockParser{parser.NewListParser()}, 300),
		util.Prioritized(trackedBlockParser{parser.NewListItemParser()}, 400),
		util.Prioritized(trackedBlockParser{&esmParser{}}, 500),
		util.Prioritized(trackedBlockParser{parser.NewATXHeadingParser()}, 600),
		util.Prioritized(trackedBlockParser{parser.NewFencedCodeBlockParser()}, 700),
		util.Prioritized(trackedBlockParser{parser.NewBlockquoteParser()}, 800),
		util.Prioritized(trackedBlockParser{&jsxFlowParser{}}, 850),
		util.Prioritized(trackedBlockParser{&flowExpressionParser{}}, 860),
		util.Prioritized(trackedBlockParser{extension.NewFootnoteBlockParser()}, 999),
		util.Prioritized(trackedBlockParser{indentedParagraphParser{parser.NewParagraphParser()}}, 1000),
	}

	inlineParsers := []util.PrioritizedValue{
		util.Prioritized(trackedInlineParser{parser.NewCodeSpanParser()}, 100),
		util.Prioritized(trackedInlineParser{extension.NewFootnoteParser()}, 101),
		util.Prioritized(trackedInlineParser{parser.NewLinkParser()}, 200),
		util.Prioritized(&textJSXParser{}, 300),
		util.Prioritized(&textExpressionParser{}, 400),
		util.Prioritized(parser.NewEmphasisParser(), 500),
		util.Prioritized(extension.NewStrikethroughParser(), 501),
	}

	return goldmark.New(
		goldmark.WithParser(parser.NewParser(
			parser.WithBlockParsers(blockParsers...),
			parser.WithInlineParsers(inlineParsers...),
			parser.WithParagraphTransformers(
				util.Prioritized(parser.LinkReferenceParagraphTransformer, 100),
				util.Prioritized(extension.NewTableParagraphTransformer(), 200),
			),
		)),
	)
}
