package mdx

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Node tree.
type mapper struct {
	content []byte
	spans   *tracker
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte, spans *tracker) *mapper {
	return &mapper{content: content, spans: spans}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	root := mdast.NewWithPosition(mdast.KindRoot, 0, len(m.content))
	m.mapChildren(gmDoc, root)
	return root
}

// mapChildren maps all children of a goldmark node and appends them to
// parent.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	m.mapSiblings(gmParent.FirstChild(), nil, parent)
}

// mapSiblings maps the siblings from first up to, but excluding, stop.
// Inline JSX tags are paired into elements on the way; unmatched closing
// tags are dropped.
func (m *mapper) mapSiblings(first, stop ast.Node, parent *mdast.Node) {
	for child := first; child != nil && child != stop; child = child.NextSibling() {
		jsx, ok := child.(*JSXTag)
		if !ok {
			m.appendMapped(parent, child)
			continue
		}
		if jsx.kind == tagClose {
			continue
		}

		element := mdast.NewWithPosition(mdast.KindMdxJsxTextElement, jsx.start, jsx.end)
		element.Name = jsx.name
		element.Attributes = jsx.attrs

		if jsx.kind == tagOpen {
			if closing := matchingCloseTag(jsx); closing != nil {
				m.mapSiblings(jsx.NextSibling(), closing, element)
				element.Position.End = closing.end
				child = closing
			}
		}

		mdast.AppendChild(parent, element)
	}
}

// matchingCloseTag finds the sibling closing tag for an opening tag.
func matchingCloseTag(open *JSXTag) *JSXTag {
	depth := 0
	for sib := open.NextSibling(); sib != nil; sib = sib.NextSibling() {
		other, ok := sib.(*JSXTag)
		if !ok || other.name != open.name {
			continue
		}
		switch other.kind {
		case tagOpen:
			depth++
		case tagClose:
			if depth == 0 {
				return other
			}
			depth--
		case tagSelfClosing:
		}
	}
	return nil
}

func (m *mapper) appendMapped(parent *mdast.Node, gmNode ast.Node) {
	for _, node := range m.mapNode(gmNode) {
		m.appendMerging(parent, node)
	}
}

// appendMerging appends node to parent, folding it into a preceding Text
// node when only whitespace separates the two.
func (m *mapper) appendMerging(parent, node *mdast.Node) {
	last := parent.LastChild
	if node.Kind == mdast.KindText && last != nil && last.Kind == mdast.KindText &&
		last.Position != nil && node.Position != nil && last.Position.End <= node.Position.Start {
		gap := m.content[last.Position.End:node.Position.Start]
		if len(bytes.TrimSpace(gap)) == 0 {
			if bytes.IndexByte(gap, '\n') >= 0 {
				gap = []byte{'\n'}
			}
			last.Value += string(gap) + node.Value
			last.Position.End = node.Position.End
			return
		}
	}
	mdast.AppendChild(parent, node)
}

// mapNode converts a single goldmark node. It returns no nodes for
// constructs that have no mdast counterpart, and several for a text node
// ending in a hard line break.
func (m *mapper) mapNode(gmNode ast.Node) []*mdast.Node {
	var node *mdast.Node

	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		node = mdast.New(mdast.KindHeading)
		node.Depth = gmn.Level
		m.mapChildren(gmn, node)
		m.setBlockPosition(gmn, node, false)

	case *ast.Paragraph:
		node = mdast.New(mdast.KindParagraph)
		m.mapChildren(gmn, node)
		m.setBlockPosition(gmn, node, false)

	case *ast.TextBlock:
		// Tight list items hold a TextBlock; mdast models it as a paragraph.
		node = mdast.New(mdast.KindParagraph)
		m.mapChildren(gmn, node)
		m.setBlockPosition(gmn, node, false)

	case *ast.List:
		node = mdast.New(mdast.KindList)
		node.Ordered = gmn.IsOrdered()
		m.mapChildren(gmn, node)
		m.setBlockPosition(gmn, node, true)

	case *ast.ListItem:
		node = mdast.New(mdast.KindListItem)
		m.mapChildren(gmn, node)
		m.setBlockPosition(gmn, node, true)

	case *ast.Blockquote:
		node = mdast.New(mdast.KindBlockquote)
		m.mapChildren(gmn, node)
		m.setBlockPosition(gmn, node, true)

	case *ast.FencedCodeBlock:
		node = m.mapFencedCodeBlock(gmn)

	case *ast.ThematicBreak:
		node = mdast.New(mdast.KindThematicBreak)
		m.setBlockPosition(gmn, node, false)

	case *JSXFlowElement:
		node = mdast.NewWithPosition(mdast.KindMdxJsxFlowElement, gmn.Start, gmn.End)
		node.Name = gmn.Name
		node.Attributes = gmn.JSXAttributes
		m.mapChildren(gmn, node)

	case *FlowExpression:
		node = mdast.NewWithPosition(mdast.KindMdxFlowExpression, gmn.Start, gmn.End)
		node.Value = gmn.Value

	case *ESM:
		node = mdast.NewWithPosition(mdast.KindMdxjsEsm, gmn.Start, gmn.End)
		node.Value = string(m.content[gmn.Start:gmn.End])

	// Inline-level nodes.
	case *ast.Text:
		return m.mapText(gmn)

	case *ast.String:
		node = mdast.New(mdast.KindText)
		node.Value = string(gmn.Value)

	case *ast.Emphasis:
		node = m.mapEmphasis(gmn)

	case *ast.CodeSpan:
		node = m.mapCodeSpan(gmn)

	case *ast.Link:
		node = m.mapLink(gmn, gmn.Destination, gmn.Title, false)

	case *ast.Image:
		node = m.mapLink(gmn, gmn.Destination, gmn.Title, true)

	case *TextExpression:
		node = mdast.NewWithPosition(mdast.KindMdxTextExpression, gmn.Start, gmn.End)
		node.Value = gmn.Value

	// GFM extension nodes.
	case *east.Strikethrough:
		node = m.mapStrikethrough(gmn)

	case *east.Table:
		node = mdast.New(mdast.KindTable)
		m.mapChildren(gmn, node)
		m.setBlockPosition(gmn, node, false)

	case *east.TableHeader:
		node = mdast.New(mdast.KindTableRow)
		m.mapChildren(gmn, node)
		m.setBlockPosition(gmn, node, false)

	case *east.TableRow:
		node = mdast.New(mdast.KindTableRow)
		m.mapChildren(gmn, node)
		m.setBlockPosition(gmn, node, false)

	case *east.TableCell:
		node = mdast.New(mdast.KindTableCell)
		m.mapChildren(gmn, node)
		m.setBlockPosition(gmn, node, false)

	case *east.FootnoteList:
		// Definitions are grouped by goldmark; flatten them back out.
		var nodes []*mdast.Node
		for def := gmn.FirstChild(); def != nil; def = def.NextSibling() {
			nodes = append(nodes, m.mapNode(def)...)
		}
		return nodes

	case *east.Footnote:
		node = mdast.New(mdast.KindFootnoteDefinition)
		node.Identifier = strings.ToLower(string(gmn.Ref))
		m.mapChildren(gmn, node)
		m.setBlockPosition(gmn, node, true)

	case *east.FootnoteLink:
		node = m.mapFootnoteLink(gmn)

	default:
		// Link label bookkeeping and other parser-internal nodes.
		return nil
	}

	return []*mdast.Node{node}
}

// setBlockPosition derives a block's span from the lines its parser
// consumed, its goldmark line segments and its children. Containers only
// trust the line that opened them, since their parsers also consume the
// prefixes of trailing lines.
func (m *mapper) setBlockPosition(gmNode ast.Node, node *mdast.Node, container bool) {
	start, end := -1, -1
	include := func(s, e int) {
		if s < 0 || e < s {
			return
		}
		if start < 0 || s < start {
			start = s
		}
		if e > end {
			end = e
		}
	}

	if s, ok := m.spans.blocks[gmNode]; ok {
		if container {
			include(s.start, s.openEnd)
		} else {
			include(s.start, s.end)
		}
	}

	if lines := gmNode.Lines(); lines != nil && lines.Len() > 0 {
		include(lines.At(0).Start, lines.At(lines.Len()-1).Stop)
	}

	for child := node.FirstChild; child != nil; child = child.Next {
		if child.Position != nil {
			include(child.Position.Start, child.Position.End)
		}
	}

	if start >= 0 {
		end = min(end, len(m.content))
		for end > start && isSpace(m.content[end-1]) {
			end--
		}
		node.Position = &mdast.Position{Start: start, End: end}
	}
}

// mapFencedCodeBlock converts a goldmark FencedCodeBlock to an mdast node.
func (m *mapper) mapFencedCodeBlock(codeBlock *ast.FencedCodeBlock) *mdast.Node {
	node := mdast.New(mdast.KindCode)
	node.Lang = string(codeBlock.Language(m.content))

	var value bytes.Buffer
	lines := codeBlock.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		value.Write(seg.Value(m.content))
	}
	node.Value = strings.TrimSuffix(value.String(), "\n")

	m.setBlockPosition(codeBlock, node, false)
	return node
}

// mapText converts a goldmark Text node. A hard line break becomes a
// separate Break node.
func (m *mapper) mapText(textNode *ast.Text) []*mdast.Node {
	seg := textNode.Segment
	var nodes []*mdast.Node

	if seg.Stop > seg.Start {
		node := mdast.NewWithPosition(mdast.KindText, seg.Start, seg.Stop)
		node.Value = string(seg.Value(m.content))
		nodes = append(nodes, node)
	}

	if textNode.HardLineBreak() {
		end := seg.Stop
		if nl := bytes.IndexByte(m.content[seg.Stop:], '\n'); nl >= 0 {
			end = seg.Stop + nl + 1
		}
		nodes = append(nodes, mdast.NewWithPosition(mdast.KindBreak, seg.Stop, end))
	}

	return nodes
}

// mapEmphasis converts a goldmark Emphasis node. The delimiters sit
// immediately outside the children.
func (m *mapper) mapEmphasis(emphasis *ast.Emphasis) *mdast.Node {
	kind := mdast.KindEmphasis
	if emphasis.Level == 2 {
		kind = mdast.KindStrong
	}

	node := mdast.New(kind)
	m.mapChildren(emphasis, node)
	if first, last := node.FirstChild, node.LastChild; first != nil && first.Position != nil && last.Position != nil {
		node.Position = &mdast.Position{
			Start: max(0, first.Position.Start-emphasis.Level),
			End:   min(len(m.content), last.Position.End+emphasis.Level),
		}
	}
	return node
}

// mapStrikethrough converts a GFM Strikethrough node.
func (m *mapper) mapStrikethrough(s *east.Strikethrough) *mdast.Node {
	node := mdast.New(mdast.KindDelete)
	m.mapChildren(s, node)

	if first, last := node.FirstChild, node.LastChild; first != nil && first.Position != nil && last.Position != nil {
		start, end := first.Position.Start, last.Position.End
		for start > 0 && m.content[start-1] == '~' {
			start--
		}
		for end < len(m.content) && m.content[end] == '~' {
			end++
		}
		node.Position = &mdast.Position{Start: start, End: end}
	}
	return node
}

// mapCodeSpan converts a goldmark CodeSpan to an mdast node.
func (m *mapper) mapCodeSpan(codeSpan *ast.CodeSpan) *mdast.Node {
	node := mdast.New(mdast.KindInlineCode)

	var value []byte
	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, ok := child.(*ast.Text); ok {
			value = append(value, textNode.Value(m.content)...)
		}
	}
	node.Value = string(value)

	if s, ok := m.spans.inlines[codeSpan]; ok {
		node.Position = &mdast.Position{Start: s.start, End: s.end}
	}
	return node
}

// mapLink converts a goldmark Link or Image. Goldmark resolves references,
// so the source after the label decides between inline and reference
// syntax.
func (m *mapper) mapLink(gmNode ast.Node, destination, title []byte, image bool) *mdast.Node {
	node := mdast.New(mdast.KindLink)
	if image {
		node.Kind = mdast.KindImage
	}
	node.URL = string(destination)
	node.Title = string(title)
	m.mapChildren(gmNode, node)

	s, ok := m.spans.inlines[gmNode]
	if !ok {
		return node
	}

	// The inline parser returns the link at its closing bracket.
	closeBracket := s.start
	prefix := 1
	if image {
		prefix = 2
	}
	start := closeBracket - prefix
	if first := node.FirstChild; first != nil && first.Position != nil {
		start = first.Position.Start - prefix
	}
	start = max(0, start)
	node.Position = &mdast.Position{Start: start, End: s.end}

	if closeBracket+1 < len(m.content) && m.content[closeBracket+1] == '(' {
		return node
	}

	if image {
		node.Kind = mdast.KindImageReference
	} else {
		node.Kind = mdast.KindLinkReference
	}
	label := m.content[start+prefix : closeBracket]
	if closeBracket+1 < s.end && m.content[closeBracket+1] == '[' && s.end-1 > closeBracket+2 {
		label = m.content[closeBracket+2 : s.end-1]
	}
	node.Identifier = normalizeIdentifier(label)
	return node
}

// mapFootnoteLink converts a footnote reference such as [^1].
func (m *mapper) mapFootnoteLink(link *east.FootnoteLink) *mdast.Node {
	node := mdast.New(mdast.KindFootnoteReference)

	s, ok := m.spans.inlines[link]
	if !ok {
		return node
	}
	start := s.start
	if m.content[start] == '!' {
		start++
	}
	node.Position = &mdast.Position{Start: start, End: s.end}
	if start+2 <= s.end-1 {
		node.Identifier = normalizeIdentifier(m.content[start+2 : s.end-1])
	}
	return node
}

// normalizeIdentifier lowercases a reference label and collapses internal
// whitespace.
func normalizeIdentifier(label []byte) string {
	return strings.ToLower(strings.Join(strings.Fields(string(label)), " "))
}
