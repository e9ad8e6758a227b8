// Package mdast provides the MDX syntax tree produced by the parser.
//
// Nodes follow the mdast/mdx vocabulary (Heading, Text, MdxJsxFlowElement,
// MdxFlowExpression, ...) and carry byte positions relative to the document
// content that follows any frontmatter.
package mdast

// Kind classifies a node.
type Kind uint8

// Node kinds.
const (
	KindRoot Kind = iota

	// Flow content.
	KindParagraph
	KindHeading
	KindThematicBreak
	KindBlockquote
	KindList
	KindListItem
	KindCode
	KindTable
	KindTableRow
	KindTableCell
	KindFootnoteDefinition

	// Phrasing content.
	KindText
	KindEmphasis
	KindStrong
	KindDelete
	KindInlineCode
	KindBreak
	KindLink
	KindLinkReference
	KindImage
	KindImageReference
	KindFootnoteReference

	// MDX extensions.
	KindMdxjsEsm
	KindMdxJsxFlowElement
	KindMdxJsxTextElement
	KindMdxFlowExpression
	KindMdxTextExpression
)

//nolint:gochecknoglobals // Lookup table for Kind.String.
var kindNames = [...]string{
	KindRoot:               "Root",
	KindParagraph:          "Paragraph",
	KindHeading:            "Heading",
	KindThematicBreak:      "ThematicBreak",
	KindBlockquote:         "Blockquote",
	KindList:               "List",
	KindListItem:           "ListItem",
	KindCode:               "Code",
	KindTable:              "Table",
	KindTableRow:           "TableRow",
	KindTableCell:          "TableCell",
	KindFootnoteDefinition: "FootnoteDefinition",
	KindText:               "Text",
	KindEmphasis:           "Emphasis",
	KindStrong:             "Strong",
	KindDelete:             "Delete",
	KindInlineCode:         "InlineCode",
	KindBreak:              "Break",
	KindLink:               "Link",
	KindLinkReference:      "LinkReference",
	KindImage:              "Image",
	KindImageReference:     "ImageReference",
	KindFootnoteReference:  "FootnoteReference",
	KindMdxjsEsm:           "MdxjsEsm",
	KindMdxJsxFlowElement:  "MdxJsxFlowElement",
	KindMdxJsxTextElement:  "MdxJsxTextElement",
	KindMdxFlowExpression:  "MdxFlowExpression",
	KindMdxTextExpression:  "MdxTextExpression",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Position is a half-open byte span [Start, End) relative to the content
// that follows the frontmatter.
type Position struct {
	Start int
	End   int
}

// Attribute is a JSX attribute. Value holds the literal string for quoted
// values, or the raw expression source (without braces) when IsExpression is
// set. Boolean attributes have HasValue false.
type Attribute struct {
	Name         string
	Value        string
	HasValue     bool
	IsExpression bool
	Position     Position
}

// Node is a single syntax tree node.
type Node struct {
	Kind Kind

	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Position is nil for nodes that do not map to source text.
	Position *Position

	// Value is the literal content of Text, InlineCode, Code, MdxjsEsm and
	// expression nodes.
	Value string

	// Depth is the heading level (1-6).
	Depth int

	// URL and Title belong to links and images; Identifier to references.
	URL        string
	Title      string
	Identifier string

	// Lang is the info string of fenced code.
	Lang string

	// Ordered marks ordered lists.
	Ordered bool

	// Name and Attributes belong to JSX elements. Name is empty for fragments.
	Name       string
	Attributes []Attribute
}

// New creates a detached node.
func New(kind Kind) *Node {
	return &Node{Kind: kind}
}

// NewWithPosition creates a detached node spanning [start, end).
func NewWithPosition(kind Kind, start, end int) *Node {
	return &Node{Kind: kind, Position: &Position{Start: start, End: end}}
}

// IsFlow reports whether the node is block-level content.
func (n *Node) IsFlow() bool {
	switch n.Kind {
	case KindRoot, KindParagraph, KindHeading, KindThematicBreak, KindBlockquote,
		KindList, KindListItem, KindCode, KindTable, KindTableRow, KindTableCell,
		KindFootnoteDefinition, KindMdxjsEsm, KindMdxJsxFlowElement, KindMdxFlowExpression:
		return true
	default:
		return false
	}
}

// Attribute returns the attribute with the given name.
func (n *Node) Attribute(name string) (Attribute, bool) {
	for _, attr := range n.Attributes {
		if attr.Name == name {
			return attr, true
		}
	}
	return Attribute{}, false
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// AppendChild appends child to parent, detaching it from any previous
// parent first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}
	parent.LastChild = child
}

// RemoveChild detaches child from parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}
	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}
