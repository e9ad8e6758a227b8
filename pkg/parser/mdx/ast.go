package mdx

import (
	"strconv"

	"github.com/yuin/goldmark/ast"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/mdast"
)

// Goldmark node kinds added by the MDX extension.
//
//nolint:gochecknoglobals // Node kinds are registered once at init.
var (
	KindJSXFlowElement = ast.NewNodeKind("MdxJsxFlowElement")
	KindFlowExpression = ast.NewNodeKind("MdxFlowExpression")
	KindESM            = ast.NewNodeKind("MdxjsEsm")
	KindTextExpression = ast.NewNodeKind("MdxTextExpression")
	KindJSXTag         = ast.NewNodeKind("MdxJsxTag")
)

// JSXFlowElement is a block-level JSX element. Markdown between its opening
// and closing tags is parsed as child blocks.
type JSXFlowElement struct {
	ast.BaseBlock

	Name          string
	JSXAttributes []mdast.Attribute
	Start         int
	End           int

	tagEnd       int
	selfClosing  bool
	openPending  bool
	closePending bool
	closed       bool
}

var (
	_ ast.Node = (*JSXFlowElement)(nil)
	_ ast.Node = (*FlowExpression)(nil)
	_ ast.Node = (*ESM)(nil)
	_ ast.Node = (*TextExpression)(nil)
	_ ast.Node = (*JSXTag)(nil)
)

// Kind implements ast.Node.
func (n *JSXFlowElement) Kind() ast.NodeKind { return KindJSXFlowElement }

// Dump implements ast.Node.
func (n *JSXFlowElement) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Name":  n.Name,
		"Start": strconv.Itoa(n.Start),
		"End":   strconv.Itoa(n.End),
	}, nil)
}

// FlowExpression is a `{...}` expression standing alone on its lines.
type FlowExpression struct {
	ast.BaseBlock

	Value string
	Start int
	End   int

	pending bool
}

// Kind implements ast.Node.
func (n *FlowExpression) Kind() ast.NodeKind { return KindFlowExpression }

// IsRaw implements ast.Node.
func (n *FlowExpression) IsRaw() bool { return true }

// Dump implements ast.Node.
func (n *FlowExpression) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Value": n.Value}, nil)
}

// ESM is a run of top-level import/export statements.
type ESM struct {
	ast.BaseBlock

	Start int
	End   int
}

// Kind implements ast.Node.
func (n *ESM) Kind() ast.NodeKind { return KindESM }

// IsRaw implements ast.Node.
func (n *ESM) IsRaw() bool { return true }

// Dump implements ast.Node.
func (n *ESM) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Value": string(source[n.Start:n.End]),
	}, nil)
}

// TextExpression is an inline `{...}` expression.
type TextExpression struct {
	ast.BaseInline

	Value string
	Start int
	End   int
}

// Kind implements ast.Node.
func (n *TextExpression) Kind() ast.NodeKind { return KindTextExpression }

// Dump implements ast.Node.
func (n *TextExpression) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Value": n.Value}, nil)
}

// JSXTag is a single inline JSX tag. Opening and closing tags are paired
// into elements when the tree is mapped.
type JSXTag struct {
	ast.BaseInline

	tag
}

// Kind implements ast.Node.
func (n *JSXTag) Kind() ast.NodeKind { return KindJSXTag }

// Dump implements ast.Node.
func (n *JSXTag) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Tag": string(source[n.start:n.end]),
	}, nil)
}
