package lint

import (
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/mdast"
)

// AdmonitionName is the JSX element name used for callout boxes.
const AdmonitionName = "Admonition"

// IsAdmonition reports whether n is an <Admonition> flow element.
func IsAdmonition(n *mdast.Node) bool {
	return n != nil && n.Kind == mdast.KindMdxJsxFlowElement && n.Name == AdmonitionName
}

// IsJSXElement reports whether n is a JSX element, flow or inline.
func IsJSXElement(n *mdast.Node) bool {
	return n != nil && (n.Kind == mdast.KindMdxJsxFlowElement || n.Kind == mdast.KindMdxJsxTextElement)
}

// LiteralAttribute returns the value of a quoted string attribute. Boolean
// and expression attributes are not literal.
func LiteralAttribute(n *mdast.Node, name string) (string, bool) {
	attr, ok := n.Attribute(name)
	if !ok || !attr.HasValue || attr.IsExpression {
		return "", false
	}
	return attr.Value, true
}

// Headings returns all heading nodes under root.
func Headings(root *mdast.Node) []*mdast.Node {
	return mdast.FindByKind(root, mdast.KindHeading)
}

// Admonitions returns all admonition elements under root.
func Admonitions(root *mdast.Node) []*mdast.Node {
	return mdast.FindAll(root, IsAdmonition)
}

// IsLinkLike reports whether n carries a URL.
func IsLinkLike(n *mdast.Node) bool {
	return n != nil && (n.Kind == mdast.KindLink || n.Kind == mdast.KindImage)
}

// HasAncestor reports whether any ancestor of n has the given kind.
func HasAncestor(n *mdast.Node, kind mdast.Kind) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind == kind {
			return true
		}
	}
	return false
}
