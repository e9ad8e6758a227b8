package rope

import "strings"

// node is either a leaf (left and right nil) holding chunk, or an internal
// node with two non-nil children.
type node struct {
	left, right *node
	chunk       string
	sum         summary
	height      int
}

func newLeaf(s string) *node {
	if s == "" {
		return nil
	}
	return &node{chunk: s, sum: summarize(s)}
}

func newInternal(left, right *node) *node {
	return &node{
		left:   left,
		right:  right,
		sum:    left.sum.add(right.sum),
		height: max(left.height, right.height) + 1,
	}
}

func (n *node) isLeaf() bool {
	return n.left == nil
}

func heightOf(n *node) int {
	if n == nil {
		return -1
	}
	return n.height
}

// buildBalanced builds a perfectly balanced tree over the given leaves.
func buildBalanced(leaves []*node) *node {
	switch len(leaves) {
	case 0:
		return nil
	case 1:
		return leaves[0]
	}
	mid := len(leaves) / 2
	return newInternal(buildBalanced(leaves[:mid]), buildBalanced(leaves[mid:]))
}

// join concatenates two trees, keeping the result height balanced.
func join(left, right *node) *node {
	switch {
	case left == nil:
		return right
	case right == nil:
		return left
	}

	if left.isLeaf() && right.isLeaf() && left.sum.bytes+right.sum.bytes <= MaxChunkSize {
		return newLeaf(left.chunk + right.chunk)
	}

	switch {
	case left.height > right.height+1:
		return rebalance(newInternal(left.left, join(left.right, right)))
	case right.height > left.height+1:
		return rebalance(newInternal(join(left, right.left), right.right))
	default:
		return newInternal(left, right)
	}
}

// rebalance performs a single or double rotation when the children of n
// differ in height by more than one.
func rebalance(n *node) *node {
	diff := heightOf(n.left) - heightOf(n.right)
	switch {
	case diff > 1:
		l := n.left
		if heightOf(l.left) < heightOf(l.right) {
			l = rotateLeft(l)
		}
		return rotateRight(newInternal(l, n.right))
	case diff < -1:
		r := n.right
		if heightOf(r.right) < heightOf(r.left) {
			r = rotateRight(r)
		}
		return rotateLeft(newInternal(n.left, r))
	default:
		return n
	}
}

func rotateLeft(n *node) *node {
	r := n.right
	if r.isLeaf() {
		return n
	}
	return newInternal(newInternal(n.left, r.left), r.right)
}

func rotateRight(n *node) *node {
	l := n.left
	if l.isLeaf() {
		return n
	}
	return newInternal(l.left, newInternal(l.right, n.right))
}

// split cuts the tree at byte offset off into [0, off) and [off, len).
func split(n *node, off int) (*node, *node) {
	if n == nil {
		return nil, nil
	}
	if off <= 0 {
		return nil, n
	}
	if off >= n.sum.bytes {
		return n, nil
	}
	if n.isLeaf() {
		return newLeaf(n.chunk[:off]), newLeaf(n.chunk[off:])
	}

	leftBytes := n.left.sum.bytes
	if off <= leftBytes {
		a, b := split(n.left, off)
		return a, join(b, n.right)
	}
	a, b := split(n.right, off-leftBytes)
	return join(n.left, a), b
}

// byteAt returns the byte at off, which must be in range.
func (n *node) byteAt(off int) byte {
	for !n.isLeaf() {
		if off < n.left.sum.bytes {
			n = n.left
		} else {
			off -= n.left.sum.bytes
			n = n.right
		}
	}
	return n.chunk[off]
}

// newlinesBefore counts newlines in [0, off).
func (n *node) newlinesBefore(off int) int {
	count := 0
	for n != nil {
		if n.isLeaf() {
			return count + strings.Count(n.chunk[:min(off, len(n.chunk))], "\n")
		}
		if off <= n.left.sum.bytes {
			n = n.left
			continue
		}
		count += n.left.sum.newlines
		off -= n.left.sum.bytes
		n = n.right
	}
	return count
}

// offsetAfterNewline returns the offset just past the k-th newline (1-based).
func (n *node) offsetAfterNewline(k int) int {
	offset := 0
	for !n.isLeaf() {
		if k <= n.left.sum.newlines {
			n = n.left
			continue
		}
		k -= n.left.sum.newlines
		offset += n.left.sum.bytes
		n = n.right
	}
	pos := 0
	for ; k > 0; k-- {
		idx := strings.IndexByte(n.chunk[pos:], '\n')
		pos += idx + 1
	}
	return offset + pos
}

// walk calls fn for every chunk piece intersecting [start, end), in order.
// It stops early when fn returns false.
func (n *node) walk(start, end int, fn func(string) bool) bool {
	if n == nil || start >= end {
		return true
	}
	if n.isLeaf() {
		return fn(n.chunk[max(start, 0):min(end, len(n.chunk))])
	}
	leftBytes := n.left.sum.bytes
	if start < leftBytes {
		if !n.left.walk(start, min(end, leftBytes), fn) {
			return false
		}
	}
	if end > leftBytes {
		return n.right.walk(max(start-leftBytes, 0), end-leftBytes, fn)
	}
	return true
}
