package huffman

import (
	"fmt"

	"github.com/SnellerInc/sneller/heap"
)

// NodeKind discriminates the two node variants.
type NodeKind uint8

const (
	LeafNode NodeKind = iota
	InternalNode
)

// Node is a node of a Huffman tree. A LeafNode carries a Symbol; an
// InternalNode owns exactly two children. Weight is the count of a leaf
// or the sum of the children's weights.
type Node struct {
	Kind   NodeKind
	Symbol Symbol
	Weight uint64
	Left   *Node
	Right  *Node
}

// NewLeaf returns a leaf node for s.
func NewLeaf(s Symbol, weight uint64) *Node {
	return &Node{Kind: LeafNode, Symbol: s, Weight: weight}
}

// NewInternal returns an internal node owning left and right.
func NewInternal(left, right *Node) *Node {
	return &Node{
		Kind:   InternalNode,
		Weight: left.Weight + right.Weight,
		Left:   left,
		Right:  right,
	}
}

// IsLeaf reports whether n is a leaf.
func (n *Node) IsLeaf() bool { return n.Kind == LeafNode }

// Depth returns the length of the longest root-to-leaf path.
func (n *Node) Depth() int {
	if n == nil || n.IsLeaf() {
		return 0
	}
	return 1 + max(n.Left.Depth(), n.Right.Depth())
}

// Leaves returns the number of leaves below n.
func (n *Node) Leaves() int {
	if n == nil {
		return 0
	}
	if n.IsLeaf() {
		return 1
	}
	return n.Left.Leaves() + n.Right.Leaves()
}

// treeItem is a heap entry. seq is the position the node would take in
// the descending, stably re-sorted list: leaves keep their rank and
// merged nodes are numbered after every existing entry.
type treeItem struct {
	node *Node
	seq  int
}

// lowerItem pops the lowest weight first; on equal weight it pops the
// entry that sits last in the descending list (highest seq).
func lowerItem(a, b treeItem) bool {
	if a.node.Weight != b.node.Weight {
		return a.node.Weight < b.node.Weight
	}
	return a.seq > b.seq
}

// BuildTree merges the two lowest-weight entries of list until one root
// remains. The first entry removed becomes the left child. A list with a
// single entry yields a lone leaf.
func BuildTree(list RankedFrequencyList) (*Node, error) {
	if len(list) == 0 {
		return nil, ErrEmptyHeap
	}
	if err := list.Validate(); err != nil {
		return nil, fmt.Errorf("build tree: %w", err)
	}

	q := make([]treeItem, len(list))
	for i, e := range list {
		q[i] = treeItem{node: NewLeaf(e.Symbol, e.Count), seq: i}
	}
	heap.OrderSlice(q, lowerItem)

	seq := len(list)
	for len(q) > 1 {
		left := heap.PopSlice(&q, lowerItem)
		right := heap.PopSlice(&q, lowerItem)
		heap.PushSlice(&q, treeItem{node: NewInternal(left.node, right.node), seq: seq}, lowerItem)
		seq++
	}
	return q[0].node, nil
}
