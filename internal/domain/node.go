package domain

import (
	"sort"
	"time"
)

// Node is one element of the scanned tree. Size, FileCount and DirCount are
// exact totals over the full subtree even when the levels below have not been
// materialized. Depth-boundary nodes carry no Children and FullyLoaded false;
// a node can also be partial with children when its directory listing failed
// midway.
type Node struct {
	Name        string    `json:"name"`
	Path        string    `json:"fullPath"`
	Size        int64     `json:"size"`
	IsDir       bool      `json:"isDirectory"`
	FileCount   int       `json:"fileCount"`
	DirCount    int       `json:"directoryCount"`
	ModTime     time.Time `json:"lastModified"`
	FullyLoaded bool      `json:"isFullyLoaded"`
	Children    []*Node   `json:"children,omitempty"`

	// Parent is a lookup-only back-reference, never serialized. It is
	// rebuilt after deserialization with AttachParents.
	Parent *Node `json:"-"`
}

// SortChildren orders Children descending by size. Every mutation of the
// children list must restore this order before the node is handed out.
func (node *Node) SortChildren() {
	sort.SliceStable(node.Children, func(i, j int) bool {
		return node.Children[i].Size > node.Children[j].Size
	})
}

// AdoptChildren replaces node's children, counts and loaded flag with those
// of fresh, re-pointing every new child at node. Size is deliberately not
// taken from fresh: it keeps the value of the original boundary measurement,
// so totals stay consistent across the whole tree even when the directory
// changed in between.
func (node *Node) AdoptChildren(fresh *Node) {
	node.Children = fresh.Children
	for _, child := range node.Children {
		child.Parent = node
	}
	node.FileCount = fresh.FileCount
	node.DirCount = fresh.DirCount
	node.FullyLoaded = fresh.FullyLoaded
}

// AttachParents walks the subtree and points every child back at the node
// whose Children slice contains it.
func (node *Node) AttachParents() {
	for _, child := range node.Children {
		child.Parent = node
		child.AttachParents()
	}
}

// Root follows parent references up to the tree root.
func (node *Node) Root() *Node {
	current := node
	for current.Parent != nil {
		current = current.Parent
	}
	return current
}

// Depth is the number of parent hops to the root.
func (node *Node) Depth() int {
	depth := 0
	for current := node.Parent; current != nil; current = current.Parent {
		depth++
	}
	return depth
}
