package tree

import (
	fs "github.com/dreitier/treelist/storage/fs"
)

// Node is one path segment of the built tree. Directories carry the summed size of all files below them, files
// their own size.
type Node struct {
	Name     string
	Size     int64
	IsDir    bool
	Children map[string]*Node
}

func newNode(name string) *Node {
	return &Node{
		Name:     name,
		Children: make(map[string]*Node),
	}
}

// Build converts a flat listing into a tree. The result does not depend on the order of the entries: sizes are
// added up and a name that any entry marks as directory stays a directory.
func Build(entries []fs.Entry) *Node {
	root := newNode("")
	root.IsDir = true

	for _, entry := range entries {
		root.add(entry)
	}

	return root
}

func (n *Node) add(entry fs.Entry) {
	segments := entry.Segments()

	if len(segments) == 0 {
		return
	}

	var size int64
	if !entry.IsDir {
		size = entry.Size
	}

	n.Size += size
	current := n
	last := len(segments) - 1

	for i, segment := range segments {
		child, exists := current.Children[segment]

		if !exists {
			child = newNode(segment)
			current.Children[segment] = child
		}

		child.Size += size

		if i < last || entry.IsDir {
			child.IsDir = true
		}

		current = child
	}
}

// Child follows the given segments from n and returns nil if a segment does not exist
func (n *Node) Child(segments ...string) *Node {
	current := n

	for _, segment := range segments {
		next, exists := current.Children[segment]

		if !exists {
			return nil
		}

		current = next
	}

	return current
}

// Walk calls fn for n and every node below it, parents before children. Siblings are visited in no particular order.
func (n *Node) Walk(fn func(node *Node, depth int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(node *Node, depth int), depth int) {
	fn(n, depth)

	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}
