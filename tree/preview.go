package tree

import (
	"code.cloudfoundry.org/bytefmt"
	"github.com/xlab/treeprint"
)

// Preview renders root as a console tree in the same order as Render, annotated with human-readable sizes
func Preview(root *Node, title string) string {
	printer := treeprint.NewWithRoot(title)
	addPreviewChildren(printer, root, 1)

	return printer.String()
}

func addPreviewChildren(branch treeprint.Tree, node *Node, depth int) {
	dirs, files := Sorted(node, depth)

	for _, dir := range dirs {
		sub := branch.AddMetaBranch(humanSize(dir.Size), dir.Name)
		addPreviewChildren(sub, dir, depth+1)
	}

	for _, file := range files {
		branch.AddMetaNode(humanSize(file.Size), file.Name)
	}
}

func humanSize(size int64) string {
	if size < 0 {
		size = 0
	}

	return bytefmt.ByteSize(uint64(size))
}
