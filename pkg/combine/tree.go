// File: pkg/combine/tree.go
package combine

import (
	"path/filepath"
	"sort"
	"strings"
)

// treeNode is one path segment of the copied-file tree.
type treeNode struct {
	name     string
	isDir    bool
	children map[string]*treeNode
}

// Tree renders the files that were copied as a directory tree rooted at the
// source directory. Directories come first, then files, each group sorted
// case-insensitively.
func (r *Result) Tree() string {
	root := &treeNode{isDir: true, children: make(map[string]*treeNode)}
	for _, e := range r.Written {
		parts := strings.Split(filepath.ToSlash(e.Source), "/")
		node := root
		for i, part := range parts {
			child, ok := node.children[part]
			if !ok {
				child = &treeNode{name: part, isDir: i < len(parts)-1, children: make(map[string]*treeNode)}
				node.children[part] = child
			}
			node = child
		}
	}

	var treeBuilder strings.Builder
	treeBuilder.WriteString(filepath.ToSlash(r.SourceRoot))
	treeBuilder.WriteString("/\n")
	writeTree(&treeBuilder, root, "")
	return treeBuilder.String()
}

func writeTree(b *strings.Builder, node *treeNode, prefix string) {
	children := make([]*treeNode, 0, len(node.children))
	for _, child := range node.children {
		children = append(children, child)
	}
	sort.Slice(children, func(i, j int) bool {
		if children[i].isDir != children[j].isDir {
			return children[i].isDir
		}
		return strings.ToLower(children[i].name) < strings.ToLower(children[j].name)
	})

	for i, child := range children {
		connector := "├── "
		extension := "│   "
		if i == len(children)-1 {
			connector = "└── "
			extension = "    "
		}

		b.WriteString(prefix)
		b.WriteString(connector)
		b.WriteString(child.name)
		if child.isDir {
			b.WriteString("/")
		}
		b.WriteString("\n")

		if child.isDir {
			writeTree(b, child, prefix+extension)
		}
	}
}
