// Package types defines every cross‑package data structure used by the concat CLI.
package types

// TopLevelPath is one path supplied by the caller together with the files discovered under it.
type TopLevelPath struct {
	InputPath    string
	AbsolutePath string
	IsDir        bool
	Exists       bool
	Files        []string
}

// TreeNode is one level of the rendered directory structure.
type TreeNode struct {
	Directories map[string]*TreeNode
	Files       []string
}

// NewTreeNode returns an empty tree level.
func NewTreeNode() *TreeNode {
	return &TreeNode{Directories: map[string]*TreeNode{}}
}

// Child returns the named subdirectory level, creating it when absent.
func (node *TreeNode) Child(name string) *TreeNode {
	if node.Directories == nil {
		node.Directories = map[string]*TreeNode{}
	}
	child, exists := node.Directories[name]
	if !exists {
		child = NewTreeNode()
		node.Directories[name] = child
	}
	return child
}

// OutputSummary captures aggregate information about the concatenated output.
type OutputSummary struct {
	TotalFiles  int
	TotalSize   string
	TotalTokens int
	Model       string
}
