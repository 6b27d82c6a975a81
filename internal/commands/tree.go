package commands

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/concat/internal/types"
)

const (
	// IndentUnit is prepended once per nesting level of the rendered tree.
	IndentUnit         = "  "
	directorySuffix    = "/"
	parentSegment      = ".."
	pathSeparatorSlash = "/"
)

// BuildTree groups the files of a directory top-level path by their path segments relative to it.
// Files that resolve outside the directory are placed at the top level under their base name.
func BuildTree(topLevelPath types.TopLevelPath) *types.TreeNode {
	rootNode := types.NewTreeNode()
	for _, filePath := range topLevelPath.Files {
		relativePath, relativePathError := filepath.Rel(topLevelPath.AbsolutePath, filePath)
		if relativePathError != nil || relativePath == parentSegment || strings.HasPrefix(relativePath, parentSegment+string(filepath.Separator)) {
			rootNode.Files = append(rootNode.Files, filepath.Base(filePath))
			continue
		}
		pathSegments := strings.Split(filepath.ToSlash(relativePath), pathSeparatorSlash)
		currentNode := rootNode
		for _, directorySegment := range pathSegments[:len(pathSegments)-1] {
			currentNode = currentNode.Child(directorySegment)
		}
		currentNode.Files = append(currentNode.Files, pathSegments[len(pathSegments)-1])
	}
	return rootNode
}

// RenderTree renders node depth first: sorted subdirectories with their contents, then sorted files.
func RenderTree(node *types.TreeNode, indent string) []string {
	if node == nil {
		return nil
	}
	var lines []string
	directoryNames := make([]string, 0, len(node.Directories))
	for directoryName := range node.Directories {
		directoryNames = append(directoryNames, directoryName)
	}
	sort.Strings(directoryNames)
	for _, directoryName := range directoryNames {
		lines = append(lines, indent+directoryName+directorySuffix)
		lines = append(lines, RenderTree(node.Directories[directoryName], indent+IndentUnit)...)
	}

	fileNames := append([]string(nil), node.Files...)
	sort.Strings(fileNames)
	for _, fileName := range fileNames {
		lines = append(lines, indent+fileName)
	}
	return lines
}

// RenderTopLevelPath renders the tree lines for one top-level path.
// A file input renders as its bare name; a directory input renders its name followed by its subtree.
func RenderTopLevelPath(topLevelPath types.TopLevelPath) []string {
	if len(topLevelPath.Files) == 0 {
		return nil
	}
	if !topLevelPath.IsDir {
		lines := make([]string, 0, len(topLevelPath.Files))
		for _, filePath := range topLevelPath.Files {
			lines = append(lines, filepath.Base(filePath))
		}
		return lines
	}
	lines := []string{directoryName(topLevelPath.AbsolutePath) + directorySuffix}
	return append(lines, RenderTree(BuildTree(topLevelPath), IndentUnit)...)
}

// RenderDirectoryStructure renders every top-level path that has files, in input order.
func RenderDirectoryStructure(topLevelPaths []types.TopLevelPath) []string {
	var lines []string
	for _, topLevelPath := range topLevelPaths {
		lines = append(lines, RenderTopLevelPath(topLevelPath)...)
	}
	return lines
}

// directoryName returns the final path component; the file-system root has an empty name.
func directoryName(directoryPath string) string {
	baseName := filepath.Base(directoryPath)
	if baseName == string(filepath.Separator) || baseName == filepath.VolumeName(directoryPath)+string(filepath.Separator) {
		return ""
	}
	return baseName
}
