// Package commands contains the core logic for collecting files and rendering their structure.
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/temirov/concat/internal/filter"
	"github.com/temirov/concat/internal/types"
)

const (
	// warningMissingPathFormat is emitted when a top-level path does not exist.
	warningMissingPathFormat = "Warning: %s does not exist. Skipping."
	// warningStatPathFormat is emitted when a top-level path cannot be inspected.
	warningStatPathFormat = "Warning: unable to stat %s: %v. Skipping."
	// warningUnsupportedPathFormat is emitted for top-level paths that are neither files nor directories.
	warningUnsupportedPathFormat = "Warning: %s is not a regular file or directory. Skipping."
	// warningAbsolutePathFormat is emitted when an input cannot be resolved to an absolute path.
	warningAbsolutePathFormat = "Warning: unable to resolve %s: %v. Skipping."
	// warningReadDirectoryFormat is emitted when a directory cannot be listed.
	warningReadDirectoryFormat = "Warning: unable to read directory %s: %v"
	// warningAccessPathFormat is emitted when the recursive walk cannot access an entry.
	warningAccessPathFormat = "Warning: error accessing path %s: %v"
)

// Discoverer collects the files named by top-level paths.
type Discoverer struct {
	Recursive bool
	Filter    filter.Spec
	Logger    *zap.Logger
}

// Discover resolves every input path and gathers the files that pass the filter.
// Results keep the order of the inputs; inputs resolving to the same location collapse into one entry.
func (discoverer Discoverer) Discover(inputPaths []string) []types.TopLevelPath {
	var topLevelPaths []types.TopLevelPath
	seenPaths := make(map[string]struct{})
	for _, inputPath := range inputPaths {
		topLevelPath, resolved := discoverer.discoverPath(inputPath)
		if !resolved {
			continue
		}
		if _, seen := seenPaths[topLevelPath.AbsolutePath]; seen {
			continue
		}
		seenPaths[topLevelPath.AbsolutePath] = struct{}{}
		topLevelPaths = append(topLevelPaths, topLevelPath)
	}
	return topLevelPaths
}

// FlattenFiles returns every discovered file sorted by its full path. Duplicates are kept.
func FlattenFiles(topLevelPaths []types.TopLevelPath) []string {
	var allFiles []string
	for _, topLevelPath := range topLevelPaths {
		allFiles = append(allFiles, topLevelPath.Files...)
	}
	sort.Strings(allFiles)
	return allFiles
}

func (discoverer Discoverer) discoverPath(inputPath string) (types.TopLevelPath, bool) {
	absolutePath, absolutePathError := filepath.Abs(inputPath)
	if absolutePathError != nil {
		discoverer.warn(fmt.Sprintf(warningAbsolutePathFormat, inputPath, absolutePathError))
		return types.TopLevelPath{}, false
	}
	canonical := canonicalPath(absolutePath)
	topLevelPath := types.TopLevelPath{InputPath: inputPath, AbsolutePath: canonical}

	pathInfo, statError := os.Stat(canonical)
	if statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			discoverer.warn(fmt.Sprintf(warningMissingPathFormat, canonical))
		} else {
			discoverer.warn(fmt.Sprintf(warningStatPathFormat, canonical, statError))
		}
		return topLevelPath, true
	}
	topLevelPath.Exists = true

	switch {
	case pathInfo.Mode().IsRegular():
		if discoverer.Filter.Allows(canonical) {
			topLevelPath.Files = []string{canonical}
		}
	case pathInfo.IsDir():
		topLevelPath.IsDir = true
		if discoverer.Recursive {
			topLevelPath.Files = discoverer.walkDirectory(canonical)
		} else {
			topLevelPath.Files = discoverer.listDirectory(canonical)
		}
	default:
		discoverer.warn(fmt.Sprintf(warningUnsupportedPathFormat, canonical))
	}
	sort.Strings(topLevelPath.Files)
	return topLevelPath, true
}

// listDirectory returns the direct children of directoryPath that are regular files.
func (discoverer Discoverer) listDirectory(directoryPath string) []string {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		discoverer.warn(fmt.Sprintf(warningReadDirectoryFormat, directoryPath, readDirectoryError))
		return nil
	}
	var files []string
	for _, directoryEntry := range directoryEntries {
		childPath := filepath.Join(directoryPath, directoryEntry.Name())
		if !isRegularFile(childPath, directoryEntry) {
			continue
		}
		if discoverer.Filter.Allows(childPath) {
			files = append(files, canonicalPath(childPath))
		}
	}
	return files
}

// walkDirectory returns every regular file below rootPath. Symlinked directories are not descended into.
func (discoverer Discoverer) walkDirectory(rootPath string) []string {
	var files []string
	walkError := filepath.WalkDir(rootPath, func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		if accessError != nil {
			discoverer.warn(fmt.Sprintf(warningAccessPathFormat, walkedPath, accessError))
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if directoryEntry.IsDir() {
			return nil
		}
		if !isRegularFile(walkedPath, directoryEntry) {
			return nil
		}
		if discoverer.Filter.Allows(walkedPath) {
			files = append(files, canonicalPath(walkedPath))
		}
		return nil
	})
	if walkError != nil {
		discoverer.warn(fmt.Sprintf(warningAccessPathFormat, rootPath, walkError))
	}
	return files
}

func (discoverer Discoverer) warn(message string) {
	if discoverer.Logger == nil {
		return
	}
	discoverer.Logger.Warn(message)
}

// isRegularFile reports whether the entry is a regular file, following symbolic links.
func isRegularFile(entryPath string, directoryEntry fs.DirEntry) bool {
	if directoryEntry.Type().IsRegular() {
		return true
	}
	if directoryEntry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	targetInfo, statError := os.Stat(entryPath)
	if statError != nil {
		return false
	}
	return targetInfo.Mode().IsRegular()
}

// canonicalPath resolves symbolic links. Paths that cannot be resolved are returned cleaned.
func canonicalPath(absolutePath string) string {
	resolvedPath, resolveError := filepath.EvalSymlinks(absolutePath)
	if resolveError != nil {
		return filepath.Clean(absolutePath)
	}
	return resolvedPath
}
