// Package filter decides which files take part in a concatenation based on their extensions.
package filter

import (
	"path/filepath"
	"strings"
)

const extensionSeparator = "."

// Spec holds the include and exclude extension sets. Extensions are lower-case and carry no dot.
type Spec struct {
	IncludeExtensions map[string]struct{}
	ExcludeExtensions map[string]struct{}
}

// NewSpec builds a Spec from raw user values such as "PY", ".txt" or "md".
// A nil or empty slice leaves the corresponding set empty.
func NewSpec(includeValues []string, excludeValues []string) Spec {
	return Spec{
		IncludeExtensions: normalizeExtensions(includeValues),
		ExcludeExtensions: normalizeExtensions(excludeValues),
	}
}

func normalizeExtensions(rawValues []string) map[string]struct{} {
	if len(rawValues) == 0 {
		return nil
	}
	normalized := make(map[string]struct{}, len(rawValues))
	for _, rawValue := range rawValues {
		normalized[NormalizeExtension(rawValue)] = struct{}{}
	}
	return normalized
}

// NormalizeExtension lower-cases a user supplied extension and strips every leading dot.
func NormalizeExtension(rawValue string) string {
	return strings.TrimLeft(strings.ToLower(rawValue), extensionSeparator)
}

// Extension returns the lower-cased extension of the final path component without its dot.
// Names without a dot, names whose only dot leads (".bashrc") and names ending with a dot
// have no extension.
func Extension(filePath string) string {
	baseName := filepath.Base(filePath)
	separatorIndex := strings.LastIndex(baseName, extensionSeparator)
	if separatorIndex <= 0 || separatorIndex == len(baseName)-1 {
		return ""
	}
	return strings.ToLower(baseName[separatorIndex+1:])
}

// Allows reports whether the file at filePath passes the filter.
// Exclusion wins when an extension appears in both sets.
func (spec Spec) Allows(filePath string) bool {
	extension := Extension(filePath)
	if len(spec.IncludeExtensions) > 0 {
		if _, included := spec.IncludeExtensions[extension]; !included {
			return false
		}
	}
	if _, excluded := spec.ExcludeExtensions[extension]; excluded {
		return false
	}
	return true
}
