// Package utils contains general helper functions used across the concat tool.
package utils

// DeduplicateValues removes duplicate values from a slice while preserving order.
// The first occurrence of each unique value is kept.
func DeduplicateValues(values []string) []string {
	encounteredValues := make(map[string]struct{})
	result := make([]string, 0, len(values))
	for _, value := range values {
		if _, exists := encounteredValues[value]; !exists {
			encounteredValues[value] = struct{}{}
			result = append(result, value)
		}
	}
	return result
}
