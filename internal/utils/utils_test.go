package utils_test

import (
	"reflect"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/temirov/concat/internal/utils"
)

func TestDeduplicateValues(testingInstance *testing.T) {
	testCases := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "keeps_first_occurrence", input: []string{"go", "md", "go", "txt", "md"}, expected: []string{"go", "md", "txt"}},
		{name: "empty_input", input: nil, expected: []string{}},
		{name: "no_duplicates", input: []string{"a", "b"}, expected: []string{"a", "b"}},
	}
	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(subTest *testing.T) {
			actual := utils.DeduplicateValues(testCase.input)
			if !reflect.DeepEqual(actual, testCase.expected) {
				subTest.Fatalf("expected %v, got %v", testCase.expected, actual)
			}
		})
	}
}

func TestNewApplicationLoggerEnablesWarnings(testingInstance *testing.T) {
	logger, loggerError := utils.NewApplicationLogger()
	if loggerError != nil {
		testingInstance.Fatalf("NewApplicationLogger error: %v", loggerError)
	}
	if !logger.Core().Enabled(zapcore.WarnLevel) || !logger.Core().Enabled(zapcore.InfoLevel) {
		testingInstance.Fatalf("expected info and warning levels to be enabled")
	}
}
