package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/concat/internal/utils"
)

type configTestCase struct {
	name            string
	globalContent   string
	localContent    string
	explicitPath    string
	explicitContent string
	expectRecursive *bool
	expectOutput    string
	expectInclude   []string
	expectExclude   []string
	expectTokens    *bool
	expectModel     string
	expectClipboard *bool
}

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []configTestCase{
		{
			name:            "local_overrides_global",
			globalContent:   "recursive: true\ninclude: [go, md]\nclipboard: true\ntokens:\n  model: gpt-4\n",
			localContent:    "recursive: false\ninclude: [py, py]\noutput: bundle.txt\ntokens:\n  enabled: true\n",
			expectRecursive: boolPointer(false),
			expectOutput:    "bundle.txt",
			expectInclude:   []string{"py"},
			expectExclude:   []string{},
			expectTokens:    boolPointer(true),
			expectModel:     "gpt-4",
			expectClipboard: boolPointer(true),
		},
		{
			name:            "explicit_path_replaces_local_file",
			globalContent:   "exclude: [log]\n",
			localContent:    "recursive: true\n",
			explicitPath:    "custom.yaml",
			explicitContent: "output: custom.txt\n",
			expectRecursive: nil,
			expectOutput:    "custom.txt",
			expectInclude:   []string{},
			expectExclude:   []string{"log"},
		},
		{
			name:          "no_files_yield_empty_configuration",
			expectInclude: []string{},
			expectExclude: []string{},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := t.TempDir()
			workingDir := t.TempDir()
			configDir := filepath.Join(homeDir, utils.GlobalConfigDirectoryName)
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				t.Fatalf("create config dir: %v", err)
			}
			if testCase.globalContent != "" {
				globalPath := filepath.Join(configDir, utils.GlobalConfigFileName)
				if err := os.WriteFile(globalPath, []byte(testCase.globalContent), 0o600); err != nil {
					t.Fatalf("write global config: %v", err)
				}
			}
			if testCase.localContent != "" {
				localPath := filepath.Join(workingDir, utils.ConfigFileName)
				if err := os.WriteFile(localPath, []byte(testCase.localContent), 0o600); err != nil {
					t.Fatalf("write local config: %v", err)
				}
			}
			if testCase.explicitPath != "" {
				target := filepath.Join(workingDir, testCase.explicitPath)
				if err := os.WriteFile(target, []byte(testCase.explicitContent), 0o600); err != nil {
					t.Fatalf("write explicit config: %v", err)
				}
			}

			t.Setenv("HOME", homeDir)
			t.Setenv("USERPROFILE", homeDir)

			loadedConfig, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDir,
				ExplicitFilePath: testCase.explicitPath,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}

			assertBoolPointer(t, "recursive", loadedConfig.Recursive, testCase.expectRecursive)
			assertBoolPointer(t, "tokens.enabled", loadedConfig.Tokens.Enabled, testCase.expectTokens)
			assertBoolPointer(t, "clipboard", loadedConfig.Clipboard, testCase.expectClipboard)
			if loadedConfig.Output != testCase.expectOutput {
				t.Fatalf("expected output %q, got %q", testCase.expectOutput, loadedConfig.Output)
			}
			if loadedConfig.Tokens.Model != testCase.expectModel {
				t.Fatalf("expected model %q, got %q", testCase.expectModel, loadedConfig.Tokens.Model)
			}
			if !reflect.DeepEqual(loadedConfig.Include, testCase.expectInclude) {
				t.Fatalf("expected include %v, got %v", testCase.expectInclude, loadedConfig.Include)
			}
			if !reflect.DeepEqual(loadedConfig.Exclude, testCase.expectExclude) {
				t.Fatalf("expected exclude %v, got %v", testCase.expectExclude, loadedConfig.Exclude)
			}
		})
	}
}

func TestLoadApplicationConfigurationRequiresExplicitFile(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)
	_, err := LoadApplicationConfiguration(LoadOptions{
		WorkingDirectory: t.TempDir(),
		ExplicitFilePath: "missing.yaml",
	})
	if err == nil {
		t.Fatalf("expected error for missing explicit configuration file")
	}
}

func TestLoadApplicationConfigurationRejectsMalformedFile(t *testing.T) {
	homeDir := t.TempDir()
	workingDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)
	localPath := filepath.Join(workingDir, utils.ConfigFileName)
	if err := os.WriteFile(localPath, []byte("include: [unterminated\n"), 0o600); err != nil {
		t.Fatalf("write local config: %v", err)
	}
	if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir}); err == nil {
		t.Fatalf("expected error for malformed configuration")
	}
}

func TestBoolValue(t *testing.T) {
	if BoolValue(nil, true) != true {
		t.Fatalf("expected fallback for nil value")
	}
	if BoolValue(boolPointer(false), true) != false {
		t.Fatalf("expected explicit value to win over fallback")
	}
}

func assertBoolPointer(t *testing.T, label string, actual *bool, expected *bool) {
	t.Helper()
	if expected == nil {
		if actual != nil {
			t.Fatalf("expected no %s override, got %v", label, *actual)
		}
		return
	}
	if actual == nil || *actual != *expected {
		t.Fatalf("unexpected %s value", label)
	}
}
