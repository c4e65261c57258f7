package completion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func newTestRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shrink",
		Short: "Test command",
	}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "pdf",
		Short: "Compress a PDF",
	})
	return rootCmd
}

func TestNewInstallCmd(t *testing.T) {
	cmd := NewInstallCmd(newTestRootCmd())

	if cmd.Use != "install-autocomplete" {
		t.Errorf("NewInstallCmd().Use = %v, want install-autocomplete", cmd.Use)
	}
	if cmd.Flags().Lookup("shell") == nil {
		t.Error("NewInstallCmd() should have --shell flag")
	}
	if cmd.Flags().ShorthandLookup("s") == nil {
		t.Error("NewInstallCmd() should have -s shorthand for --shell flag")
	}
}

func TestGetInstallPath(t *testing.T) {
	tests := []struct {
		shell    Shell
		expected string
	}{
		{Bash, filepath.Join(".bash_completion.d", "shrink")},
		{Zsh, filepath.Join(".zsh", "completion", "_shrink")},
		{Fish, filepath.Join(".config", "fish", "completions", "shrink.fish")},
	}

	for _, tt := range tests {
		path, err := GetInstallPath(tt.shell, "/home/user")
		if err != nil {
			t.Errorf("GetInstallPath(%s) error = %v, want nil", tt.shell, err)
			continue
		}
		if !strings.HasSuffix(path, tt.expected) {
			t.Errorf("GetInstallPath(%s) = %v, want suffix %v", tt.shell, path, tt.expected)
		}
	}

	if _, err := GetInstallPath("tcsh", "/home/user"); err == nil {
		t.Error("GetInstallPath(tcsh) should return error")
	}
}

func TestRunInstall_InvalidShell(t *testing.T) {
	err := runInstall(newTestRootCmd(), "invalidshell", t.TempDir())
	if err == nil {
		t.Error("runInstall() should return error for invalid shell")
	}
	if !strings.Contains(err.Error(), "unsupported shell") {
		t.Errorf("runInstall() error = %v, want error containing 'unsupported shell'", err)
	}
}

func TestRunInstall_WritesScripts(t *testing.T) {
	tests := []struct {
		shell        string
		expectedPath []string
	}{
		{"fish", []string{".config", "fish", "completions", "shrink.fish"}},
		{"zsh", []string{".zsh", "completion", "_shrink"}},
		{"bash", []string{".bash_completion.d", "shrink"}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			tmpDir := t.TempDir()

			if err := runInstall(newTestRootCmd(), tt.shell, tmpDir); err != nil {
				t.Fatalf("runInstall(%s) error = %v, want nil", tt.shell, err)
			}

			scriptPath := filepath.Join(append([]string{tmpDir}, tt.expectedPath...)...)
			content, err := os.ReadFile(scriptPath)
			if err != nil {
				t.Fatalf("runInstall(%s) did not create completion file at %s: %v", tt.shell, scriptPath, err)
			}
			if len(content) == 0 {
				t.Errorf("runInstall(%s) created empty completion file", tt.shell)
			}
		})
	}
}

func TestBashAutoLoadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	bashCompletionFile := filepath.Join(tmpDir, ".bash_completion")
	installPath := filepath.Join(tmpDir, ".bash_completion.d", "shrink")

	if err := enableBashAutoLoad(bashCompletionFile, installPath); err != nil {
		t.Fatalf("enableBashAutoLoad() error = %v, want nil", err)
	}

	content, err := os.ReadFile(bashCompletionFile)
	if err != nil {
		t.Fatalf("Failed to read bash completion file: %v", err)
	}
	if !strings.Contains(string(content), installPath) {
		t.Errorf("Expected source line for %s, got %q", installPath, content)
	}

	// Enabling twice must not duplicate the line
	if err := enableBashAutoLoad(bashCompletionFile, installPath); err != nil {
		t.Fatalf("enableBashAutoLoad() second call error = %v, want nil", err)
	}
	content, _ = os.ReadFile(bashCompletionFile)
	if strings.Count(string(content), installPath) != 1 {
		t.Errorf("Expected exactly one source line, got %q", content)
	}

	if err := disableBashAutoLoad(bashCompletionFile, installPath); err != nil {
		t.Fatalf("disableBashAutoLoad() error = %v, want nil", err)
	}
	content, _ = os.ReadFile(bashCompletionFile)
	if strings.Contains(string(content), installPath) {
		t.Errorf("Expected source line removed, got %q", content)
	}
}

func TestRunUninstall_NotInstalled(t *testing.T) {
	err := runUninstall("fish", t.TempDir())
	if err == nil {
		t.Error("runUninstall() should return error when completion is not installed")
	}
	if !strings.Contains(err.Error(), "not installed") {
		t.Errorf("runUninstall() error = %v, want error containing 'not installed'", err)
	}
}

func TestRunUninstall_RemovesScript(t *testing.T) {
	tmpDir := t.TempDir()

	if err := runInstall(newTestRootCmd(), "fish", tmpDir); err != nil {
		t.Fatalf("runInstall(fish) error = %v, want nil", err)
	}
	if err := runUninstall("fish", tmpDir); err != nil {
		t.Fatalf("runUninstall(fish) error = %v, want nil", err)
	}

	scriptPath := filepath.Join(tmpDir, ".config", "fish", "completions", "shrink.fish")
	if _, err := os.Stat(scriptPath); !os.IsNotExist(err) {
		t.Errorf("Expected completion file removed at %s", scriptPath)
	}
}
