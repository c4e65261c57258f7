package completion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// NewUninstallCmd creates the uninstall-autocomplete command
func NewUninstallCmd() *cobra.Command {
	var shellFlag string

	cmd := &cobra.Command{
		Use:   "uninstall-autocomplete",
		Short: "Uninstall shell completion for shrink",
		Long:  `Uninstall the shell completion script for the shrink CLI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get home directory: %w", err)
			}
			return runUninstall(shellFlag, home)
		},
	}

	cmd.Flags().StringVarP(&shellFlag, "shell", "s", "", "Shell to uninstall completion from (bash, zsh, fish, powershell). Auto-detected if not specified.")

	return cmd
}

func runUninstall(shellFlag string, home string) error {
	var shell Shell
	var err error

	if shellFlag != "" {
		shell = Shell(shellFlag)
	} else {
		shell, err = DetectShell()
		if err != nil {
			return fmt.Errorf("failed to detect shell: %w\nSpecify shell explicitly with --shell flag", err)
		}
	}

	installPath, err := GetInstallPath(shell, home)
	if err != nil {
		return err
	}

	if _, err := os.Stat(installPath); os.IsNotExist(err) {
		return fmt.Errorf("completion not installed for %s (expected at %s)", shell, installPath)
	}

	if shell == Bash {
		bashCompletionFile := filepath.Join(home, ".bash_completion")
		if err := disableBashAutoLoad(bashCompletionFile, installPath); err != nil {
			fmt.Printf("Warning: could not disable auto-load: %v\n", err)
		}
	}

	if err := os.Remove(installPath); err != nil {
		return fmt.Errorf("failed to remove completion file: %w", err)
	}

	fmt.Printf("Shell completion uninstalled successfully for %s\n", shell)
	fmt.Printf("Removed: %s\n", installPath)
	printCleanupInstructions(shell)

	return nil
}

func printCleanupInstructions(shell Shell) {
	switch shell {
	case Bash, Zsh:
		fmt.Println("\nRestart your shell to complete removal.")

	case Fish:
		fmt.Println("\nRestart fish to complete removal: exec fish")

	case Powershell:
		fmt.Println("\nYou may want to remove the source line from your PowerShell profile")
	}
}

// disableBashAutoLoad drops the source line for installPath from the bash
// completion file.
// bashCompletionFile is injected for testability (production: ~/.bash_completion).
func disableBashAutoLoad(bashCompletionFile, installPath string) error {
	content, err := os.ReadFile(bashCompletionFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var kept []string
	for _, line := range strings.Split(string(content), "\n") {
		if !strings.Contains(line, installPath) {
			kept = append(kept, line)
		}
	}

	return os.WriteFile(bashCompletionFile, []byte(strings.Join(kept, "\n")), 0644)
}
