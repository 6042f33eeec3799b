//go:build !windows

package path

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rtvm/rtvm/src/internal/constants"
	"github.com/rtvm/rtvm/src/internal/ui"
)

// DetectShell returns the user's shell name (bash, zsh, fish, etc.)
func DetectShell() string {
	shell := os.Getenv("SHELL")
	if shell == "" {
		return "unknown"
	}
	return filepath.Base(shell)
}

// GetShellConfigFile returns the config file path for the given shell
func GetShellConfigFile(shell string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	switch shell {
	case constants.ShellBash:
		// Prefer .bashrc if it exists, otherwise .bash_profile
		bashrc := filepath.Join(home, ".bashrc")
		if _, err := os.Stat(bashrc); err == nil {
			return bashrc
		}
		return filepath.Join(home, ".bash_profile")

	case constants.ShellZsh:
		return filepath.Join(home, ".zshrc")

	case constants.ShellFish:
		return filepath.Join(home, ".config", "fish", "config.fish")

	default:
		return filepath.Join(home, ".profile")
	}
}

func exportLine(shell, binDir string) string {
	if shell == constants.ShellFish {
		return fmt.Sprintf("\n# Added by rtvm\nset -gx PATH \"%s\" $PATH\n", binDir)
	}
	return fmt.Sprintf("\n# Added by rtvm\nexport PATH=\"%s:$PATH\"\n", binDir)
}

func appendToConfig(shell, configFile, line string) error {
	if shell == constants.ShellFish {
		if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	f, err := os.OpenFile(configFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to write to config file: %w", err)
	}
	return nil
}

// AddToPath interactively adds the bin directory to the user's PATH by
// modifying their shell config.
func AddToPath(binDir string) error {
	shell := DetectShell()
	if shell == "unknown" {
		return fmt.Errorf("could not detect shell - please add %s to your PATH manually", binDir)
	}

	configFile := GetShellConfigFile(shell)
	if configFile == "" {
		return fmt.Errorf("could not determine config file for shell %s", shell)
	}

	if IsInPath(binDir) {
		ui.Info("%s is already in your PATH", binDir)
		return nil
	}

	if containsPathEntry(configFile, binDir) {
		ui.Warning("PATH entry already exists in %s, but is not active in the current shell", configFile)
		ui.Info("Please restart your terminal or run: source %s", configFile)
		return nil
	}

	line := exportLine(shell, binDir)

	ui.Header("PATH Setup Required")
	ui.Info("rtvm needs to add its bin directory to your PATH")
	ui.Info("Shell: %s", ui.Highlight(shell))
	ui.Info("Config file: %s", ui.Highlight(configFile))
	ui.Info("Will append: %s", ui.Highlight(strings.TrimSpace(line)))

	if !ui.Confirm("\nProceed?", true) {
		ui.Warning("PATH not modified. Please add this manually to your %s:", configFile)
		ui.Info("%s", strings.TrimSpace(line))
		return nil
	}

	if err := appendToConfig(shell, configFile, line); err != nil {
		return err
	}

	ui.Success("Added %s to PATH in %s", binDir, configFile)
	ui.Warning("Please restart your terminal or run: source %s", configFile)

	return nil
}

// EnsureRegistered puts the bin directory on the PATH without prompting.
// It runs on every version switch, so it must be idempotent: the shell
// config is only appended to when it has no rtvm entry yet.
func EnsureRegistered(binDir string) error {
	if IsInPath(binDir) {
		return nil
	}

	shell := DetectShell()
	if shell == "unknown" {
		ui.Warning("Could not detect your shell; add %s to your PATH manually", binDir)
		return nil
	}

	configFile := GetShellConfigFile(shell)
	if configFile == "" {
		ui.Warning("Could not locate a config file for %s; add %s to your PATH manually", shell, binDir)
		return nil
	}

	if containsPathEntry(configFile, binDir) {
		ui.Debug("PATH entry already present in %s", configFile)
		return nil
	}

	if err := appendToConfig(shell, configFile, exportLine(shell, binDir)); err != nil {
		return err
	}

	ui.Info("Added %s to PATH in %s", binDir, configFile)
	ui.Warning("Restart your terminal or run: source %s", configFile)

	return nil
}

// containsPathEntry checks if the config file already puts binDir on the PATH
func containsPathEntry(configFile, binDir string) bool {
	f, err := os.Open(configFile)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, binDir) && strings.Contains(strings.ToUpper(line), "PATH") {
			return true
		}
	}

	return false
}
