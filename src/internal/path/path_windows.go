//go:build windows

package path

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"unsafe"

	"github.com/rtvm/rtvm/src/internal/ui"
	"golang.org/x/sys/windows/registry"
)

var (
	moduser32              = syscall.NewLazyDLL("user32.dll")
	procSendMessageTimeout = moduser32.NewProc("SendMessageTimeoutW")
)

const (
	HWND_BROADCAST   = 0xffff
	WM_SETTINGCHANGE = 0x001A
	SMTO_ABORTIFHUNG = 0x0002
)

// AddToPath interactively adds the bin directory to the user's PATH on
// Windows by editing the per-user Environment registry key.
func AddToPath(binDir string) error {
	if IsInPath(binDir) {
		ui.Info("%s is already in your PATH", binDir)
		return nil
	}

	ui.Header("PATH Setup Required")
	ui.Info("rtvm needs to add its bin directory to your PATH")
	ui.Info("Directory: %s", ui.Highlight(binDir))
	ui.Info("This will modify your user PATH environment variable")

	if !ui.Confirm("\nProceed?", true) {
		ui.Warning("PATH not modified. You can add it later by running: rtvm init")
		return nil
	}

	key, err := registry.OpenKey(registry.CURRENT_USER, `Environment`, registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open registry key: %w", err)
	}
	defer func() { _ = key.Close() }()

	currentPath, _, err := key.GetStringValue("Path")
	if err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("failed to read current PATH: %w", err)
	}

	for _, p := range strings.Split(currentPath, ";") {
		if strings.EqualFold(strings.TrimSpace(p), binDir) {
			ui.Info("%s is already in your registry PATH", binDir)
			return nil
		}
	}

	// Prepend so rtvm-managed binaries win over system installs
	newPath := binDir
	if currentPath != "" {
		newPath += ";" + currentPath
	}

	if err := key.SetStringValue("Path", newPath); err != nil {
		return fmt.Errorf("failed to update PATH in registry: %w", err)
	}

	broadcastSettingChange()

	ui.Success("Added %s to your PATH", binDir)
	ui.Warning("Please restart your terminal for the changes to take effect")

	return nil
}

// EnsureRegistered checks PATH registration during a version switch. It
// never writes to the registry on its own; it only points the user at
// rtvm init when the bin directory is missing from PATH.
func EnsureRegistered(binDir string) error {
	if IsInPath(binDir) {
		return nil
	}

	ui.Warning("%s is not in your PATH", binDir)
	ui.Info("Run %s to set it up, or add the directory manually", ui.Highlight("rtvm init"))

	return nil
}

// broadcastSettingChange notifies running processes that the environment changed
func broadcastSettingChange() {
	env := syscall.StringToUTF16Ptr("Environment")
	_, _, _ = procSendMessageTimeout.Call(
		uintptr(HWND_BROADCAST),
		uintptr(WM_SETTINGCHANGE),
		0,
		uintptr(unsafe.Pointer(env)),
		uintptr(SMTO_ABORTIFHUNG),
		5000, // 5 second timeout
		0,
	)
}

// DetectShell returns "powershell" or "cmd" on Windows
func DetectShell() string {
	if os.Getenv("PSModulePath") != "" {
		return "powershell"
	}
	return "cmd"
}

// GetShellConfigFile returns empty string on Windows (no shell config files)
func GetShellConfigFile(shell string) string {
	return ""
}
