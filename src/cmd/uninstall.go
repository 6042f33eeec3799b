package cmd

import (
	"fmt"
	"strings"

	"github.com/rtvm/rtvm/src/internal/pin"
	"github.com/rtvm/rtvm/src/internal/runtime"
	"github.com/rtvm/rtvm/src/internal/store"
	"github.com/rtvm/rtvm/src/internal/ui"
	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <runtime> <version>",
	Short: "Uninstall a specific runtime version",
	Long: `Remove an installed runtime version from the store.

The version directory and all its contents will be deleted.

Safety features:
  - Cannot uninstall the currently active version
  - Prompts for confirmation before deletion

Examples:
  rtvm uninstall python 3.11.9
  rtvm uninstall node 20.11.1`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		// Strip 'v' prefix if present
		version := strings.TrimPrefix(args[1], "v")

		profile, err := runtime.Get(args[0])
		if err != nil {
			ui.Error("%v", err)
			ui.Info("Available runtimes: %v", runtime.List())
			return
		}

		st, err := store.Open()
		if err != nil {
			ui.Error("%v", err)
			return
		}

		ui.Header("Uninstalling %s %s...", profile.DisplayName(), version)

		if !st.IsInstalled(profile.Name(), version) {
			ui.Error("Version %s is not installed", version)
			ui.Info("Run 'rtvm list %s' to see installed versions", profile.Name())
			return
		}

		// A pin pointing at this version will dangle after removal
		if pinned, found, _ := pin.Get(profile); found && pinned == version {
			ui.Warning("This version is pinned in the current directory (%s)", profile.PinFileName())
			ui.Info("Update or remove the pin file after uninstalling")
		}

		fmt.Println()
		ui.Warning("This will permanently delete:")
		ui.Info("  %s", st.InstallPath(profile.Name(), version))

		if !ui.Confirm(fmt.Sprintf("\nAre you sure you want to uninstall %s %s?", profile.DisplayName(), version), false) {
			ui.Info("Uninstall canceled")
			return
		}

		spinner := ui.NewSpinner(fmt.Sprintf("Removing %s %s...", profile.DisplayName(), version))
		spinner.Start()

		if err := st.Remove(profile.Name(), version); err != nil {
			spinner.Error("Failed to remove version")
			ui.Error("%v", err)
			if store.IsCurrentlyActive(err) {
				ui.Info("Switch away first with: rtvm use %s <other-version>", profile.Name())
			}
			return
		}

		spinner.Success("%s %s removed", profile.DisplayName(), version)
	},
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}
