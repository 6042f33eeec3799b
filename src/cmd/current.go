package cmd

import (
	"fmt"

	"github.com/rtvm/rtvm/src/internal/installer"
	"github.com/rtvm/rtvm/src/internal/runtime"
	"github.com/rtvm/rtvm/src/internal/store"
	"github.com/rtvm/rtvm/src/internal/ui"
	"github.com/spf13/cobra"
)

// runtimeStatus holds the status of one runtime with an active version
type runtimeStatus struct {
	profile   runtime.Profile
	version   string
	installed bool
}

var currentCmd = &cobra.Command{
	Use:   "current [runtime]",
	Short: "Show the currently active version(s)",
	Long: `Show the currently active version for a specific runtime or all runtimes.
A runtime without an active version is skipped; activate one with "rtvm use".

Examples:
  rtvm current           # Show all active versions
  rtvm current python    # Show active Python version
  rtvm current node      # Show active Node.js version`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st, err := store.Open()
		if err != nil {
			ui.Error("%v", err)
			return
		}

		if len(args) == 0 {
			showAllVersions(st)
		} else {
			showSingleVersion(st, args[0])
		}
	},
}

// showAllVersions displays all active runtimes and prompts to install missing ones
func showAllVersions(st *store.Store) {
	profiles := runtime.GetAll()

	if len(profiles) == 0 {
		ui.Info("No runtime profiles registered")
		return
	}

	// Collect status for every runtime with an active version
	var active []runtimeStatus
	for _, profile := range profiles {
		version, ok := st.Active().Get(profile.Name())
		if !ok {
			continue
		}
		active = append(active, runtimeStatus{
			profile:   profile,
			version:   version,
			installed: st.IsInstalled(profile.Name(), version),
		})
	}

	if len(active) == 0 {
		ui.Info("No active versions. Activate one with: rtvm use <runtime> <version>")
		return
	}

	ui.Header("Currently active versions:")
	var missing []runtimeStatus
	for _, rs := range active {
		if rs.installed {
			fmt.Printf("  %s: %s\n", ui.Highlight(rs.profile.DisplayName()), ui.HighlightVersion(rs.version))
		} else {
			ui.Warning("%s: %s (not installed)", rs.profile.DisplayName(), rs.version)
			missing = append(missing, rs)
		}
	}

	// The marker can outlive its version directory, for example after a
	// manual delete under the root. Offer to bring the files back.
	if len(missing) > 0 {
		fmt.Println()
		if !ui.Confirm(fmt.Sprintf("Install %d missing version(s)?", len(missing)), true) {
			return
		}
		for _, rs := range missing {
			ui.Progress("Installing %s %s...", rs.profile.DisplayName(), rs.version)
			if _, err := installer.Install(st, rs.profile, rs.version); err != nil {
				ui.Error("Failed to install %s %s: %v", rs.profile.DisplayName(), rs.version, err)
			} else {
				ui.Success("%s %s installed successfully", rs.profile.DisplayName(), rs.version)
			}
		}
	}
}

// showSingleVersion displays a single runtime version and prompts to install if missing
func showSingleVersion(st *store.Store, runtimeName string) {
	profile, err := runtime.Get(runtimeName)
	if err != nil {
		ui.Error("%v", err)
		ui.Info("Available runtimes: %v", runtime.List())
		return
	}

	version, ok := st.Active().Get(profile.Name())
	if !ok {
		ui.Info("No active %s version. Activate one with: rtvm use %s <version>", profile.DisplayName(), profile.Name())
		return
	}

	if st.IsInstalled(profile.Name(), version) {
		fmt.Printf("%s: %s\n", ui.Highlight(profile.DisplayName()), ui.HighlightVersion(version))
		return
	}

	ui.Warning("%s: %s (not installed)", profile.DisplayName(), version)
	fmt.Println()
	if !ui.Confirm(fmt.Sprintf("Install %s %s now?", profile.DisplayName(), version), true) {
		return
	}
	if _, err := installer.Install(st, profile, version); err != nil {
		ui.Error("Failed to install %s %s: %v", profile.DisplayName(), version, err)
		return
	}
	ui.Success("%s %s installed successfully", profile.DisplayName(), version)
}

func init() {
	rootCmd.AddCommand(currentCmd)
}
