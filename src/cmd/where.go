package cmd

import (
	"fmt"

	"github.com/rtvm/rtvm/src/internal/runtime"
	"github.com/rtvm/rtvm/src/internal/store"
	"github.com/rtvm/rtvm/src/internal/tui"
	"github.com/rtvm/rtvm/src/internal/ui"
	"github.com/spf13/cobra"
)

var whereCmd = &cobra.Command{
	Use:   "where <runtime> [version]",
	Short: "Show the installation directory for a runtime version",
	Long: `Display the full path to where a runtime version is installed.

If no version is specified, shows the location of the currently active version.

Examples:
  rtvm where python 3.11.9
  rtvm where node 20.11.1
  rtvm where python           # Shows the active version's location`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
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

		var version string
		if len(args) == 1 {
			active, ok := st.Active().Get(profile.Name())
			if !ok {
				ui.Error("No active %s version", profile.DisplayName())
				ui.Info("Activate one with: rtvm use %s <version>", profile.Name())
				ui.Info("Or specify a version: rtvm where %s <version>", profile.Name())
				return
			}
			version = active
			ui.Info("Using current version: %s", ui.HighlightVersion(version))
			fmt.Println()
		} else {
			version = args[1]
			// Strip 'v' prefix if present
			if len(version) > 0 && (version[0] == 'v' || version[0] == 'V') {
				version = version[1:]
			}
		}

		if !st.IsInstalled(profile.Name(), version) {
			ui.Error("Version %s is not installed", version)
			ui.Info("Install it with: rtvm install %s %s", profile.Name(), version)
			return
		}

		fmt.Println(tui.RenderTitle(profile.DisplayName() + " " + version))
		fmt.Println(tui.RenderInfoBox(st.InstallPath(profile.Name(), version)))
	},
}

func init() {
	rootCmd.AddCommand(whereCmd)
}
