package cmd

import (
	"github.com/rtvm/rtvm/src/internal/config"
	"github.com/rtvm/rtvm/src/internal/farm"
	"github.com/rtvm/rtvm/src/internal/path"
	"github.com/rtvm/rtvm/src/internal/runtime"
	"github.com/rtvm/rtvm/src/internal/store"
	"github.com/rtvm/rtvm/src/internal/ui"
	"github.com/spf13/cobra"
)

var useCmd = &cobra.Command{
	Use:   "use <runtime> <version>",
	Short: "Switch the active version of a runtime",
	Long: `Make a version's binaries the ones your shell finds.

The shared bin directory is rebuilt so this runtime's launchers point at
the chosen version; other runtimes keep their active versions. The version
may be a concrete version string, an alias, or "latest" / "lts" (resolved
to an installed version).

Examples:
  rtvm use node 20.11.1
  rtvm use go latest
  rtvm use node my-project-alias`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runtimeName := args[0]

		profile, err := runtime.Get(runtimeName)
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

		version, err := resolveVersion(st, profile, args[1])
		if err != nil {
			ui.Error("%v", err)
			return
		}

		if err := farm.Use(st, profile, version); err != nil {
			ui.Error("%v", err)
			if store.IsNotInstalled(err) {
				ui.Info("Install it with: rtvm install %s %s", runtimeName, version)
			}
			return
		}

		registerFarmOnPath()
		ui.Success("Now using %s %s", profile.DisplayName(), version)
	},
}

// registerFarmOnPath keeps the bin directory exported in the shell
// startup file. Failures only warn; the switch itself already happened.
func registerFarmOnPath() {
	binDir := config.DefaultPaths().Bin
	if err := path.EnsureRegistered(binDir); err != nil {
		ui.Warning("Could not register %s on PATH: %v", binDir, err)
		ui.Info("Add it to your shell configuration manually")
	}
}

func init() {
	rootCmd.AddCommand(useCmd)
}
