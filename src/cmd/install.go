package cmd

import (
	"github.com/rtvm/rtvm/src/internal/farm"
	"github.com/rtvm/rtvm/src/internal/installer"
	"github.com/rtvm/rtvm/src/internal/pin"
	"github.com/rtvm/rtvm/src/internal/runtime"
	"github.com/rtvm/rtvm/src/internal/store"
	"github.com/rtvm/rtvm/src/internal/ui"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install <runtime> [version]",
	Short: "Install a runtime version",
	Long: `Install a specific version of a runtime.

The version may be a concrete version string, an alias you defined, or one
of the catalog selectors "latest" and "lts" (lts only for runtimes with
long-term-support releases). With no version argument the local pin file
decides, falling back to latest.

Examples:
  rtvm install node 20.11.1
  rtvm install go latest
  rtvm install node lts
  rtvm install python          # version from .python-version, or latest`,
	Args: cobra.RangeArgs(1, 2),
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

		requested := selectorLatest
		if len(args) == 2 {
			requested = args[1]
		} else if pinned, ok, err := pin.Get(profile); err == nil && ok {
			requested = pinned
			ui.Info("Using pinned version from %s: %s", profile.PinFileName(), ui.HighlightVersion(pinned))
		}

		version, err := resolveVersion(st, profile, requested)
		if err != nil {
			ui.Error("%v", err)
			return
		}

		ui.Progress("Installing %s %s...", profile.DisplayName(), version)

		fresh, err := installer.Install(st, profile, version)
		if err != nil {
			ui.Error("%v", err)
			if runtime.IsInstallScriptFailed(err) {
				ui.Info("Re-run with --verbose to see the script output")
			}
			return
		}
		if !fresh {
			ui.Info("%s %s is already installed", profile.DisplayName(), version)
			return
		}

		ui.Success("Installed %s %s", profile.DisplayName(), version)

		// First install of a runtime becomes its active version
		activateIfFirst(st, profile, version)
	},
}

// activateIfFirst switches to a freshly installed version when the
// runtime has no active version yet.
func activateIfFirst(st *store.Store, profile runtime.Profile, version string) {
	if _, ok := st.Active().Get(profile.Name()); ok {
		return
	}

	if err := farm.Use(st, profile, version); err != nil {
		ui.Warning("Could not activate %s %s: %v", profile.DisplayName(), version, err)
		return
	}
	registerFarmOnPath()

	ui.Info("Activated %s %s (first install)", profile.DisplayName(), version)
}

func init() {
	rootCmd.AddCommand(installCmd)
}
