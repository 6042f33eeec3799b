package cmd

import (
	"fmt"

	"github.com/rtvm/rtvm/src/internal/pin"
	"github.com/rtvm/rtvm/src/internal/runtime"
	"github.com/rtvm/rtvm/src/internal/store"
	"github.com/rtvm/rtvm/src/internal/ui"
	"github.com/spf13/cobra"
)

var localCmd = &cobra.Command{
	Use:   "local <runtime> [version]",
	Short: "Pin a runtime version for the current directory",
	Long: `Pin a runtime version by writing a pin file into the current directory,
for example .node-version or .python-version. "rtvm install <runtime>" run in
this directory picks the pinned version up. Without a version argument the
current pin is shown.

Examples:
  rtvm local python 3.11.9
  rtvm local node 20.11.1
  rtvm local node           # Show the pin for this directory`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		profile, err := runtime.Get(args[0])
		if err != nil {
			ui.Error("%v", err)
			ui.Info("Available runtimes: %v", runtime.List())
			return
		}

		if len(args) == 1 {
			showPin(profile)
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

		if err := pin.Set(st, profile, version); err != nil {
			ui.Error("%v", err)
			if store.IsNotInstalled(err) {
				ui.Info("Install it first with: rtvm install %s %s", profile.Name(), version)
			}
			return
		}
		ui.Success("Pinned %s %s in %s", profile.DisplayName(), version, profile.PinFileName())
	},
}

func showPin(profile runtime.Profile) {
	version, found, err := pin.Get(profile)
	if err != nil {
		ui.Error("%v", err)
		return
	}
	if !found {
		ui.Info("No %s pin in this directory", profile.DisplayName())
		ui.Info("Create one with: rtvm local %s <version>", profile.Name())
		return
	}
	fmt.Printf("%s: %s (from %s)\n", ui.Highlight(profile.DisplayName()), ui.HighlightVersion(version), profile.PinFileName())
}

func init() {
	rootCmd.AddCommand(localCmd)
}
