package cmd

import (
	"fmt"

	"github.com/rtvm/rtvm/src/internal/catalog"
	"github.com/rtvm/rtvm/src/internal/runtime"
	"github.com/rtvm/rtvm/src/internal/tui"
	"github.com/rtvm/rtvm/src/internal/ui"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update [runtime...]",
	Short: "Refresh the release catalogs",
	Long: `Force refresh the cached release catalogs, bypassing the 24-hour cache.

rtvm itself is not self-updating; the upgrade instruction is printed
after the refresh.

Example:
  rtvm update           # Refresh every runtime's catalog
  rtvm update python    # Refresh only the Python catalog`,
	Run: func(cmd *cobra.Command, args []string) {
		var profiles []runtime.Profile
		if len(args) > 0 {
			for _, name := range args {
				profile, err := runtime.Get(name)
				if err != nil {
					ui.Error("%v", err)
					ui.Info("Available runtimes: %v", runtime.List())
					return
				}
				profiles = append(profiles, profile)
			}
		} else {
			profiles = runtime.GetAll()
		}

		if len(profiles) == 0 {
			ui.Warning("No runtimes registered")
			return
		}

		ui.Info("Refreshing release catalogs...")
		fmt.Println()

		table := tui.NewTable("Runtime", "Versions", "Latest stable")
		table.SetTitle("Catalog refresh")

		hasErrors := false
		for _, profile := range profiles {
			releases, err := catalog.Refresh(profile)
			if err != nil {
				ui.Error("  %s: %v", profile.Name(), err)
				hasErrors = true
				continue
			}

			latest := ""
			if r, ok := runtime.LatestStable(releases); ok {
				latest = r.Version
			}

			table.AddRow(profile.Name(), fmt.Sprintf("%d versions", len(releases)), latest)
		}

		fmt.Println(table.Render())
		fmt.Println()

		if hasErrors {
			ui.Warning("Some catalogs could not be refreshed")
		} else {
			ui.Success("All catalogs refreshed")
		}

		ui.Info("To upgrade rtvm itself, download a new build and replace the binary")
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
