package cmd

import (
	"github.com/rtvm/rtvm/src/internal/farm"
	"github.com/rtvm/rtvm/src/internal/store"
	"github.com/rtvm/rtvm/src/internal/ui"
	"github.com/spf13/cobra"
)

var rehashCmd = &cobra.Command{
	Use:   "rehash",
	Short: "Rebuild the executable farm",
	Long: `Rebuild the bin directory from the recorded active versions.

Run this after installing global packages (npm -g, pip install, go install)
so their executables reach the PATH, or to recover a damaged bin directory.

Example:
  rtvm rehash`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		st, err := store.Open()
		if err != nil {
			ui.Error("%v", err)
			return
		}

		spinner := ui.NewSpinner("Rebuilding executable farm...")
		spinner.Start()

		if err := farm.Rehash(st); err != nil {
			spinner.Error("Failed to rebuild the executable farm")
			ui.Error("%v", err)
			return
		}

		spinner.Success("Executable farm rebuilt")
	},
}

func init() {
	rootCmd.AddCommand(rehashCmd)
}
