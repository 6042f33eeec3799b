package cmd

import (
	"github.com/rtvm/rtvm/src/internal/config"
	"github.com/rtvm/rtvm/src/internal/path"
	"github.com/rtvm/rtvm/src/internal/ui"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize rtvm (setup directories and PATH)",
	Long: `Initialize rtvm by creating necessary directories and configuring your PATH.

This command:
  - Creates the ~/.rtvm directory structure
  - Adds ~/.rtvm/bin to your PATH (with your permission)

Run this command after installing rtvm for the first time.

Example:
  rtvm init`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Header("Initializing rtvm...")

		spinner := ui.NewSpinner("Creating directories...")
		spinner.Start()

		if err := config.EnsureDirectories(); err != nil {
			spinner.Error("Failed to create directories")
			ui.Error("%v", err)
			return
		}

		spinner.Success("Directories created")

		// PATH setup is interactive; AddToPath asks before touching the
		// shell configuration
		binDir := config.DefaultPaths().Bin

		if err := path.AddToPath(binDir); err != nil {
			ui.Error("Failed to configure PATH: %v", err)
			ui.Info("You can manually add %s to your PATH", binDir)
			return
		}

		ui.Success("rtvm initialized successfully!")
		ui.Info("\nNext steps:")
		ui.Info("  1. Restart your terminal (required for PATH changes)")
		ui.Info("  2. Run: rtvm install <runtime> <version>")
		ui.Info("  3. Run: rtvm use <runtime> <version>")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
