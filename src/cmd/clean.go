package cmd

import (
	"os"
	"path/filepath"

	"github.com/rtvm/rtvm/src/internal/catalog"
	"github.com/rtvm/rtvm/src/internal/config"
	"github.com/rtvm/rtvm/src/internal/farm"
	"github.com/rtvm/rtvm/src/internal/store"
	"github.com/rtvm/rtvm/src/internal/ui"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove cached downloads and staging leftovers",
	Long: `Remove downloaded archives, cached catalog data, and any staging
directories left behind by interrupted installs or switches. Installed
versions are not touched.

Examples:
  rtvm clean`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		st, err := store.Open()
		if err != nil {
			ui.Error("%v", err)
			return
		}

		removed := 0

		n, err := catalog.Clear()
		if err != nil {
			ui.Warning("Could not remove cached catalogs: %v", err)
		} else if n > 0 {
			ui.Info("Removed %d cached catalog(s)", n)
		}
		removed += n

		n, err = emptyDir(config.DefaultPaths().Cache)
		if err != nil {
			ui.Warning("Could not empty the cache: %v", err)
		} else if n > 0 {
			ui.Info("Removed %d downloaded archive(s)", n)
		}
		removed += n

		n, err = st.CleanStaging()
		if err != nil {
			ui.Warning("Could not remove install leftovers: %v", err)
		} else if n > 0 {
			ui.Info("Removed %d interrupted install(s)", n)
		}
		removed += n

		n, err = farm.CleanStaging()
		if err != nil {
			ui.Warning("Could not remove bin staging leftovers: %v", err)
		} else if n > 0 {
			ui.Info("Removed %d bin staging dir(s)", n)
		}
		removed += n

		if removed == 0 {
			ui.Info("Nothing to clean")
			return
		}
		ui.Success("Cleaned %d item(s)", removed)
	},
}

// emptyDir removes everything inside dir, keeping dir itself
func emptyDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return removed, err
		}
		removed++
	}

	return removed, nil
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
