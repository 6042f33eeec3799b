package cmd

import (
	"fmt"
	"strings"

	"github.com/rtvm/rtvm/src/internal/migration"
	"github.com/rtvm/rtvm/src/internal/store"
	"github.com/rtvm/rtvm/src/internal/tui"
	"github.com/rtvm/rtvm/src/internal/ui"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [source]",
	Short: "Import versions from other version managers",
	Long: `Import installed versions from another version manager into the rtvm
store, without re-downloading anything. The source can be a manager name
(for example nvm or rustup) or a runtime name, which runs every adapter
for that runtime. Versions already in the store are skipped, so
re-running an import is harmless.

With no argument the registered sources and their presence on this
machine are listed.

Examples:
  rtvm migrate               # List migration sources
  rtvm migrate nvm           # Import nvm's Node.js versions
  rtvm migrate node          # Import from all Node.js managers
  rtvm migrate pyenv --require-root`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			showMigrationSources()
			return
		}

		ignoreMissing, _ := cmd.Flags().GetBool("ignore-missing")
		requireRoot, _ := cmd.Flags().GetBool("require-root")

		providers, err := providersFor(args[0])
		if err != nil {
			ui.Error("%v", err)
			ui.Info("Available sources: %s", strings.Join(migration.List(), ", "))
			return
		}

		st, err := store.Open()
		if err != nil {
			ui.Error("%v", err)
			return
		}

		totalMigrated := 0
		failures := 0
		for _, provider := range providers {
			policy := provider.MissingRootPolicy()
			if ignoreMissing {
				policy = migration.ZeroWhenMissing
			}
			if requireRoot {
				policy = migration.FailWhenMissing
			}

			sp := ui.NewSpinner(fmt.Sprintf("Importing from %s...", provider.DisplayName()))
			sp.Start()
			migrated, err := migration.Run(st, provider, policy)
			if err != nil {
				sp.Error("%s: %v", provider.Name(), err)
				failures++
				continue
			}
			if migrated == 0 {
				sp.Success("%s: nothing new to import", provider.Name())
			} else {
				sp.Success("%s: imported %d version(s)", provider.Name(), migrated)
			}
			totalMigrated += migrated
		}

		fmt.Println()
		if failures > 0 {
			ui.Warning("%d source(s) failed", failures)
		}
		if totalMigrated == 0 {
			ui.Info("Nothing imported")
			return
		}
		ui.Success("Imported %d version(s)", totalMigrated)
		ui.Info("See them with: rtvm list")
		ui.Info("Activate one with: rtvm use <runtime> <version>")
	},
}

// providersFor resolves a migrate argument to adapters. A manager name
// selects that one adapter; a runtime name selects every adapter for it.
func providersFor(source string) ([]migration.Provider, error) {
	if provider, err := migration.Get(source); err == nil {
		return []migration.Provider{provider}, nil
	}
	if providers := migration.GetByRuntime(source); len(providers) > 0 {
		return providers, nil
	}
	return nil, &migration.UnsupportedSourceManagerError{Manager: source}
}

func showMigrationSources() {
	providers := migration.GetAll()
	if len(providers) == 0 {
		ui.Info("No migration sources registered")
		return
	}

	table := tui.NewTable("Source", "Runtime", "Status")
	table.SetTitle("Migration sources")
	for _, provider := range providers {
		status := tui.GetCrossMark() + " not found"
		if migration.IsPresent(provider) {
			status = tui.GetCheckMark() + " found"
		}
		table.AddRow(provider.Name(), provider.Runtime(), status)
	}

	fmt.Println(table.Render())
	fmt.Println()
	ui.Info("Import from a source with: rtvm migrate <source>")
}

func init() {
	migrateCmd.Flags().Bool("ignore-missing", false, "Treat a missing manager directory as zero versions")
	migrateCmd.Flags().Bool("require-root", false, "Fail when the manager directory is missing")
	migrateCmd.MarkFlagsMutuallyExclusive("ignore-missing", "require-root")
	rootCmd.AddCommand(migrateCmd)
}
