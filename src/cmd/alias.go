package cmd

import (
	"fmt"

	"github.com/rtvm/rtvm/src/internal/alias"
	"github.com/rtvm/rtvm/src/internal/runtime"
	"github.com/rtvm/rtvm/src/internal/store"
	"github.com/rtvm/rtvm/src/internal/tui"
	"github.com/rtvm/rtvm/src/internal/ui"
	"github.com/spf13/cobra"
)

var aliasCmd = &cobra.Command{
	Use:   "alias <runtime> [name] [version]",
	Short: "Manage version aliases",
	Long: `Create, list, resolve, and delete named aliases for installed versions.
An alias can be used anywhere a version is accepted, for example with
"rtvm use" or "rtvm exec".

Examples:
  rtvm alias node                      # List Node.js aliases
  rtvm alias node work                 # Show what "work" points at
  rtvm alias node work 20.11.1         # Point "work" at 20.11.1
  rtvm alias node work --delete        # Remove the alias`,
	Args: cobra.RangeArgs(1, 3),
	Run: func(cmd *cobra.Command, args []string) {
		deleteAlias, _ := cmd.Flags().GetBool("delete")

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
		registry := alias.NewRegistry(st)

		switch {
		case len(args) == 1:
			if deleteAlias {
				ui.Error("--delete needs an alias name")
				return
			}
			listAliases(st, registry, profile)
		case deleteAlias:
			if len(args) == 3 {
				ui.Error("--delete takes no version argument")
				return
			}
			if err := registry.Delete(profile.Name(), args[1]); err != nil {
				ui.Error("%v", err)
				return
			}
			ui.Success("Deleted alias %s for %s", args[1], profile.DisplayName())
		case len(args) == 2:
			showAlias(registry, profile, args[1])
		default:
			createAlias(st, registry, profile, args[1], args[2])
		}
	},
}

// listAliases renders the alias table for one runtime
func listAliases(st *store.Store, registry *alias.Registry, profile runtime.Profile) {
	entries, err := registry.List(profile.Name())
	if err != nil {
		ui.Error("%v", err)
		return
	}

	if len(entries) == 0 {
		ui.Info("No aliases defined for %s", profile.DisplayName())
		ui.Info("Create one with: rtvm alias %s <name> <version>", profile.Name())
		return
	}

	activeVersion, _ := st.Active().Get(profile.Name())

	table := tui.NewTable("Alias", "Version")
	table.SetTitle(fmt.Sprintf("%s aliases", profile.DisplayName()))
	for _, entry := range entries {
		if entry.Version == activeVersion {
			table.AddActiveRow(entry.Name, entry.Version)
		} else {
			table.AddRow(entry.Name, entry.Version)
		}
	}
	fmt.Println(table.Render())
}

func showAlias(registry *alias.Registry, profile runtime.Profile, name string) {
	version, defined, err := registry.Resolve(profile.Name(), name)
	if err != nil {
		if defined {
			// Alias exists but its target was removed
			ui.Warning("%v", err)
			ui.Info("Reinstall the version or point the alias elsewhere")
			return
		}
		ui.Error("%v", err)
		return
	}
	if !defined {
		ui.Error("No alias named %s for %s", name, profile.DisplayName())
		return
	}

	fmt.Printf("%s -> %s\n", ui.Highlight(name), ui.HighlightVersion(version))
}

func createAlias(st *store.Store, registry *alias.Registry, profile runtime.Profile, name, requested string) {
	if name == selectorLatest || name == selectorLTS {
		ui.Error("%s is a reserved selector name", name)
		return
	}

	version, err := resolveVersion(st, profile, requested)
	if err != nil {
		ui.Error("%v", err)
		return
	}

	if err := registry.Create(profile.Name(), name, version); err != nil {
		ui.Error("%v", err)
		if store.IsNotInstalled(err) {
			ui.Info("Install it first with: rtvm install %s %s", profile.Name(), version)
		}
		return
	}
	ui.Success("Alias %s now points at %s %s", name, profile.DisplayName(), version)
}

func init() {
	aliasCmd.Flags().BoolP("delete", "d", false, "Delete the named alias")
	rootCmd.AddCommand(aliasCmd)
}
