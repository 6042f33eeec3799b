package cmd

import (
	"github.com/rtvm/rtvm/src/internal/runtime"
	"github.com/rtvm/rtvm/src/internal/store"
	"github.com/rtvm/rtvm/src/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [runtime]",
	Short: "List installed versions",
	Long: `List all installed versions of a specific runtime, or all runtimes if none specified.
The currently active version is marked with (current).

Examples:
  rtvm list           # List all installed versions
  rtvm list python    # List installed Python versions
  rtvm list node      # List installed Node.js versions`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st, err := store.Open()
		if err != nil {
			ui.Error("%v", err)
			return
		}

		if len(args) == 0 {
			listAllRuntimes(st)
		} else {
			listSingleRuntime(st, args[0])
		}
	},
}

// listAllRuntimes lists installed versions for all runtimes
func listAllRuntimes(st *store.Store) {
	profiles := runtime.GetAll()

	if len(profiles) == 0 {
		ui.Info("No runtime profiles registered")
		return
	}

	ui.Header("Installed versions:")

	hasAny := false
	for _, profile := range profiles {
		versions, err := st.List(profile.Name())
		if err != nil {
			ui.Error("  %s: %v", profile.DisplayName(), err)
			continue
		}

		if len(versions) == 0 {
			continue
		}

		hasAny = true
		ui.Printf("  %s:\n", ui.Highlight(profile.DisplayName()))
		for _, v := range versions {
			if v.Active {
				ui.Printf("    %s (current)\n", ui.HighlightVersion(v.Version.Raw))
			} else {
				ui.Printf("    %s\n", ui.HighlightVersion(v.Version.Raw))
			}
		}
	}

	if !hasAny {
		ui.Info("No versions installed")
	}
}

// listSingleRuntime lists installed versions for a specific runtime
func listSingleRuntime(st *store.Store, runtimeName string) {
	profile, err := runtime.Get(runtimeName)
	if err != nil {
		ui.Error("%v", err)
		ui.Info("Available runtimes: %v", runtime.List())
		return
	}

	ui.Header("Installed %s versions:", profile.DisplayName())

	versions, err := st.List(profile.Name())
	if err != nil {
		ui.Error("%v", err)
		return
	}

	if len(versions) == 0 {
		ui.Info("No versions installed. Install one with: rtvm install %s <version>", profile.Name())
		return
	}

	for _, v := range versions {
		if v.Active {
			ui.Printf("  %s (current)\n", ui.HighlightVersion(v.Version.Raw))
		} else {
			ui.Printf("  %s\n", ui.HighlightVersion(v.Version.Raw))
		}
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
