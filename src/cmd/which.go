package cmd

import (
	"os"
	"strings"

	"github.com/rtvm/rtvm/src/internal/config"
	"github.com/rtvm/rtvm/src/internal/farm"
	"github.com/rtvm/rtvm/src/internal/runtime"
	"github.com/rtvm/rtvm/src/internal/store"
	"github.com/rtvm/rtvm/src/internal/ui"
	"github.com/spf13/cobra"
)

var whichCmd = &cobra.Command{
	Use:   "which <command>",
	Short: "Show the real executable behind a command",
	Long: `Display where a command in the rtvm bin directory actually points.

This command shows:
  - The launcher in the bin directory
  - The real executable it runs
  - The runtime and version that own it

Examples:
  rtvm which python
  rtvm which node
  rtvm which npm`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]

		st, err := store.Open()
		if err != nil {
			ui.Error("%v", err)
			return
		}

		entry, target, err := farm.ResolveLauncher(name)
		if err != nil {
			ui.Error("%s is not managed by rtvm", name)
			ui.Info("Launchers appear in %s after: rtvm use <runtime> <version>", config.DefaultPaths().Bin)
			return
		}

		ui.Header("Command: %s", ui.Highlight(name))
		ui.Println("")
		ui.Info("Launcher:   %s", entry)
		ui.Info("Executable: %s", target)

		if _, err := os.Stat(target); err != nil {
			ui.Warning("The target no longer exists")
			ui.Info("Run 'rtvm rehash' to rebuild the bin directory")
			return
		}

		if runtimeName, version, ok := ownerOf(st, target); ok {
			ui.Info("Runtime:    %s", runtimeName)
			ui.Info("Version:    %s", ui.HighlightVersion(version))
		} else {
			ui.Info("Runtime:    none (carried-over file)")
		}
	},
}

// ownerOf maps an executable path back to the installed version whose
// tree contains it.
func ownerOf(st *store.Store, target string) (string, string, bool) {
	for _, name := range runtime.List() {
		versions, err := st.List(name)
		if err != nil {
			continue
		}
		for _, v := range versions {
			if strings.HasPrefix(target, v.InstallPath+string(os.PathSeparator)) {
				return name, v.Version.Raw, true
			}
		}
	}
	return "", "", false
}

func init() {
	rootCmd.AddCommand(whichCmd)
}
