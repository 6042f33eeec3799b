package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rtvm/rtvm/src/internal/pin"
	"github.com/rtvm/rtvm/src/internal/runtime"
	"github.com/rtvm/rtvm/src/internal/store"
	"github.com/rtvm/rtvm/src/internal/ui"
	"github.com/spf13/cobra"
)

// freezeCandidate is one runtime whose active version can be pinned
type freezeCandidate struct {
	profile runtime.Profile
	version string
}

var freezeCmd = &cobra.Command{
	Use:   "freeze",
	Short: "Pin the active versions in the current directory",
	Long: `Write pin files for the currently active versions into the current
directory, one per runtime (.node-version, .go-version, ...).

This command will:
  1. Show every runtime with an active version
  2. Let you select which ones to pin
  3. Write the selected pin files

Examples:
  rtvm freeze`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		st, err := store.Open()
		if err != nil {
			ui.Error("%v", err)
			return
		}

		ui.Header("Freeze active versions")
		fmt.Println()

		var candidates []freezeCandidate
		for _, profile := range runtime.GetAll() {
			if version, ok := st.Active().Get(profile.Name()); ok {
				candidates = append(candidates, freezeCandidate{profile: profile, version: version})
			}
		}

		if len(candidates) == 0 {
			ui.Warning("No active versions to pin")
			ui.Info("Activate one first with: rtvm use <runtime> <version>")
			return
		}

		ui.Success("Found %d active version(s):", len(candidates))
		fmt.Println()
		for i, c := range candidates {
			fmt.Printf("  [%d] %s %s -> %s\n", i+1, c.profile.DisplayName(), ui.HighlightVersion(c.version), c.profile.PinFileName())
		}

		fmt.Println()
		fmt.Printf("Select runtimes to pin (comma-separated numbers, or 'all'): ")
		reader := bufio.NewReader(os.Stdin)
		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(input)

		if input == "" {
			ui.Info("Canceled")
			return
		}

		indices := parseSelection(input, len(candidates))
		if len(indices) == 0 {
			ui.Warning("No valid selections")
			return
		}

		fmt.Println()
		pinned := 0
		for _, idx := range indices {
			c := candidates[idx]

			if _, err := os.Stat(c.profile.PinFileName()); err == nil {
				if !ui.Confirm(fmt.Sprintf("%s already exists. Overwrite?", c.profile.PinFileName()), false) {
					continue
				}
			}

			if err := pin.Set(st, c.profile, c.version); err != nil {
				ui.Warning("Could not pin %s: %v", c.profile.DisplayName(), err)
				continue
			}
			ui.Success("Pinned %s %s in %s", c.profile.DisplayName(), c.version, c.profile.PinFileName())
			pinned++
		}

		if pinned == 0 {
			ui.Info("Nothing pinned")
		}
	},
}

// parseSelection parses selection input like "1,3" or "all" into
// zero-based indices, dropping anything out of range
func parseSelection(input string, maxCount int) []int {
	indices := make([]int, 0, maxCount)

	if strings.ToLower(input) == "all" {
		for i := 0; i < maxCount; i++ {
			indices = append(indices, i)
		}
		return indices
	}

	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if num, err := strconv.Atoi(part); err == nil {
			// Convert to 0-indexed
			idx := num - 1
			if idx >= 0 && idx < maxCount {
				indices = append(indices, idx)
			}
		}
	}

	return indices
}

func init() {
	rootCmd.AddCommand(freezeCmd)
}
