package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rtvm/rtvm/src/internal/catalog"
	"github.com/rtvm/rtvm/src/internal/pin"
	"github.com/rtvm/rtvm/src/internal/runtime"
	"github.com/rtvm/rtvm/src/internal/store"
	"github.com/rtvm/rtvm/src/internal/tui"
	"github.com/rtvm/rtvm/src/internal/ui"
	"github.com/spf13/cobra"
)

var listAllCmd = &cobra.Command{
	Use:   "list-all <runtime>",
	Short: "List all available versions of a runtime",
	Long: `Display all available versions of a runtime that can be installed.

Versions come from the runtime's release catalog and are cached for a day;
use --refresh to bypass the cache. Installed versions are marked with a
✓ indicator.

Examples:
  rtvm list-all python
  rtvm list-all node --lts
  rtvm list-all python --filter 3.11`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runtimeName := args[0]
		filter, _ := cmd.Flags().GetString("filter")
		limit, _ := cmd.Flags().GetInt("limit")
		ltsOnly, _ := cmd.Flags().GetBool("lts")
		refresh, _ := cmd.Flags().GetBool("refresh")

		profile, err := runtime.Get(runtimeName)
		if err != nil {
			ui.Error("%v", err)
			ui.Info("Available runtimes: %v", runtime.List())
			return
		}

		if ltsOnly && !profile.HasLTS() {
			ui.Error("%s has no long-term-support releases", profile.DisplayName())
			return
		}

		ui.Info("Fetching available versions...")

		var releases []runtime.Release
		if refresh {
			releases, err = catalog.Refresh(profile)
		} else {
			releases, err = catalog.Releases(profile)
		}
		if err != nil {
			ui.Error("Failed to fetch available versions: %v", err)
			return
		}

		if len(releases) == 0 {
			ui.Warning("No versions found")
			return
		}

		st, err := store.Open()
		if err != nil {
			ui.Error("%v", err)
			return
		}

		// Installed versions get a check mark in the first column
		installed := make(map[string]bool)
		if versions, listErr := st.List(profile.Name()); listErr == nil {
			for _, v := range versions {
				installed[v.Version.Raw] = true
			}
		}

		activeVersion, _ := st.Active().Get(profile.Name())
		pinnedVersion, _, _ := pin.Get(profile)

		filtered := releases
		if filter != "" || ltsOnly {
			filtered = nil
			for _, r := range releases {
				if ltsOnly && !r.LTS {
					continue
				}
				if filter != "" && !strings.Contains(r.Version, filter) {
					continue
				}
				filtered = append(filtered, r)
			}
		}

		if len(filtered) == 0 {
			if filter != "" {
				ui.Warning("No versions match filter: %s", filter)
			} else {
				ui.Warning("No versions found")
			}
			return
		}

		total := len(filtered)
		offset := 0
		reader := bufio.NewReader(os.Stdin)

		for {
			// Calculate how many to show this page
			remaining := total - offset
			pageSize := limit
			if remaining < pageSize {
				pageSize = remaining
			}

			table := tui.NewTable("", "Version", "Status", "Notes")
			table.SetTitle(profile.DisplayName())

			for i := 0; i < pageSize; i++ {
				r := filtered[offset+i]

				marker := ""
				if installed[r.Version] {
					marker = tui.GetCheckMark()
				}

				table.AddRow(marker, r.Version, releaseStatus(r.Version, activeVersion, pinnedVersion), releaseNotes(r))
			}

			fmt.Println()
			fmt.Println(table.Render())

			offset += pageSize
			remaining = total - offset

			// Show progress and prompt for more if there are more versions
			if remaining > 0 {
				ui.Printf("Showing %d of %d. Press Enter for more (q to quit): ", offset, total)
				input, _ := reader.ReadString('\n')
				input = strings.TrimSpace(strings.ToLower(input))
				if input == "q" || input == "quit" {
					break
				}
			} else {
				fmt.Println()
				ui.Success("Showing all %d version(s)", total)
				break
			}
		}

		fmt.Println()
		ui.Info("Install a version with: rtvm install %s <version>", runtimeName)
	},
}

// releaseStatus reports the roles a version already holds here
func releaseStatus(version, active, pinned string) string {
	var parts []string
	if version == active {
		parts = append(parts, "current")
	}
	if version == pinned {
		parts = append(parts, "pinned")
	}
	return strings.Join(parts, ", ")
}

// releaseNotes summarizes the catalog metadata for one release
func releaseNotes(r runtime.Release) string {
	var notes []string
	if r.LTS {
		notes = append(notes, "lts")
	}
	if !r.Stable {
		notes = append(notes, "prerelease")
	}
	if r.Date != "" {
		notes = append(notes, r.Date)
	}
	return strings.Join(notes, ", ")
}

func init() {
	listAllCmd.Flags().Bool("lts", false, "Show only long-term-support releases")
	listAllCmd.Flags().StringP("filter", "f", "", "Filter versions by substring (e.g., '3.11' for Python 3.11.x)")
	listAllCmd.Flags().IntP("limit", "l", 50, "Number of versions to show per page")
	listAllCmd.Flags().BoolP("refresh", "r", false, "Bypass the catalog cache and fetch fresh data")
	rootCmd.AddCommand(listAllCmd)
}
