package cmd

import (
	"errors"
	"os"
	"os/exec"
	goruntime "runtime"
	"strings"

	"github.com/rtvm/rtvm/src/internal/installer"
	"github.com/rtvm/rtvm/src/internal/runtime"
	"github.com/rtvm/rtvm/src/internal/store"
	"github.com/rtvm/rtvm/src/internal/ui"
	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec <runtime> <version> -- <command> [args...]",
	Short: "Run a command with a specific runtime version",
	Long: `Run a command with the given version's binary directory prepended to
PATH, without switching the active version. The version is installed on
demand if it is missing. The command's exit code is passed through.

Examples:
  rtvm exec node 18.19.0 -- npm test
  rtvm exec python 3.11.9 -- python -m venv .venv
  rtvm exec go latest -- go build ./...`,
	Args: cobra.MinimumNArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		// Everything after -- is the command to run. Without a dash the
		// first two arguments still select the version.
		selector := args[:2]
		command := args[2:]
		if dash := cmd.ArgsLenAtDash(); dash >= 0 {
			if dash != 2 {
				ui.Error("Usage: rtvm exec <runtime> <version> -- <command> [args...]")
				return
			}
			selector = args[:dash]
			command = args[dash:]
		}
		if len(command) == 0 {
			ui.Error("No command given after --")
			return
		}

		profile, err := runtime.Get(selector[0])
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

		version, err := resolveVersion(st, profile, selector[1])
		if err != nil {
			ui.Error("%v", err)
			return
		}

		if !st.IsInstalled(profile.Name(), version) {
			ui.Progress("Installing %s %s...", profile.DisplayName(), version)
			if _, err := installer.Install(st, profile, version); err != nil {
				ui.Error("Failed to install %s %s: %v", profile.DisplayName(), version, err)
				return
			}
		}

		suffix, err := profile.PlatformSuffix(goruntime.GOOS, goruntime.GOARCH)
		if err != nil {
			ui.Error("%v", err)
			return
		}

		binDir, found := runtime.BinaryDirFor(profile, st.InstallPath(profile.Name(), version), version, suffix)
		if !found {
			ui.Error("No binary directory in %s", st.InstallPath(profile.Name(), version))
			return
		}

		child := exec.Command(command[0], command[1:]...)
		child.Env = envWithBinDir(binDir)
		child.Stdin = os.Stdin
		child.Stdout = os.Stdout
		child.Stderr = os.Stderr

		ui.Debug("exec %v with PATH prefix %s", command, binDir)

		if err := child.Run(); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				os.Exit(exitErr.ExitCode())
			}
			ui.Error("%v", err)
			os.Exit(1)
		}
	},
}

// envWithBinDir returns the process environment with binDir prepended to
// the PATH entry. The entry is edited in place; getenv takes the first
// match, so appending a second PATH would change nothing.
func envWithBinDir(binDir string) []string {
	env := os.Environ()
	for i, kv := range env {
		key, value, ok := strings.Cut(kv, "=")
		if ok && strings.EqualFold(key, "PATH") {
			env[i] = key + "=" + binDir + string(os.PathListSeparator) + value
			return env
		}
	}
	return append(env, "PATH="+binDir)
}

func init() {
	rootCmd.AddCommand(execCmd)
}
