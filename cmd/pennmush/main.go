package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/version"
)

// errSilentExit makes the process exit with status 1 without printing
// anything; the command has already reported the problem.
var errSilentExit = errors.New("silent exit")

var rootCmd = &cobra.Command{
	Use:   "pennmush",
	Short: "PennMUSH softcode checker, formatter and language server",
	Long: `pennmush lints PennMUSH softcode files, pretty-prints and collapses
attribute values, and serves editors over the Language Server Protocol.`,
	SilenceErrors:     true,
	PersistentPreRunE: applyGlobalFlags,
}

var registerOnce sync.Once

func newRootCmd() *cobra.Command {
	registerOnce.Do(registerCommands)
	return rootCmd
}

func registerCommands() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(docCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics per file (0 = from config)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to file")
	rootCmd.PersistentFlags().String("config", "", "path to pennmush.toml (default: search upwards from the working directory)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errSilentExit) {
			fmt.Fprintf(os.Stderr, "pennmush: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}
