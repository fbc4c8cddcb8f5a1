package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/softcode"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/ui"
)

var docCmd = &cobra.Command{
	Use:   "doc [flags] <name>",
	Short: "Show the signature and usage of a function or command",
	Args:  cobra.RangeArgs(0, 1),
	RunE:  runDoc,
}

func init() {
	docCmd.Flags().Bool("list", false, "list every known function and command")
	docCmd.Flags().Int("width", 0, "panel width in cells (0 = terminal width)")
}

func runDoc(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return fmt.Errorf("failed to get list flag: %w", err)
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return fmt.Errorf("failed to get width flag: %w", err)
	}

	out := cmd.OutOrStdout()
	if list {
		for _, name := range softcode.FunctionNames() {
			fmt.Fprintf(out, "%s()\n", name)
		}
		for _, name := range softcode.CommandNames() {
			fmt.Fprintln(out, name)
		}
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("doc: expected a function or command name")
	}

	entry, ok := lookupDoc(args[0])
	if !ok {
		return fmt.Errorf("doc: unknown function or command %q", args[0])
	}
	if width <= 0 {
		width = terminalWidth()
	}
	fmt.Fprintln(out, ui.RenderDoc(entry, width))
	return nil
}

// lookupDoc resolves name as a function first, then as a command. A leading
// '@' or a trailing "()" selects the kind explicitly.
func lookupDoc(name string) (ui.DocEntry, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ui.DocEntry{}, false
	}
	if !strings.HasPrefix(name, "@") {
		fn := strings.TrimSuffix(name, "()")
		if entry, ok := functionEntry(fn); ok {
			return entry, true
		}
		if fn != name {
			return ui.DocEntry{}, false
		}
	}
	return commandEntry(name)
}

func functionEntry(name string) (ui.DocEntry, bool) {
	if !softcode.Functions.Has(name) {
		return ui.DocEntry{}, false
	}
	entry := ui.DocEntry{Name: strings.ToLower(name), Kind: "function"}
	if sig, ok := softcode.LookupSignature(name); ok {
		entry.Signature = sig.Label
		entry.Summary = sig.Documentation
		entry.Params = sig.Params
	}
	if doc, ok := softcode.FunctionDoc(name); ok {
		entry.Usage = doc
	}
	return entry, true
}

func commandEntry(name string) (ui.DocEntry, bool) {
	if !softcode.Commands.Has(name) {
		return ui.DocEntry{}, false
	}
	entry := ui.DocEntry{Name: strings.ToLower(name), Kind: "command"}
	if doc, ok := softcode.CommandDoc(name); ok {
		entry.Usage = doc
	}
	return entry, true
}

func terminalWidth() int {
	if !isTerminal(os.Stdout) {
		return 80
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd())) // #nosec G115 -- file descriptors fit in int
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
