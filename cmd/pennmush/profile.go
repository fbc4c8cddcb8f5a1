package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/prof"
)

// startProfiling reads the persistent profiling flags and starts the
// requested profilers. The session's Stop is safe to defer.
func startProfiling(cmd *cobra.Command) (*prof.Session, error) {
	root := cmd.Root()
	var p prof.Paths
	var err error
	if p.CPU, err = root.PersistentFlags().GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if p.Mem, err = root.PersistentFlags().GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if p.Trace, err = root.PersistentFlags().GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	return prof.Start(p)
}
