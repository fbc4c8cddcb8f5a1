package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/softcode"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/version"
)

type versionInfo struct {
	Version    string
	GitCommit  string
	BuildDate  string
	Functions  int
	Commands   int
	Signatures int
	Tables     string
}

type versionOptions struct {
	format   string
	showHash bool
	showDate bool
	showData bool
}

type versionPayload struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
	Functions  int    `json:"functions,omitempty"`
	Commands   int    `json:"commands,omitempty"`
	Signatures int    `json:"signatures,omitempty"`
	Tables     string `json:"tables,omitempty"`
}

func init() {
	versionCmd.Flags().Bool("hash", false, "include git commit hash")
	versionCmd.Flags().Bool("date", false, "include build timestamp")
	versionCmd.Flags().Bool("tables", false, "include the size of the built-in name tables")
	versionCmd.Flags().Bool("full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show pennmush build fingerprints",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts, err := readVersionOptions(cmd)
		if err != nil {
			return err
		}
		info, err := collectVersionInfo()
		if err != nil {
			return err
		}
		if opts.format == "json" {
			return renderVersionJSON(cmd.OutOrStdout(), info, opts)
		}
		renderVersionPretty(cmd.OutOrStdout(), info, opts)
		return nil
	},
}

func readVersionOptions(cmd *cobra.Command) (versionOptions, error) {
	get := func(name string) (bool, error) {
		v, err := cmd.Flags().GetBool(name)
		if err != nil {
			return false, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		return v, nil
	}
	var opts versionOptions
	full, err := get("full")
	if err != nil {
		return opts, err
	}
	if opts.showHash, err = get("hash"); err != nil {
		return opts, err
	}
	if opts.showDate, err = get("date"); err != nil {
		return opts, err
	}
	if opts.showData, err = get("tables"); err != nil {
		return opts, err
	}
	opts.showHash = opts.showHash || full
	opts.showDate = opts.showDate || full
	opts.showData = opts.showData || full

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	opts.format = strings.ToLower(format)
	switch opts.format {
	case "pretty", "json":
		// supported
	default:
		return opts, fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
	return opts, nil
}

func collectVersionInfo() (versionInfo, error) {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	sigs, err := softcode.SignatureCount()
	if err != nil {
		return versionInfo{}, err
	}
	return versionInfo{
		Version:    v,
		GitCommit:  strings.TrimSpace(version.GitCommit),
		BuildDate:  strings.TrimSpace(version.BuildDate),
		Functions:  softcode.Functions.Len(),
		Commands:   softcode.Commands.Len(),
		Signatures: sigs,
		Tables:     softcode.TablesFingerprint(),
	}, nil
}

func renderVersionPretty(out io.Writer, info versionInfo, opts versionOptions) {
	v := info.Version
	if v == version.Version {
		v = version.Colored()
	}
	fmt.Fprintf(out, "pennmush %s\n", v)
	if opts.showHash {
		fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(info.GitCommit))
	}
	if opts.showDate {
		fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(info.BuildDate))
	}
	if opts.showData {
		fmt.Fprintf(out, "tables: %d functions, %d commands, %d signatures (%s)\n",
			info.Functions, info.Commands, info.Signatures, valueOrUnknown(info.Tables))
	}
}

func renderVersionJSON(out io.Writer, info versionInfo, opts versionOptions) error {
	payload := versionPayload{
		Tool:    "pennmush",
		Version: info.Version,
	}
	if opts.showHash {
		payload.GitCommit = valueOrUnknown(info.GitCommit)
	}
	if opts.showDate {
		payload.BuildDate = valueOrUnknown(info.BuildDate)
	}
	if opts.showData {
		payload.Functions = info.Functions
		payload.Commands = info.Commands
		payload.Signatures = info.Signatures
		payload.Tables = info.Tables
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
