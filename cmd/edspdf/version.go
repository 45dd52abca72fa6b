package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Build information, overridden at build time via -ldflags
var (
	Version   = "0.1.0-dev"
	GitCommit = ""
	BuildDate = ""
)

var (
	toolColor    = color.New(color.FgYellow, color.Bold)
	versionColor = color.New(color.FgGreen, color.Bold)
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show edspdf build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", toolColor.Sprint("edspdf"), versionColor.Sprint(Version))
			if GitCommit != "" {
				fmt.Fprintf(out, "commit: %s\n", GitCommit)
			}
			if BuildDate != "" {
				fmt.Fprintf(out, "built:  %s\n", BuildDate)
			}
		},
	}
}
