package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/acalliger/edspdf/internal/config"
)

var log = logrus.New()

// newRootCmd builds the command tree with its persistent flags
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "edspdf",
		Short:         "Aggregate classified PDF lines into styled zone text",
		Long:          `edspdf turns classified text lines into per-zone text with style spans, and finds dates in the result`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupOutput(cmd)
		},
	}

	rootCmd.PersistentFlags().String("config", "edspdf.toml", "path to the TOML configuration")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug information")

	rootCmd.AddCommand(newAggregateCmd())
	rootCmd.AddCommand(newDatesCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// main runs the root command and exits with status 1 on error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// setupOutput applies the logging and color flags
func setupOutput(cmd *cobra.Command) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	colorFlag, err := cmd.Flags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(colorFlag) {
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("unsupported color mode %q (must be auto, on or off)", colorFlag)
	}
	return nil
}

// loadConfig reads the file named by --config
func loadConfig(cmd *cobra.Command) (*config.File, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"config": path,
		"nl":     cfg.Aggregator.NLThreshold,
		"np":     cfg.Aggregator.NPThreshold,
	}).Debug("configuration loaded")
	return cfg, nil
}

// isTerminal reports whether f is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
