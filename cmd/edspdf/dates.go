package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/acalliger/edspdf"
	"github.com/acalliger/edspdf/export"
	"github.com/acalliger/edspdf/metadata"
)

func newDatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dates [flags] <records-file>",
		Short: "List the dates mentioned in each zone",
		Args:  cobra.ExactArgs(1),
		RunE:  runDates,
	}
	cmd.Flags().String("format", "table", "output format (table|json)")
	cmd.Flags().StringSlice("label", nil, "only search these zones (repeatable)")
	return cmd
}

func runDates(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if formatFlag != "table" && formatFlag != "json" {
		return fmt.Errorf("unsupported format %q (must be table or json)", formatFlag)
	}
	labels, err := cmd.Flags().GetStringSlice("label")
	if err != nil {
		return fmt.Errorf("failed to get label flag: %w", err)
	}

	path := args[0]
	pipeline := edspdf.Open(path).WithConfig(cfg.AggregationConfig())
	if len(labels) > 0 {
		pipeline = pipeline.Labels(labels...)
	}
	dates, warnings, err := pipeline.Dates()
	logWarnings(log.WithField("file", path), warnings)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	log.WithFields(logrus.Fields{"file": path, "zones": len(dates)}).Debug("dates extracted")

	if formatFlag == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(dates)
	}
	return writeDatesTable(cmd.OutOrStdout(), dates)
}

// writeDatesTable prints one row per mention, zones sorted by label
func writeDatesTable(w io.Writer, dates map[string][]metadata.Mention) error {
	labels := make([]string, 0, len(dates))
	for label := range dates {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	grid := &export.Grid{Header: []string{"zone", "start", "end", "date", "context", "text"}}
	for _, label := range labels {
		for _, m := range dates[label] {
			grid.Rows = append(grid.Rows, []string{
				label,
				strconv.Itoa(m.Start),
				strconv.Itoa(m.End),
				m.Date.String(),
				m.Context,
				m.Text,
			})
		}
	}
	return grid.WriteAligned(w)
}
