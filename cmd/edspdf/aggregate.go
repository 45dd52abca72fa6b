package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/acalliger/edspdf"
	"github.com/acalliger/edspdf/export"
	"github.com/acalliger/edspdf/format"
	"github.com/acalliger/edspdf/internal/config"
	"github.com/acalliger/edspdf/model"
	"github.com/acalliger/edspdf/recordio"
)

var labelColor = color.New(color.FgCyan, color.Bold)

// errOutputClash is returned when an output file would replace an input or
// another output
var errOutputClash = errors.New("output file clash")

func newAggregateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aggregate [flags] <records-file>...",
		Short: "Aggregate line records into per-zone text and styles",
		Long: `Aggregate reads classified line records (JSON, JSON Lines or MessagePack)
and prints the text and style spans of every zone. With several input files,
results are written next to each other in --out-dir.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAggregate,
	}
	cmd.Flags().String("format", "", "output format (json|jsonl|msgpack|csv|markdown|table|html), default from config or json")
	cmd.Flags().StringSlice("label", nil, "only output these zones (repeatable)")
	cmd.Flags().Int("jobs", 0, "max files processed at once (0=config or auto)")
	cmd.Flags().String("out-dir", "", "directory for results when several files are given")
	return cmd
}

// aggregateJob is everything needed to process one input file
type aggregateJob struct {
	pipeline *edspdf.Pipeline
	output   format.Format
}

func runAggregate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	job, err := newAggregateJob(cmd, cfg)
	if err != nil {
		return err
	}

	outDir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return fmt.Errorf("failed to get out-dir flag: %w", err)
	}
	if len(args) == 1 && outDir == "" {
		return job.run(cmd.OutOrStdout(), args[0])
	}
	if outDir == "" {
		outDir = "."
	}
	targets, err := outputTargets(args, outDir, job.output)
	if err != nil {
		return err
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs <= 0 {
		jobs = cfg.Output.Jobs
	}

	g := new(errgroup.Group)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			return job.runToFile(path, targets[i])
		})
	}
	return g.Wait()
}

func newAggregateJob(cmd *cobra.Command, cfg *config.File) (*aggregateJob, error) {
	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return nil, fmt.Errorf("failed to get format flag: %w", err)
	}
	output := cfg.OutputFormat(format.JSON)
	if formatFlag != "" {
		if output, err = format.Parse(formatFlag); err != nil {
			return nil, fmt.Errorf("%w %q", err, formatFlag)
		}
	}

	labels, err := cmd.Flags().GetStringSlice("label")
	if err != nil {
		return nil, fmt.Errorf("failed to get label flag: %w", err)
	}
	if len(labels) == 0 {
		labels = cfg.Output.Labels
	}

	pipeline := edspdf.FromLines(nil).WithConfig(cfg.AggregationConfig())
	if len(labels) > 0 {
		pipeline = pipeline.Labels(labels...)
	}
	return &aggregateJob{pipeline: pipeline, output: output}, nil
}

// run aggregates one file and writes the result to w
func (j *aggregateJob) run(w io.Writer, path string) error {
	logger := log.WithField("file", path)

	res, warnings, err := j.pipeline.WithFile(path).Aggregate()
	logWarnings(logger, warnings)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.WithField("zones", len(res.Text)).Debug("aggregated")

	return writeResult(w, j.output, res)
}

// runToFile aggregates one file into target. The input is read and
// aggregated completely before target is created.
func (j *aggregateJob) runToFile(path, target string) error {
	var buf bytes.Buffer
	if err := j.run(&buf, path); err != nil {
		return err
	}
	if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"file": path, "output": target}).Info("written")
	return nil
}

// outputTargets names the output file of every input: the input's base name
// with the output extension, in outDir. Two inputs mapping to one output, or
// an output that is itself an input, are refused before anything is written.
func outputTargets(inputs []string, outDir string, f format.Format) ([]string, error) {
	targets := make([]string, len(inputs))
	byTarget := make(map[string]string, len(inputs))
	for i, path := range inputs {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		target, err := filepath.Abs(filepath.Join(outDir, base+f.Extension()))
		if err != nil {
			return nil, err
		}
		if prev, dup := byTarget[target]; dup {
			return nil, fmt.Errorf("%w: %s and %s would both be written to %s", errOutputClash, prev, path, target)
		}
		byTarget[target] = path
		targets[i] = target
	}

	for _, path := range inputs {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		if from, clash := byTarget[abs]; clash {
			return nil, fmt.Errorf("%w: output of %s would overwrite input %s", errOutputClash, from, path)
		}
		in, err := os.Stat(path)
		if err != nil {
			continue
		}
		for _, target := range targets {
			if out, err := os.Stat(target); err == nil && os.SameFile(in, out) {
				return nil, fmt.Errorf("%w: output of %s would overwrite input %s", errOutputClash, byTarget[target], path)
			}
		}
	}
	return targets, nil
}

func logWarnings(logger *logrus.Entry, warnings []edspdf.Warning) {
	for _, w := range warnings {
		fields := logrus.Fields{"kind": w.Kind.String()}
		if w.Label != "" {
			fields["zone"] = w.Label
		}
		if w.Line >= 0 {
			fields["line"] = w.Line
		}
		if w.Span >= 0 {
			fields["span"] = w.Span
		}
		logger.WithFields(fields).Warn(w.Message)
	}
}

// writeResult renders res in the requested format
func writeResult(w io.Writer, f format.Format, res *model.AggregationResult) error {
	switch f {
	case format.JSON, format.JSONLines, format.MsgPack:
		return recordio.WriteResult(w, f, res)

	case format.CSV:
		return export.ResultCSV(w, res)

	case format.Markdown:
		for _, label := range res.Labels() {
			fmt.Fprintf(w, "## %s\n\n%s\n\n", label, res.Text[label])
			if spans := res.Styles[label]; len(spans) > 0 {
				fmt.Fprintf(w, "%s\n", export.Markdown(spans))
			}
		}
		return nil

	case format.Table:
		for _, label := range res.Labels() {
			labelColor.Fprintf(w, "[%s]\n", label)
			fmt.Fprintf(w, "%s\n\n", res.Text[label])
			if spans := res.Styles[label]; len(spans) > 0 {
				if err := export.Table(w, spans); err != nil {
					return err
				}
				fmt.Fprintln(w)
			}
		}
		return nil

	case format.HTML:
		for _, label := range res.Labels() {
			if err := export.HTML(w, label, res.Text[label], res.Styles[label]); err != nil {
				return err
			}
			fmt.Fprintln(w)
		}
		return nil

	default:
		return fmt.Errorf("unsupported output format %s", f)
	}
}
