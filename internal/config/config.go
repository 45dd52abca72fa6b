// Package config loads the edspdf TOML configuration file.
//
// A minimal file only sets the two break thresholds:
//
//	[aggregator]
//	nl_threshold = 0.005
//	np_threshold = 0.02
//
// Thresholds depend on the documents being processed and have no default, so
// both keys are required.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/acalliger/edspdf/aggregation"
	"github.com/acalliger/edspdf/format"
	"github.com/acalliger/edspdf/layout"
)

var (
	// ErrAggregatorSectionMissing indicates that [aggregator] is missing.
	ErrAggregatorSectionMissing = errors.New("missing [aggregator]")
	// ErrThresholdMissing indicates that a break threshold is not set.
	ErrThresholdMissing = errors.New("missing break threshold")
	// ErrInvalidValue indicates a key set to a value edspdf cannot use.
	ErrInvalidValue = errors.New("invalid configuration value")
)

// File is the decoded configuration file
type File struct {
	Aggregator   Aggregator   `toml:"aggregator"`
	ReadingOrder ReadingOrder `toml:"reading_order"`
	Output       Output       `toml:"output"`
}

// Aggregator is the [aggregator] section
type Aggregator struct {
	NLThreshold      float64  `toml:"nl_threshold"`
	NPThreshold      float64  `toml:"np_threshold"`
	IndentThreshold  float64  `toml:"indent_threshold"`
	LeftMargin       *float64 `toml:"left_margin"`
	MarginTolerance  float64  `toml:"margin_tolerance"`
	Strict           bool     `toml:"strict"`
	SortReadingOrder bool     `toml:"sort_reading_order"`
}

// ReadingOrder is the [reading_order] section
type ReadingOrder struct {
	Direction    string  `toml:"direction"`
	RowTolerance float64 `toml:"row_tolerance"`
}

// Output is the [output] section
type Output struct {
	Format string   `toml:"format"`
	Labels []string `toml:"labels"`
	Jobs   int      `toml:"jobs"`
}

// Load reads and validates a configuration file
func Load(path string) (*File, error) {
	var cfg File
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := cfg.check(meta); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Parse decodes and validates configuration held in a string
func Parse(data string) (*File, error) {
	var cfg File
	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if err := cfg.check(meta); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (f *File) check(meta toml.MetaData) error {
	if !meta.IsDefined("aggregator") {
		return ErrAggregatorSectionMissing
	}
	for _, key := range []string{"nl_threshold", "np_threshold"} {
		if !meta.IsDefined("aggregator", key) {
			return fmt.Errorf("%w: [aggregator].%s", ErrThresholdMissing, key)
		}
	}
	if !meta.IsDefined("aggregator", "margin_tolerance") {
		f.Aggregator.MarginTolerance = layout.DefaultNewlineConfig(0, 0).MarginTolerance
	}
	if !meta.IsDefined("reading_order", "row_tolerance") {
		f.ReadingOrder.RowTolerance = layout.DefaultReadingOrderConfig().RowTolerance
	}

	if _, err := f.direction(); err != nil {
		return err
	}
	if f.Output.Format != "" {
		if _, err := format.Parse(f.Output.Format); err != nil {
			return fmt.Errorf("%w: [output].format %q", ErrInvalidValue, f.Output.Format)
		}
	}
	if f.Output.Jobs < 0 {
		return fmt.Errorf("%w: [output].jobs %d", ErrInvalidValue, f.Output.Jobs)
	}
	return f.AggregationConfig().Newline.Validate()
}

func (f *File) direction() (layout.ReadingDirection, error) {
	switch strings.ToLower(strings.TrimSpace(f.ReadingOrder.Direction)) {
	case "", "ltr":
		return layout.LeftToRight, nil
	case "rtl":
		return layout.RightToLeft, nil
	default:
		return layout.LeftToRight, fmt.Errorf("%w: [reading_order].direction %q", ErrInvalidValue, f.ReadingOrder.Direction)
	}
}

// AggregationConfig converts the file into an aggregator configuration
func (f *File) AggregationConfig() aggregation.Config {
	cfg := aggregation.DefaultConfig(f.Aggregator.NLThreshold, f.Aggregator.NPThreshold)
	cfg.Newline.IndentThreshold = f.Aggregator.IndentThreshold
	cfg.Newline.MarginTolerance = f.Aggregator.MarginTolerance
	if f.Aggregator.LeftMargin != nil {
		margin := *f.Aggregator.LeftMargin
		cfg.Newline.LeftMargin = &margin
	}
	cfg.Strict = f.Aggregator.Strict
	cfg.SortReadingOrder = f.Aggregator.SortReadingOrder

	cfg.ReadingOrder.Direction, _ = f.direction()
	cfg.ReadingOrder.RowTolerance = f.ReadingOrder.RowTolerance
	return cfg
}

// OutputFormat returns the configured output format, or fallback when unset
func (f *File) OutputFormat(fallback format.Format) format.Format {
	if f.Output.Format == "" {
		return fallback
	}
	out, err := format.Parse(f.Output.Format)
	if err != nil {
		return fallback
	}
	return out
}
