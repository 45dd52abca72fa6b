package edspdf

import (
	"github.com/acalliger/edspdf/aggregation"
	"github.com/acalliger/edspdf/layout"
)

// Options holds configuration for an aggregation pipeline.
type Options struct {
	// Break thresholds; unset until Thresholds or WithConfig is called
	thresholdsSet bool
	config        aggregation.Config

	// Output filtering, nil means every zone
	labels []string

	// Concurrency for page-by-page aggregation, 0 means GOMAXPROCS
	jobs int
}

// defaultOptions returns the default pipeline options.
func defaultOptions() Options {
	return Options{
		config: aggregation.Config{
			Newline:      layout.DefaultNewlineConfig(0, 0),
			ReadingOrder: layout.DefaultReadingOrderConfig(),
		},
	}
}

// clone creates a deep copy of Options.
func (o Options) clone() Options {
	newOpts := Options{
		thresholdsSet: o.thresholdsSet,
		config:        o.config,
		jobs:          o.jobs,
	}

	// Deep copy pointer and slice fields
	if o.config.Newline.LeftMargin != nil {
		margin := *o.config.Newline.LeftMargin
		newOpts.config.Newline.LeftMargin = &margin
	}
	if o.labels != nil {
		newOpts.labels = make([]string, len(o.labels))
		copy(newOpts.labels, o.labels)
	}

	return newOpts
}
