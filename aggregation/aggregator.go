package aggregation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/acalliger/edspdf/layout"
	"github.com/acalliger/edspdf/model"
)

// Config holds configuration for zone aggregation
type Config struct {
	// Newline configures break detection between consecutive lines
	Newline layout.NewlineConfig

	// Strict makes an invalid line fail the whole aggregation instead of
	// being skipped with a warning
	Strict bool

	// SortReadingOrder sorts lines before aggregating. The caller is
	// otherwise responsible for passing lines in reading order.
	SortReadingOrder bool

	// ReadingOrder configures sorting when SortReadingOrder is set
	ReadingOrder layout.ReadingOrderConfig
}

// DefaultConfig returns a configuration with the given break thresholds
func DefaultConfig(nlThreshold, npThreshold float64) Config {
	return Config{
		Newline:      layout.DefaultNewlineConfig(nlThreshold, npThreshold),
		ReadingOrder: layout.DefaultReadingOrderConfig(),
	}
}

// Zone is the assembled text of one label
type Zone struct {
	// Label is the zone label
	Label string

	// Text is the concatenation of every line's text followed by its separator
	Text string

	// Lines are the zone's lines, in the order they were aggregated
	Lines []model.LineRecord

	// Offsets[i] is the rune offset at which Lines[i] begins in Text
	Offsets []int

	// Separators[i] is the text placed after Lines[i]; the last is empty
	Separators []string

	// Styles are the remapped style spans of all lines
	Styles []model.GlobalStyleSpan
}

// RuneLen returns the length of the zone text in runes
func (z Zone) RuneLen() int {
	return utf8.RuneCountInString(z.Text)
}

// Aggregator builds per-zone text and styles from line records. It holds no
// mutable state and is safe for concurrent use.
type Aggregator struct {
	config Config
	policy *layout.NewlinePolicy
	sorter *layout.ReadingOrderDetector
}

// NewAggregator creates an aggregator after validating its configuration
func NewAggregator(config Config) (*Aggregator, error) {
	policy, err := layout.NewNewlinePolicy(config.Newline)
	if err != nil {
		return nil, err
	}
	return &Aggregator{
		config: config,
		policy: policy,
		sorter: layout.NewReadingOrderDetectorWithConfig(config.ReadingOrder),
	}, nil
}

// Config returns the aggregator configuration
func (a *Aggregator) Config() Config {
	return a.config
}

// Policy returns the newline policy used between lines
func (a *Aggregator) Policy() *layout.NewlinePolicy {
	return a.policy
}

// GroupByLabel splits lines by zone label. Labels are returned in order of
// first appearance and each group keeps the input order of its lines.
// Unlabeled lines are left out.
func GroupByLabel(lines []model.LineRecord) ([]string, map[string][]model.LineRecord) {
	labels, groups, _ := groupByLabel(lines)
	return labels, groups
}

// groupByLabel also returns, per label, the input index of each grouped line
func groupByLabel(lines []model.LineRecord) ([]string, map[string][]model.LineRecord, map[string][]int) {
	var labels []string
	groups := make(map[string][]model.LineRecord)
	positions := make(map[string][]int)

	for i, line := range lines {
		if !line.IsLabeled() {
			continue
		}
		if _, seen := groups[line.Label]; !seen {
			labels = append(labels, line.Label)
		}
		groups[line.Label] = append(groups[line.Label], line)
		positions[line.Label] = append(positions[line.Label], i)
	}

	return labels, groups, positions
}

// AggregateZone assembles the lines of a single zone. Lines must already be
// in reading order; they are not validated.
func (a *Aggregator) AggregateZone(label string, lines []model.LineRecord) (Zone, []Warning) {
	return a.aggregateZone(label, lines, nil)
}

func (a *Aggregator) aggregateZone(label string, lines []model.LineRecord, positions []int) (Zone, []Warning) {
	zone := Zone{
		Label: label,
		Lines: lines,
	}
	if len(lines) == 0 {
		zone.Styles = make([]model.GlobalStyleSpan, 0)
		return zone, nil
	}

	zone.Separators = a.policy.Separators(lines)
	zone.Offsets = make([]int, len(lines))

	var sb strings.Builder
	offset := 0
	for i, line := range lines {
		zone.Offsets[i] = offset
		sb.WriteString(line.Text)
		sb.WriteString(zone.Separators[i])
		offset += line.RuneLen() + utf8.RuneCountInString(zone.Separators[i])
	}
	zone.Text = sb.String()

	var warnings []Warning
	zone.Styles, warnings = remapStyles(label, lines, zone.Offsets, positions)

	return zone, warnings
}

// Aggregate assembles every zone present among lines.
//
// Lines are expected in reading order. Invalid lines are skipped with a
// warning (or fail the call in strict mode) and unlabeled lines are left
// out. A label with no line never appears in the result. Empty input yields
// an empty result.
func (a *Aggregator) Aggregate(lines []model.LineRecord) (*model.AggregationResult, []Warning, error) {
	zones, warnings, err := a.AggregateZones(lines)
	if err != nil {
		return nil, warnings, err
	}

	result := model.NewAggregationResult()
	for _, zone := range zones {
		result.Text[zone.Label] = zone.Text
		result.Styles[zone.Label] = zone.Styles
	}
	return result, warnings, nil
}

// AggregateZones is Aggregate returning the zones with their per-line
// offsets and separators, in order of first appearance
func (a *Aggregator) AggregateZones(lines []model.LineRecord) ([]Zone, []Warning, error) {
	// order[k] is the input index of the k-th line aggregated
	var order []int
	if a.config.SortReadingOrder {
		order = a.sorter.Order(lines)
	}
	at := func(k int) int {
		if order == nil {
			return k
		}
		return order[k]
	}

	var warnings []Warning
	accepted := make([]model.LineRecord, 0, len(lines))
	positions := make([]int, 0, len(lines))
	unlabeled := 0

	for k := range lines {
		i := at(k)
		line := lines[i]
		if err := line.Validate(); err != nil {
			if a.config.Strict {
				return nil, warnings, fmt.Errorf("line %d: %w", i, err)
			}
			warnings = append(warnings, Warning{
				Kind:    WarnRejectedLine,
				Label:   line.Label,
				Line:    i,
				Span:    -1,
				Message: err.Error(),
			})
			continue
		}
		if !line.IsLabeled() {
			unlabeled++
			continue
		}
		accepted = append(accepted, line)
		positions = append(positions, i)
	}

	if unlabeled > 0 {
		warnings = append(warnings, Warning{
			Kind:    WarnUnlabeledLine,
			Line:    -1,
			Span:    -1,
			Message: fmt.Sprintf("%d unlabeled line(s) excluded", unlabeled),
		})
	}

	labels, groups, groupPositions := groupByLabel(accepted)
	zones := make([]Zone, 0, len(labels))
	for _, label := range labels {
		pos := groupPositions[label]
		for k := range pos {
			pos[k] = positions[pos[k]]
		}
		zone, zoneWarnings := a.aggregateZone(label, groups[label], pos)
		zones = append(zones, zone)
		warnings = append(warnings, zoneWarnings...)
	}

	return zones, warnings, nil
}
