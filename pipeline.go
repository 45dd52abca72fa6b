package edspdf

import (
	"context"
	"errors"
	"fmt"

	"github.com/acalliger/edspdf/aggregation"
	"github.com/acalliger/edspdf/layout"
	"github.com/acalliger/edspdf/metadata"
	"github.com/acalliger/edspdf/model"
	"github.com/acalliger/edspdf/recordio"
)

// ErrThresholdsNotSet is returned by terminal operations when no break
// thresholds were configured. Thresholds depend on the documents and have no
// default.
var ErrThresholdsNotSet = errors.New("break thresholds not set")

// Pipeline provides a fluent interface for aggregating line records.
// Each configuration method returns a new Pipeline instance, making it
// safe for concurrent use and allowing method chaining.
type Pipeline struct {
	// Source
	filename string
	lines    []model.LineRecord
	pages    [][]model.LineRecord
	paged    bool
	loaded   bool

	// Records of the source file that could not be decoded
	readWarnings []Warning

	// Configuration
	options Options
}

// clone creates a shallow copy of the Pipeline with a deep copy of options.
// Line data is shared; it is never modified.
func (p *Pipeline) clone() *Pipeline {
	return &Pipeline{
		filename: p.filename,
		lines:    p.lines,
		pages:    p.pages,
		paged:    p.paged,
		loaded:   p.loaded,
		options:  p.options.clone(),

		readWarnings: p.readWarnings,
	}
}

// ============================================================================
// Configuration Methods (return new Pipeline instance)
// ============================================================================

// Thresholds sets the vertical gaps, in page-normalized units, from which
// consecutive lines are separated by a line break (nl) and above which they
// are separated by a paragraph break (np).
//
// Example:
//
//	res, _, err := edspdf.FromLines(lines).Thresholds(0.005, 0.02).Aggregate()
func (p *Pipeline) Thresholds(nl, np float64) *Pipeline {
	newP := p.clone()
	newP.options.config.Newline.NLThreshold = nl
	newP.options.config.Newline.NPThreshold = np
	newP.options.thresholdsSet = true
	return newP
}

// Indent enables the indentation signal: a line starting more than
// threshold to the right of the left margin, after one that does not,
// starts a new paragraph.
func (p *Pipeline) Indent(threshold float64) *Pipeline {
	newP := p.clone()
	newP.options.config.Newline.IndentThreshold = threshold
	return newP
}

// LeftMargin fixes the margin used by the indentation signal instead of
// detecting it from each zone's lines.
func (p *Pipeline) LeftMargin(x float64) *Pipeline {
	newP := p.clone()
	newP.options.config.Newline.LeftMargin = &x
	return newP
}

// Strict makes an invalid line fail the aggregation instead of being
// skipped with a warning.
func (p *Pipeline) Strict() *Pipeline {
	newP := p.clone()
	newP.options.config.Strict = true
	return newP
}

// SortReadingOrder sorts lines by page, row and horizontal position before
// aggregating. Without it, lines are used in the order given.
func (p *Pipeline) SortReadingOrder() *Pipeline {
	newP := p.clone()
	newP.options.config.SortReadingOrder = true
	return newP
}

// RightToLeft orders lines within a row from right to left when sorting.
func (p *Pipeline) RightToLeft() *Pipeline {
	newP := p.clone()
	newP.options.config.ReadingOrder.Direction = layout.RightToLeft
	return newP
}

// WithConfig replaces the whole aggregation configuration, thresholds
// included.
//
// Example:
//
//	cfg := edspdf.Must(config.Load("edspdf.toml"))
//	res, _, err := edspdf.Open("lines.json").WithConfig(cfg.AggregationConfig()).Aggregate()
func (p *Pipeline) WithConfig(config aggregation.Config) *Pipeline {
	newP := p.clone()
	newP.options.config = config
	if config.Newline.LeftMargin != nil {
		margin := *config.Newline.LeftMargin
		newP.options.config.Newline.LeftMargin = &margin
	}
	newP.options.thresholdsSet = true
	return newP
}

// WithLines returns a Pipeline with the same configuration over other
// lines, so one configured Pipeline can serve many inputs.
func (p *Pipeline) WithLines(lines []model.LineRecord) *Pipeline {
	newP := p.clone()
	newP.filename = ""
	newP.lines = lines
	newP.pages = nil
	newP.paged = false
	newP.loaded = true
	newP.readWarnings = nil
	return newP
}

// WithFile returns a Pipeline with the same configuration reading line
// records from another file, as Open does.
func (p *Pipeline) WithFile(filename string) *Pipeline {
	newP := p.clone()
	newP.filename = filename
	newP.lines = nil
	newP.pages = nil
	newP.paged = false
	newP.loaded = false
	newP.readWarnings = nil
	return newP
}

// Labels restricts the result to the given zones. Multiple calls are
// cumulative.
func (p *Pipeline) Labels(labels ...string) *Pipeline {
	newP := p.clone()
	newP.options.labels = append(newP.options.labels, labels...)
	return newP
}

// Jobs sets how many pages PageResults aggregates at once. Zero or less
// means GOMAXPROCS.
func (p *Pipeline) Jobs(n int) *Pipeline {
	newP := p.clone()
	newP.options.jobs = n
	return newP
}

// Config returns the aggregation configuration the pipeline would use.
func (p *Pipeline) Config() aggregation.Config {
	return p.options.clone().config
}

// ============================================================================
// Terminal Methods
// ============================================================================

// Lines returns the pipeline's line records, reading the source file if
// needed. Lines from FromPages carry their page index.
func (p *Pipeline) Lines() ([]model.LineRecord, error) {
	if err := p.load(); err != nil {
		return nil, err
	}
	if p.paged {
		return aggregation.FlattenPages(p.pages), nil
	}
	return p.lines, nil
}

// Aggregate assembles every zone into text and remapped style spans.
//
// When the lines come from a file, records that could not be decoded are
// reported first, as WarnRejectedLine warnings whose Line is the record's
// position in the file. In strict mode they fail the call instead.
//
// Example:
//
//	res, warnings, err := edspdf.FromLines(lines).Thresholds(0.005, 0.02).Aggregate()
func (p *Pipeline) Aggregate() (*model.AggregationResult, []Warning, error) {
	agg, lines, err := p.prepare()
	if err != nil {
		return nil, nil, err
	}
	res, warnings, err := agg.Aggregate(lines)
	warnings = p.withReadWarnings(warnings)
	if err != nil {
		return nil, warnings, err
	}
	return p.filter(res), warnings, nil
}

// Zones returns the assembled zones with the offset and separator of every
// line, in order of first appearance.
func (p *Pipeline) Zones() ([]aggregation.Zone, []Warning, error) {
	agg, lines, err := p.prepare()
	if err != nil {
		return nil, nil, err
	}
	zones, warnings, err := agg.AggregateZones(lines)
	warnings = p.withReadWarnings(warnings)
	if err != nil {
		return nil, warnings, err
	}
	if len(p.options.labels) == 0 {
		return zones, warnings, nil
	}
	kept := zones[:0]
	for _, zone := range zones {
		if p.wants(zone.Label) {
			kept = append(kept, zone)
		}
	}
	return kept, warnings, nil
}

// Text returns the text of one zone. A zone without lines yields an empty
// string.
//
// Example:
//
//	body, _, err := edspdf.Open("lines.json").Thresholds(0.005, 0.02).Text("body")
func (p *Pipeline) Text(label string) (string, []Warning, error) {
	res, warnings, err := p.Aggregate()
	if err != nil {
		return "", warnings, err
	}
	return res.Text[label], warnings, nil
}

// PageResults aggregates every page on its own, concurrently. Lines from
// FromLines or a file are grouped by their Page; only pages holding lines
// get a result, in ascending page order. Results and warnings share that
// indexing. Records of the source file that could not be decoded are
// reported with the first page.
func (p *Pipeline) PageResults(ctx context.Context) ([]*model.AggregationResult, [][]Warning, error) {
	agg, err := p.aggregator()
	if err != nil {
		return nil, nil, err
	}
	if err := p.load(); err != nil {
		return nil, nil, err
	}

	pages := p.pages
	if !p.paged {
		if pages, err = recordio.GroupPages(p.lines); err != nil {
			return nil, nil, err
		}
	}

	results, warnings, err := agg.AggregatePages(ctx, pages, p.options.jobs)
	if len(warnings) > 0 {
		warnings[0] = p.withReadWarnings(warnings[0])
	}
	if err != nil {
		return nil, warnings, err
	}
	for i := range results {
		results[i] = p.filter(results[i])
	}
	return results, warnings, nil
}

// Dates aggregates the lines and returns the date mentions of each zone.
// Offsets are runes into the zone text.
func (p *Pipeline) Dates() (map[string][]metadata.Mention, []Warning, error) {
	res, warnings, err := p.Aggregate()
	if err != nil {
		return nil, warnings, err
	}
	return metadata.ExtractResult(res), warnings, nil
}

// ============================================================================
// Internal helpers
// ============================================================================

// load reads the source file if lines are not in memory yet.
func (p *Pipeline) load() error {
	if p.loaded {
		return nil
	}
	if p.filename == "" {
		return fmt.Errorf("no filename specified")
	}
	src, warnings, err := recordio.ReadFile(p.filename)
	if err != nil {
		return err
	}
	if p.options.config.Strict {
		if err := recordio.RejectionError(warnings); err != nil {
			return fmt.Errorf("%s: %w", p.filename, err)
		}
	}
	p.lines = src.Lines
	p.readWarnings = warnings
	p.loaded = true
	return nil
}

// withReadWarnings puts the warnings met while reading the source first
func (p *Pipeline) withReadWarnings(warnings []Warning) []Warning {
	if len(p.readWarnings) == 0 {
		return warnings
	}
	out := make([]Warning, 0, len(p.readWarnings)+len(warnings))
	out = append(out, p.readWarnings...)
	return append(out, warnings...)
}

func (p *Pipeline) aggregator() (*aggregation.Aggregator, error) {
	if !p.options.thresholdsSet {
		return nil, ErrThresholdsNotSet
	}
	return aggregation.NewAggregator(p.options.config)
}

func (p *Pipeline) prepare() (*aggregation.Aggregator, []model.LineRecord, error) {
	agg, err := p.aggregator()
	if err != nil {
		return nil, nil, err
	}
	lines, err := p.Lines()
	if err != nil {
		return nil, nil, err
	}
	return agg, lines, nil
}

func (p *Pipeline) wants(label string) bool {
	if len(p.options.labels) == 0 {
		return true
	}
	for _, l := range p.options.labels {
		if l == label {
			return true
		}
	}
	return false
}

// filter drops the zones not selected with Labels.
func (p *Pipeline) filter(res *model.AggregationResult) *model.AggregationResult {
	if res == nil || len(p.options.labels) == 0 {
		return res
	}
	out := model.NewAggregationResult()
	for label, text := range res.Text {
		if p.wants(label) {
			out.Text[label] = text
			out.Styles[label] = res.Styles[label]
		}
	}
	return out
}
