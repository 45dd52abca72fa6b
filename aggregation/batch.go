package aggregation

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/acalliger/edspdf/model"
)

// AggregatePages aggregates each page independently and concurrently.
//
// Results and warnings are indexed like pages. At most jobs pages are
// processed at once; jobs <= 0 uses GOMAXPROCS. The first error (a strict
// mode rejection or ctx cancellation) stops the remaining pages.
func (a *Aggregator) AggregatePages(ctx context.Context, pages [][]model.LineRecord, jobs int) ([]*model.AggregationResult, [][]Warning, error) {
	results := make([]*model.AggregationResult, len(pages))
	warnings := make([][]Warning, len(pages))
	if len(pages) == 0 {
		return results, warnings, nil
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine writes only its own index
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(pages)))

	for i, page := range pages {
		i, page := i, page
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			res, w, err := a.Aggregate(page)
			warnings[i] = w
			if err != nil {
				return fmt.Errorf("page %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, warnings, err
	}
	return results, warnings, nil
}

// AggregateDocument aggregates a whole document in one pass. Pages are
// concatenated in order, so zones continue across page boundaries.
func (a *Aggregator) AggregateDocument(pages [][]model.LineRecord) (*model.AggregationResult, []Warning, error) {
	return a.Aggregate(FlattenPages(pages))
}

// FlattenPages concatenates pages into a new slice and sets each line's Page
// to the index of its page
func FlattenPages(pages [][]model.LineRecord) []model.LineRecord {
	total := 0
	for _, page := range pages {
		total += len(page)
	}

	lines := make([]model.LineRecord, 0, total)
	for i, page := range pages {
		for _, line := range page {
			line.Page = i
			lines = append(lines, line)
		}
	}
	return lines
}
