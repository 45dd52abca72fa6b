package layout

import (
	"math"

	"github.com/acalliger/edspdf/model"
)

// DetectLeftMargin detects the most common left edge among lines.
//
// Left edges are bucketed by tolerance; the most populated bucket wins, the
// leftmost bucket on ties. The margin is the smallest X0 inside the winning
// bucket. Returns 0 for no lines.
func DetectLeftMargin(lines []model.LineRecord, tolerance float64) float64 {
	if len(lines) == 0 {
		return 0
	}
	if tolerance <= 0 {
		tolerance = 0.01
	}

	type bucketStats struct {
		count int
		minX  float64
	}
	buckets := make(map[int]*bucketStats)

	for _, line := range lines {
		bucket := int(math.Floor(line.BBox.X0 / tolerance))
		s, ok := buckets[bucket]
		if !ok {
			buckets[bucket] = &bucketStats{count: 1, minX: line.BBox.X0}
			continue
		}
		s.count++
		if line.BBox.X0 < s.minX {
			s.minX = line.BBox.X0
		}
	}

	bestBucket := 0
	var best *bucketStats
	for bucket, s := range buckets {
		if best == nil || s.count > best.count || (s.count == best.count && bucket < bestBucket) {
			best = s
			bestBucket = bucket
		}
	}

	return best.minX
}
