package src

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Summary is the reduced statistics for one (video, metric) pair. The 5th
// percentile is nearest-rank over the ascending-sorted samples, not
// interpolated.
type Summary struct {
	Mean        float64
	Percentile5 float64
	Samples     int
}

// MetricSummary pairs a summary with the metric it was computed for.
type MetricSummary struct {
	Spec    MetricSpec
	Summary Summary
}

// Aggregate reads one video's per-frame CSV and reduces each requested
// metric to a Summary. A metric whose column is missing from the header is
// logged as a warning and dropped for this video only. Cells that do not
// parse as numbers are skipped, not counted and not treated as zero.
// Metrics that end up with zero samples are omitted from the result.
func Aggregate(csvPath string, specs []MetricSpec, log zerolog.Logger) ([]MetricSummary, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("open results %q: %w", csvPath, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	// Stray quotes must read as ordinary field content so the float parse
	// decides what survives, not the CSV syntax.
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read results header %q: %w", csvPath, err)
	}

	type series struct {
		spec   MetricSpec
		index  int
		values []float64
	}
	var columns []*series
	for _, spec := range specs {
		idx := slices.Index(header, spec.Column)
		if idx < 0 {
			log.Warn().Msgf("Could not find %s in results", spec.Name)
			continue
		}
		columns = append(columns, &series{spec: spec, index: idx})
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			// A row the reader cannot parse is skipped like an
			// unparsable cell; it never fails the whole video.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read results %q: %w", csvPath, err)
		}
		for _, c := range columns {
			if c.index >= len(row) {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[c.index]), 64)
			if err != nil {
				continue
			}
			c.values = append(c.values, v)
		}
	}

	summaries := make([]MetricSummary, 0, len(columns))
	for _, c := range columns {
		if len(c.values) == 0 {
			continue
		}
		sort.Float64s(c.values)
		sum := 0.0
		for _, v := range c.values {
			sum += v
		}
		summaries = append(summaries, MetricSummary{
			Spec: c.spec,
			Summary: Summary{
				Mean:        sum / float64(len(c.values)),
				Percentile5: c.values[percentile5Index(len(c.values))],
				Samples:     len(c.values),
			},
		})
	}
	return summaries, nil
}

// percentile5Index is the nearest-rank index: floor(0.05 * n), clamped into
// [0, n-1]. With fewer than 20 samples it is always 0.
func percentile5Index(n int) int {
	idx := int(0.05 * float64(n))
	if idx > n-1 {
		idx = n - 1
	}
	return idx
}
