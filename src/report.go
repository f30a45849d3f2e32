package src

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jszwec/csvutil"
)

// VideoResult is one video's aggregated metrics, labeled by its output CSV
// path with the -quality.csv suffix stripped.
type VideoResult struct {
	Label   string
	Metrics []MetricSummary
}

// Label derives the report label for a results file.
func Label(csvPath string) string {
	return strings.TrimSuffix(csvPath, "-quality.csv")
}

// WriteReport prints the aggregated statistics per video, in first-seen
// order, one aligned line per metric at that metric's precision.
func WriteReport(w io.Writer, results []VideoResult) {
	for _, res := range results {
		fmt.Fprintln(w, res.Label)
		for _, m := range res.Metrics {
			name := fmt.Sprintf("Mean Average %s:", m.Spec.Name)
			mean := fmt.Sprintf("%.*f", m.Spec.Precision, m.Summary.Mean)
			fmt.Fprintf(w, "%-22s%-12s5th Percentile: %.*f\n",
				name, mean, m.Spec.Precision, m.Summary.Percentile5)
		}
	}
}

type reportRow struct {
	Video       string  `csv:"video"`
	Metric      string  `csv:"metric"`
	Mean        float64 `csv:"mean"`
	Percentile5 float64 `csv:"percentile_5"`
	Samples     int     `csv:"samples"`
}

// WriteCSVReport writes the same summaries as a machine-readable CSV, one
// row per (video, metric) pair.
func WriteCSVReport(w io.Writer, results []VideoResult) error {
	rows := make([]reportRow, 0, len(results))
	for _, res := range results {
		for _, m := range res.Metrics {
			rows = append(rows, reportRow{
				Video:       res.Label,
				Metric:      m.Spec.Name,
				Mean:        m.Summary.Mean,
				Percentile5: m.Summary.Percentile5,
				Samples:     m.Summary.Samples,
			})
		}
	}

	cw := csv.NewWriter(w)
	if err := csvutil.NewEncoder(cw).Encode(rows); err != nil {
		return fmt.Errorf("encode CSV report: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
