package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/daniela-hl/queue-sim/internal/queueing"
)

// ExportCSV writes the metrics as a two-column CSV (metric, value).
func ExportCSV(m queueing.Metrics, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"metric", "value"}); err != nil {
		return err
	}
	for _, key := range MetricKeys(m) {
		if err := w.Write([]string{key, fmt.Sprintf("%.10g", m[key])}); err != nil {
			return err
		}
	}
	return nil
}

// ExportJSON writes the metrics mapping as indented JSON.
func ExportJSON(m queueing.Metrics, filename string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
