package app

import (
	"github.com/daniela-hl/queue-sim/internal/report"
	"github.com/daniela-hl/queue-sim/internal/storage"
)

// exportScenario writes the scenario's metrics as <base>.csv and
// <base>.json in the working directory.
func exportScenario(item storage.HistoryItem, base string) error {
	if err := report.ExportCSV(item.Metrics, base+".csv"); err != nil {
		return err
	}
	return report.ExportJSON(item.Metrics, base+".json")
}
