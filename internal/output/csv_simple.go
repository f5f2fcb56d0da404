package output

import (
	"bytes"
	"encoding/csv"

	"github.com/finkit/finproj/internal/domain"
)

// CSVSummarizer implements the summary CSV output (one row per regime,
// retirement plan or compared instrument).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string      { return "csv" }
func (c CSVSummarizer) Extension() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Kind", "Subject", "FinalAmount", "Contributed", "Earnings", "Taxes", "Best", "Note"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range Summarize(report) {
		record := []string{
			row.Scenario,
			string(row.Kind),
			row.Subject,
			plain(row.FinalAmount),
			plain(row.Contributed),
			plain(row.Earnings),
			plain(row.Taxes),
			boolToString(row.Best),
			row.Note,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
