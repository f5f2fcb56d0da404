package output

import (
	"bytes"
	"encoding/csv"

	"github.com/finkit/finproj/internal/domain"
)

// CSVDetailedExporter provides the raw month-by-month series of every
// compound scenario and regime. Other scenario kinds have no series and
// are skipped.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string      { return "detailed-csv" }
func (c CSVDetailedExporter) Extension() string { return "csv" }

func (c CSVDetailedExporter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Regime", "Month", "CumulativeContributions", "InterestThisMonth", "CumulativeInterest", "Balance"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, res := range report.Results {
		if res.Compound == nil {
			continue
		}
		for _, p := range res.Compound.Regimes {
			for _, r := range p.Rows {
				row := []string{
					res.Name,
					string(p.Regime),
					intToString(r.Month),
					plain(r.CumulativeContributions),
					plain(r.InterestThisMonth),
					plain(r.CumulativeInterest),
					plain(r.Balance),
				}
				if err := w.Write(row); err != nil {
					return nil, err
				}
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
