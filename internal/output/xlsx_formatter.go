package output

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/finkit/finproj/internal/domain"
)

// XLSXFormatter writes a workbook with a summary sheet and one sheet per
// compound scenario holding its monthly series.
type XLSXFormatter struct{}

func (x XLSXFormatter) Name() string      { return "xlsx" }
func (x XLSXFormatter) Extension() string { return "xlsx" }

const summarySheet = "Summary"

// maxSheetName is the sheet name length limit of the file format
const maxSheetName = 31

func (x XLSXFormatter) Format(report *domain.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(summarySheet, "A1", &[]interface{}{"Scenario", "Kind", "Subject", "Final Amount", "Contributed", "Earnings", "Taxes", "Best", "Note"}); err != nil {
		return nil, err
	}
	for i, row := range Summarize(report) {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{
			row.Scenario, string(row.Kind), row.Subject,
			row.FinalAmount.Round(2).InexactFloat64(),
			row.Contributed.Round(2).InexactFloat64(),
			row.Earnings.Round(2).InexactFloat64(),
			row.Taxes.Round(2).InexactFloat64(),
			row.Best, row.Note,
		}
		if err := f.SetSheetRow(summarySheet, cell, &values); err != nil {
			return nil, err
		}
	}
	if err := f.SetRowStyle(summarySheet, 1, 1, header); err != nil {
		return nil, err
	}

	for i, res := range report.Results {
		if res.Compound == nil {
			continue
		}
		sheet := sheetName(i+1, res.Name)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		if err := writeSeriesSheet(f, sheet, res.Compound); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		if err := f.SetRowStyle(sheet, 1, 1, header); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeSeriesSheet lays the regimes side by side, one balance column each
func writeSeriesSheet(f *excelize.File, sheet string, res *domain.CompoundResult) error {
	head := []interface{}{"Month"}
	for _, p := range res.Regimes {
		head = append(head, string(p.Regime)+" interest", string(p.Regime)+" balance")
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return err
	}
	for m := 0; m <= res.TermMonths; m++ {
		values := []interface{}{m}
		for _, p := range res.Regimes {
			if m >= len(p.Rows) {
				values = append(values, nil, nil)
				continue
			}
			r := p.Rows[m]
			values = append(values, r.InterestThisMonth.Round(2).InexactFloat64(), r.Balance.Round(2).InexactFloat64())
		}
		cell, _ := excelize.CoordinatesToCellName(1, m+2)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

var sheetNameReplacer = strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")")

// sheetName prefixes the scenario position so truncated names stay unique
func sheetName(pos int, name string) string {
	s := []rune(fmt.Sprintf("%d %s", pos, sheetNameReplacer.Replace(name)))
	if len(s) > maxSheetName {
		s = s[:maxSheetName]
	}
	return strings.TrimSpace(string(s))
}
