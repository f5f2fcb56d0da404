package output

import (
	"bytes"
	"fmt"

	"github.com/finkit/finproj/internal/domain"
	"github.com/finkit/finproj/internal/locale"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct {
	Locale locale.Locale
}

func (c ConsoleFormatter) Name() string      { return "console-lite" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "FINANCIAL PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	last := ""
	for _, row := range Summarize(report) {
		if row.Scenario != last {
			fmt.Fprintf(&buf, "\n%s (%s)\n", row.Scenario, row.Kind)
			last = row.Scenario
		}
		marker := " "
		if row.Best {
			marker = "*"
		}
		fmt.Fprintf(&buf, " %s %-22s Final=%s Earnings=%s", marker, row.Subject,
			FormatCurrency(c.Locale, row.FinalAmount), FormatCurrency(c.Locale, row.Earnings))
		if !row.Taxes.IsZero() {
			fmt.Fprintf(&buf, " Taxes=%s", FormatCurrency(c.Locale, row.Taxes))
		}
		fmt.Fprintln(&buf)
	}
	if len(report.Highlights) > 0 {
		fmt.Fprintln(&buf)
		for _, h := range report.Highlights {
			fmt.Fprintf(&buf, "- %s\n", h)
		}
	}
	return buf.Bytes(), nil
}
