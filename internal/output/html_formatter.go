package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/shopspring/decimal"

	"github.com/finkit/finproj/internal/domain"
	"github.com/finkit/finproj/internal/locale"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct {
	Locale locale.Locale
}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"rate": FormatRate,
	"yield": func(l locale.Locale, percent decimal.Decimal) string {
		return FormatPercentage(l, percent.Shift(-2))
	},
	"checkpoints": checkpointRows,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.Report
		Locale      locale.Locale
		Summary     []SummaryRow
		Assumptions []string
	}{report, resolveLocale(h.Locale), Summarize(report), assumptionsOf(report)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
