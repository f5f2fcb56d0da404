package output

import (
	"github.com/finkit/finproj/internal/domain"
	"github.com/finkit/finproj/internal/locale"
)

// GenerateReport writes the report in the named format to dir and returns the
// written file names. The "all" format writes the verbose console report and
// the detailed CSV.
func GenerateReport(report *domain.Report, format string, l locale.Locale, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{Locale: l}, CSVDetailedExporter{}} {
			name, err := WriteFormatted(f, report, dir)
			if err != nil {
				return files, err
			}
			files = append(files, name)
		}
		return files, nil
	}
	f, err := LookupFormatter(format, l)
	if err != nil {
		return nil, err
	}
	name, err := WriteFormatted(f, report, dir)
	if err != nil {
		return nil, err
	}
	return []string{name}, nil
}
