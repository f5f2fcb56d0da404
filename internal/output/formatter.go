package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/finkit/finproj/internal/domain"
	"github.com/finkit/finproj/internal/locale"
)

// ErrUnsupportedFormat is returned for format names with no registered formatter.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(report *domain.Report) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
	// Extension is the file extension used by WriteFormatted.
	Extension() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID  string
	Ext string
	F   func(*domain.Report) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.Report) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                           { return ff.ID }
func (ff FormatterFunc) Extension() string                      { return ff.Ext }

// WriteFormatted runs a formatter and writes output to a timestamped file in dir.
func WriteFormatted(f Formatter, report *domain.Report, dir string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	stamp := report.GeneratedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}
	filename := filepath.Join(dir, fmt.Sprintf("finproj_report_%s.%s", stamp.Format("20060102_150405"), f.Extension()))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// builtInFormatters stores the constructors of the available formatters.
var builtInFormatters = []func(locale.Locale) Formatter{
	func(l locale.Locale) Formatter { return ConsoleVerboseFormatter{Locale: l} },
	func(l locale.Locale) Formatter { return ConsoleFormatter{Locale: l} },
	func(locale.Locale) Formatter { return CSVSummarizer{} },
	func(locale.Locale) Formatter { return CSVDetailedExporter{} },
	func(l locale.Locale) Formatter { return HTMLFormatter{Locale: l} },
	func(locale.Locale) Formatter { return JSONFormatter{} },
	func(locale.Locale) Formatter { return YAMLFormatter{} },
	func(locale.Locale) Formatter { return XLSXFormatter{} },
}

// GetFormatterByName fetches a registered formatter rendering amounts in l.
// It returns nil for unknown names.
func GetFormatterByName(name string, l locale.Locale) Formatter {
	n := NormalizeFormatName(name)
	for _, build := range builtInFormatters {
		if f := build(l); f.Name() == n {
			return f
		}
	}
	return nil
}

// LookupFormatter is GetFormatterByName with an error listing the known names.
func LookupFormatter(name string, l locale.Locale) (Formatter, error) {
	if f := GetFormatterByName(name, l); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, name,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"console-verbose": "console",
	"verbose":         "console",
	"summary":         "console-lite",
	"csv-detailed":    "detailed-csv",
	"csv-summary":     "csv",
	"html-report":     "html",
	"json-pretty":     "json",
	"yml":             "yaml",
	"excel":           "xlsx",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, build := range builtInFormatters {
		names = append(names, build(locale.Locale{}).Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
