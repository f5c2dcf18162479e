package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/mawc/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders a claim report, or one of its sections, in a single
// output format.
type Formatter interface {
	Name() string
	Format(report *domain.ClaimReport) ([]byte, error)
	FormatRates(period domain.StateMinMax, rates []domain.WeeklyRateResult, skipped []domain.SkippedRate) ([]byte, error)
	FormatEntitlements(summary domain.EntitlementSummary) ([]byte, error)
	FormatWeeks(start, end domain.Date, mode domain.WeekMode, weeks domain.WeekCalculation) ([]byte, error)
}

var formatters = []Formatter{
	ConsoleFormatter{},
	JSONFormatter{},
	CSVFormatter{},
}

var formatAliases = map[string]string{
	"text":  "console",
	"table": "console",
}

// GetFormatterByName returns the formatter registered under name or alias,
// or nil if there is none.
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := formatAliases[name]; ok {
		name = target
	}
	for _, f := range formatters {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// LookupFormatter is GetFormatterByName with an error listing the choices.
func LookupFormatter(name string) (Formatter, error) {
	if f := GetFormatterByName(name); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("unsupported format: %s (available: %s)", name, strings.Join(AvailableFormatterNames(), ", "))
}

// AvailableFormatterNames lists the registered formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for _, f := range formatters {
		names = append(names, f.Name())
	}
	return names
}

// AvailableFormatAliases lists the accepted alternative names.
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for a := range formatAliases {
		aliases = append(aliases, a)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteReport formats report and writes it to w.
func WriteReport(w io.Writer, f Formatter, report *domain.ClaimReport) error {
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFormatted formats report into a timestamped file in the working
// directory and returns its name.
func WriteFormatted(f Formatter, report *domain.ClaimReport, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("mawc_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// FileExtension returns the file extension used for a formatter's output.
func FileExtension(f Formatter) string {
	switch f.Name() {
	case "json":
		return "json"
	case "csv":
		return "csv"
	default:
		return "txt"
	}
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatWeeks renders a week count with up to four decimal places.
func FormatWeeks(weeks decimal.Decimal) string {
	return weeks.Round(4).String()
}

func formatOptionalCurrency(amount *decimal.Decimal) string {
	if amount == nil {
		return "-"
	}
	return FormatCurrency(*amount)
}

func formatOptionalWeeks(weeks *decimal.Decimal) string {
	if weeks == nil {
		return "life"
	}
	return FormatWeeks(*weeks)
}

func formatMaxWeeks(maxWeeks *int) string {
	if maxWeeks == nil {
		return "life"
	}
	return fmt.Sprintf("%d", *maxWeeks)
}
