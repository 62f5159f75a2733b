package emissions

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// English locale keeps thousand separators consistent across reports.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// formatAmount renders a number with thousand separators and at most three
// decimals, trimming trailing zeros so traces stay readable.
func formatAmount(f float64) string {
	const precision = 3
	multiplier := math.Pow(10, precision)
	rounded := math.Round(f*multiplier) / multiplier

	if rounded == math.Trunc(rounded) {
		return printer.Sprintf("%d", int64(rounded))
	}
	return printer.Sprintf("%v", rounded)
}

// formulaTrace builds the human-readable calculation trace recorded on every
// result, e.g. "100 litres × 2.67 kgCO2e/litres = 267 kgCO2e [ADEME Base Carbone]".
func formulaTrace(quantity float64, unit string, factorValue float64, co2Kg float64, source string) string {
	return fmt.Sprintf("%s %s × %s kgCO2e/%s = %s kgCO2e [%s]",
		formatAmount(quantity), unit,
		formatAmount(factorValue), unit,
		formatAmount(co2Kg), source)
}
