// Package units normalizes activity quantities into the canonical unit used
// for emission-factor lookup: kWh for energy, litres for volume, kg for mass,
// km for distance.
package units

import "strings"

// Quantity is a value with its measurement unit.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// conversion maps a source unit to its canonical unit and multiplier.
type conversion struct {
	factor float64
	target string
}

// Canonical target units per physical dimension.
const (
	UnitKilowattHour = "kWh"
	UnitLitre        = "litres"
	UnitKilogram     = "kg"
	UnitKilometre    = "km"
)

// conversions is the bidirectional unit table. Keys are lower-cased; lookup
// trims and lower-cases the input unit.
var conversions = map[string]conversion{ //nolint:gochecknoglobals // Constant lookup table
	// Energy -> kWh
	"kwh":     {1, UnitKilowattHour},
	"mwh":     {1000, UnitKilowattHour},
	"gj":      {277.778, UnitKilowattHour},
	"tj":      {277778, UnitKilowattHour},
	"thermie": {1.163, UnitKilowattHour},
	"tep":     {11630, UnitKilowattHour},
	"btu":     {0.000293071, UnitKilowattHour},

	// Volume -> litres
	"m3":      {1000, UnitLitre},
	"m³":      {1000, UnitLitre},
	"litres":  {1, UnitLitre},
	"liters":  {1, UnitLitre},
	"l":       {1, UnitLitre},
	"gallons": {3.78541, UnitLitre},
	"gal":     {3.78541, UnitLitre},

	// Mass -> kg
	"tonne":  {1000, UnitKilogram},
	"tonnes": {1000, UnitKilogram},
	"t":      {1000, UnitKilogram},
	"kg":     {1, UnitKilogram},
	"lb":     {0.453592, UnitKilogram},
	"lbs":    {0.453592, UnitKilogram},

	// Distance -> km
	"km":    {1, UnitKilometre},
	"m":     {0.001, UnitKilometre},
	"mile":  {1.60934, UnitKilometre},
	"miles": {1.60934, UnitKilometre},
	"nm":    {1.852, UnitKilometre},
}

// Normalize converts a quantity into its canonical unit for factor lookup.
//
// Unit matching is case-insensitive and ignores surrounding whitespace. When
// the unit is not in the conversion table the input is returned unchanged:
// unresolved units are a data-quality signal for the caller, never an error.
func Normalize(value float64, unit string) Quantity {
	key := strings.ToLower(strings.TrimSpace(unit))
	conv, ok := conversions[key]
	if !ok {
		return Quantity{Value: value, Unit: unit}
	}
	return Quantity{Value: value * conv.factor, Unit: conv.target}
}

// IsRecognizedUnit reports whether unit appears in the conversion table.
func IsRecognizedUnit(unit string) bool {
	_, ok := conversions[strings.ToLower(strings.TrimSpace(unit))]
	return ok
}
