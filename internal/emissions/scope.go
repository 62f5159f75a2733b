package emissions

import "strings"

// scopeByCategory maps activity categories to their default GHG scope.
// Categories absent from the map default to scope 3, since everything that
// is neither direct combustion nor purchased energy is value-chain.
var scopeByCategory = map[string]Scope{ //nolint:gochecknoglobals // Constant lookup table
	// Scope 1: on-site combustion and fugitive refrigerants.
	"diesel":      ScopeOne,
	"petrol":      ScopeOne,
	"fuel_oil":    ScopeOne,
	"lpg":         ScopeOne,
	"natural_gas": ScopeOne,
	"coal":        ScopeOne,

	// Scope 2: purchased energy.
	"electricity":      ScopeTwo,
	"district_heating": ScopeTwo,
	"steam":            ScopeTwo,
}

// ClassifyScope returns the default GHG scope for a category.
func ClassifyScope(category string) Scope {
	key := strings.ToLower(strings.TrimSpace(category))
	if strings.HasPrefix(key, "refrigerant") {
		return ScopeOne
	}
	if s, ok := scopeByCategory[key]; ok {
		return s
	}
	return ScopeThree
}
