// Package refdata holds the static reference tables the metrics engine is
// built on: hardware power draw, datacenter PUE, grid carbon intensity, and
// cost rates for credit-billed services. Tables are loaded once at process
// start and never mutated; every lookup is a total function with a documented
// fallback for unknown keys.
package refdata

// Category classifies a reference constant and selects its validation range.
type Category string

const (
	// CategoryPower covers hardware power draw constants in watts.
	CategoryPower Category = "power"

	// CategoryPUE covers Power Usage Effectiveness multipliers per provider.
	CategoryPUE Category = "pue"

	// CategoryCarbonIntensity covers grid carbon intensity in gCO2 per kWh.
	CategoryCarbonIntensity Category = "carbon_intensity"

	// CategoryUtilization covers utilization percentages (0-100).
	CategoryUtilization Category = "utilization"

	// CategoryCost covers cost rates for consumption-billed services in USD.
	CategoryCost Category = "cost"
)

// Constant is a named reference value with its unit and provenance.
type Constant struct {
	Value    float64
	Unit     string
	Category Category
	Source   string
}

// Range is an inclusive validation range for override values.
type Range struct {
	Min float64
	Max float64
}

// validationRanges bounds user-supplied overrides per category. Values
// outside the range are rejected at write time, never silently clamped.
var validationRanges = map[Category]Range{
	CategoryPower:           {Min: 1, Max: 2000},
	CategoryPUE:             {Min: 1.0, Max: 3.0},
	CategoryCarbonIntensity: {Min: 0, Max: 2000},
	CategoryUtilization:     {Min: 0, Max: 100},
	CategoryCost:            {Min: 0, Max: 10000},
}

// ValidationRange returns the allowed override range for a category.
// Unknown categories get a permissive non-negative range.
func ValidationRange(cat Category) Range {
	if r, ok := validationRanges[cat]; ok {
		return r
	}
	return Range{Min: 0, Max: 1e12}
}
