// Package calc is the formula core: given a normalized workload record and a
// resolved assumption set, it computes energy, carbon, and a data-quality
// confidence score via deterministic arithmetic with fixed precedence rules.
//
// Every input has a defined default path, so Calculate is a total function:
// garbage in still produces a best-effort, low-confidence estimate rather
// than aborting a batch.
package calc

import (
	"math"
	"sort"
	"strings"

	"github.com/wattprint/wattprint/internal/assumption"
	"github.com/wattprint/wattprint/internal/refdata"
)

// Workload is the canonical record shape the calculator consumes. Optional
// fields default when absent: a nil CPUUtilization means the assumption-set
// default applies.
type Workload struct {
	Provider     string
	Region       string
	InstanceType string
	VCPUs        float64
	RuntimeHours float64

	// CPUUtilization is the measured average CPU utilization in percent,
	// or nil when the upload carried no measurement.
	CPUUtilization *float64
}

// Metrics is the calculation output. Energy and carbon are rounded to three
// decimal places at the point of return; the confidence score is an integer
// in [0, 100].
type Metrics struct {
	EnergyKWh  float64 `json:"energy_kwh"`
	CarbonKg   float64 `json:"carbon_kg"`
	Confidence int     `json:"confidence"`
}

// Confidence scoring: measured inputs score higher than assumed ones.
const (
	confidenceBase        = 70
	confidenceInstance    = 10 // instance type identified, not the unknown sentinel
	confidenceRegion      = 5  // region found in the grid table and not the fallback region
	confidenceUtilization = 15 // utilization measured by the customer, not assumed
)

// sortedRegions holds grid-table region codes in deterministic order for
// substring matching (map iteration order would make results run-dependent).
var sortedRegions = func() []string {
	regions := make([]string, 0, len(refdata.GridCarbonIntensity))
	for region := range refdata.GridCarbonIntensity {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	return regions
}()

// Calculate computes energy, carbon, and confidence for one workload against
// one assumption snapshot. The step order is fixed: resolve PUE, resolve
// grid intensity, resolve base power, resolve utilization, then
//
//	compute_energy_kwh = base_power_w * (utilization/100) * runtime_hours / 1000
//	total_energy_kwh   = compute_energy_kwh * pue
//	carbon_kg          = total_energy_kwh * intensity_g_per_kwh / 1000
//
// Rounding happens only at return so intermediate steps do not compound
// rounding error.
func Calculate(set assumption.Set, w Workload) Metrics {
	pue := resolvePUE(set, w.Provider)
	intensity, regionBonus := resolveIntensity(set, w.Region)
	powerW := resolvePower(set, w.InstanceType, w.VCPUs)
	utilization, measured := resolveUtilization(set, w.CPUUtilization)

	hours := w.RuntimeHours
	if hours < 0 {
		hours = 0
	}

	computeEnergyKWh := powerW * (utilization / 100) * hours / 1000
	totalEnergyKWh := computeEnergyKWh * pue
	carbonKg := totalEnergyKWh * intensity / 1000

	confidence := confidenceBase
	if !unknownInstanceType(w.InstanceType) {
		confidence += confidenceInstance
	}
	if regionBonus {
		confidence += confidenceRegion
	}
	if measured {
		confidence += confidenceUtilization
	}
	if confidence > 100 {
		confidence = 100
	}
	if confidence < 0 {
		confidence = 0
	}

	return Metrics{
		EnergyKWh:  round3(totalEnergyKWh),
		CarbonKg:   round3(carbonKg),
		Confidence: confidence,
	}
}

// resolvePUE matches the provider field against known provider name
// variants ("aws" and "amazon" both select the AWS PUE). Unmatched
// providers get the default-datacenter PUE.
func resolvePUE(set assumption.Set, provider string) float64 {
	fallback := set.ValueOr(refdata.PUEDefaultKey, 1.58)

	lower := strings.ToLower(strings.TrimSpace(provider))
	if lower == "" {
		return fallback
	}
	for _, rule := range refdata.PUERules {
		if strings.Contains(lower, rule.Match) {
			return set.ValueOr(rule.Key, fallback)
		}
	}
	return fallback
}

// resolveIntensity matches the region against the grid table, first exactly
// and then by substring. It returns the grid intensity in gCO2/kWh and
// whether the region earns the confidence bonus: found in the table and not
// the documented fallback region itself.
func resolveIntensity(set assumption.Set, region string) (float64, bool) {
	fallbackKey := refdata.IntensityKey(refdata.DefaultIntensityRegion)
	fallback := set.ValueOr(fallbackKey, refdata.GridCarbonIntensity[refdata.DefaultIntensityRegion])

	lower := strings.ToLower(strings.TrimSpace(region))
	if lower == "" {
		return fallback, false
	}

	canonical := ""
	if refdata.KnownRegion(lower) {
		canonical = lower
	} else {
		for _, r := range sortedRegions {
			if strings.Contains(lower, r) {
				canonical = r
				break
			}
		}
	}
	if canonical == "" {
		return fallback, false
	}

	value := set.ValueOr(refdata.IntensityKey(canonical), fallback)
	return value, canonical != refdata.DefaultIntensityRegion
}

// resolvePower resolves the base power draw in watts: GPU wattage when the
// instance type matches a GPU model name or accelerated family prefix,
// otherwise a CPU tier bucketed by vCPU count.
func resolvePower(set assumption.Set, instanceType string, vcpus float64) float64 {
	lower := strings.ToLower(strings.TrimSpace(instanceType))
	if lower != "" {
		for _, rule := range refdata.GPUPowerRules {
			matched := false
			if rule.Prefix {
				matched = strings.HasPrefix(lower, rule.Match)
			} else {
				matched = strings.Contains(lower, rule.Match)
			}
			if matched {
				return set.ValueOr(rule.Key, defaultConstant(rule.Key))
			}
		}
	}

	tierKey := refdata.CPUTierPowerKey(vcpus)
	return set.ValueOr(tierKey, defaultConstant(tierKey))
}

// resolveUtilization prefers the customer's measured utilization over the
// assumption-set default and reports which was used. Measured values are
// clamped to the meaningful percentage range.
func resolveUtilization(set assumption.Set, measured *float64) (float64, bool) {
	if measured != nil {
		return clamp(*measured, 0, 100), true
	}
	return set.ValueOr(refdata.DefaultUtilizationKey, 50), false
}

// CreditRate returns the per-unit cost rate for a credit-billed service
// named in the row's service field, resolved through the assumption set so
// team-negotiated rates apply. Returns false for services without a
// credit-denominated rate.
func CreditRate(set assumption.Set, service string) (float64, bool) {
	lower := strings.ToLower(service)
	switch {
	case strings.Contains(lower, "snowflake"):
		return set.ValueOr(refdata.SnowflakeCreditRateKey, defaultConstant(refdata.SnowflakeCreditRateKey)), true
	case strings.Contains(lower, "databricks"), strings.Contains(lower, "dbu"):
		return set.ValueOr(refdata.DatabricksDBURateKey, defaultConstant(refdata.DatabricksDBURateKey)), true
	default:
		return 0, false
	}
}

// unknownInstanceType reports whether the instance type is the unknown
// sentinel: empty or a literal "unknown".
func unknownInstanceType(instanceType string) bool {
	s := strings.ToLower(strings.TrimSpace(instanceType))
	return s == "" || s == "unknown"
}

func defaultConstant(name string) float64 {
	c, ok := refdata.Lookup(name)
	if !ok {
		return 0
	}
	return c.Value
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// round3 rounds to three decimal places, applied only at result boundaries.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
