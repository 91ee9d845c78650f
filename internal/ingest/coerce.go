package ingest

import (
	"strconv"
	"strings"

	"github.com/wattprint/wattprint/internal/schema"
)

// coercedRow is a typed view of one mapped CSV row. String CSV values are
// converted to numbers with default-on-parse-failure semantics: a value
// that does not parse contributes 0 (or nil for optional fields), never an
// error.
type coercedRow struct {
	WorkloadID   string
	Name         string
	Provider     string
	Region       string
	InstanceType string
	GPUModel     string
	Service      string

	VCPUs        float64
	MemoryGB     float64
	RuntimeHours float64
	CreditsUsed  float64

	Cost        float64
	CostPresent bool

	CPUUtilization *float64
	MemUtilization *float64
}

// coerceRow converts the target-field -> raw-value mapping for one row into
// typed fields.
func coerceRow(fields map[string]string) coercedRow {
	cost, costPresent := parseOptionalNumber(fields[schema.FieldCost])

	return coercedRow{
		WorkloadID:   strings.TrimSpace(fields[schema.FieldWorkloadID]),
		Name:         strings.TrimSpace(fields[schema.FieldName]),
		Provider:     strings.TrimSpace(fields[schema.FieldProvider]),
		Region:       strings.TrimSpace(fields[schema.FieldRegion]),
		InstanceType: strings.TrimSpace(fields[schema.FieldInstanceType]),
		GPUModel:     strings.TrimSpace(fields[schema.FieldGPUModel]),
		Service:      strings.TrimSpace(fields[schema.FieldService]),

		VCPUs:        parseNumber(fields[schema.FieldVCPUs]),
		MemoryGB:     parseNumber(fields[schema.FieldMemoryGB]),
		RuntimeHours: parseNumber(fields[schema.FieldRuntimeHours]),
		CreditsUsed:  parseNumber(fields[schema.FieldCreditsUsed]),

		Cost:        cost,
		CostPresent: costPresent,

		CPUUtilization: optionalPtr(fields[schema.FieldCPUUtilization]),
		MemUtilization: optionalPtr(fields[schema.FieldMemUtilization]),
	}
}

// parseNumber parses a CSV numeric value, tolerating currency symbols,
// thousands separators, and trailing unit suffixes ("16 GiB" -> 16).
// Unparseable values coerce to 0.
func parseNumber(s string) float64 {
	v, _ := parseOptionalNumber(s)
	return v
}

// parseOptionalNumber is parseNumber plus a flag reporting whether the
// source value was actually present and numeric.
func parseOptionalNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")

	// Take the leading token so unit-suffixed values like "16 GiB" parse.
	if fields := strings.Fields(s); len(fields) > 0 {
		s = fields[0]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// optionalPtr parses an optional numeric field, returning nil when the
// value is absent or unparseable so downstream defaulting applies.
func optionalPtr(s string) *float64 {
	v, ok := parseOptionalNumber(s)
	if !ok {
		return nil
	}
	return &v
}
