package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_AWSCUR(t *testing.T) {
	d := NewDetector()
	headers := []string{
		"identity/LineItemId",
		"lineItem/UsageAmount",
		"lineItem/UnblendedCost",
		"product/instanceType",
		"product/region",
	}

	got := d.Detect(headers, nil)
	assert.Equal(t, SourceAWSCUR, got.SourceType)

	// Exact-schema tier: matched columns at full confidence, unknown CUR
	// columns dropped rather than guessed.
	require.Len(t, got.Mappings, 4)
	for _, m := range got.Mappings {
		assert.InDelta(t, 1.0, m.Confidence, 0.0001)
	}
	_, found := got.MappingFor("identity/LineItemId")
	assert.False(t, found, "unknown CUR columns should be dropped")

	m, found := got.MappingFor("product/instanceType")
	require.True(t, found)
	assert.Equal(t, FieldInstanceType, m.Target)
}

func TestDetect_CanonicalSelfFormat(t *testing.T) {
	d := NewDetector()
	headers := []string{"workload_id", "Provider", "region", "instance_type", "vcpus", "runtime_hours", "cost"}

	got := d.Detect(headers, nil)
	assert.Equal(t, SourceCanonical, got.SourceType)
	require.Len(t, got.Mappings, len(headers))

	// Identifier fields at 1.0; derived/aggregate fields at 0.95.
	m, _ := got.MappingFor("Provider")
	assert.Equal(t, FieldProvider, m.Target)
	assert.InDelta(t, 1.0, m.Confidence, 0.0001)

	m, _ = got.MappingFor("cost")
	assert.InDelta(t, 0.95, m.Confidence, 0.0001)
}

// TestDetect_CanonicalWithExtraColumns validates that a canonical core plus
// stray columns stays canonical, with the strays routed through the keyword
// fallback instead of being dropped.
func TestDetect_CanonicalWithExtraColumns(t *testing.T) {
	d := NewDetector()
	headers := []string{"provider", "region", "runtime_hours", "Monthly Price"}

	got := d.Detect(headers, nil)
	assert.Equal(t, SourceCanonical, got.SourceType)

	m, found := got.MappingFor("Monthly Price")
	require.True(t, found)
	assert.Equal(t, FieldCost, m.Target)
	assert.InDelta(t, 0.9, m.Confidence, 0.0001)
}

func TestDetect_GenericHeuristics(t *testing.T) {
	d := NewDetector()
	headers := []string{"Service Name", "AWS Region", "Instance", "Total Cost ($)", "Usage Hours", "Avg CPU Utilization (%)"}

	got := d.Detect(headers, nil)
	assert.Equal(t, SourceGeneric, got.SourceType)

	tests := []struct {
		source     string
		target     string
		confidence float64
	}{
		{"Service Name", FieldService, 0.85},
		{"AWS Region", FieldRegion, 0.95},
		{"Instance", FieldInstanceType, 0.9},
		{"Total Cost ($)", FieldCost, 0.9},
		{"Usage Hours", FieldRuntimeHours, 0.85},
		{"Avg CPU Utilization (%)", FieldCPUUtilization, 0.85},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			m, found := got.MappingFor(tt.source)
			require.True(t, found)
			assert.Equal(t, tt.target, m.Target)
			assert.InDelta(t, tt.confidence, m.Confidence, 0.0001)
		})
	}
}

// TestDetect_IdentityFallback validates the never-drop guarantee: headers
// matching no keyword rule map to a slugified version of themselves at 0.5.
func TestDetect_IdentityFallback(t *testing.T) {
	d := NewDetector()
	headers := []string{"Foo Bar", "Whatever123"}

	got := d.Detect(headers, nil)
	assert.Equal(t, SourceGeneric, got.SourceType)
	require.Len(t, got.Mappings, 2)

	m, found := got.MappingFor("Foo Bar")
	require.True(t, found)
	assert.Equal(t, "foo_bar", m.Target)
	assert.InDelta(t, 0.5, m.Confidence, 0.0001)

	m, found = got.MappingFor("Whatever123")
	require.True(t, found)
	assert.Equal(t, "whatever123", m.Target)
	assert.InDelta(t, 0.5, m.Confidence, 0.0001)
}

// TestDetect_NumericSanityGate validates that a keyword hit against a
// numeric canonical field is discarded when the column's sample values are
// all non-numeric.
func TestDetect_NumericSanityGate(t *testing.T) {
	d := NewDetector()
	headers := []string{"CPU Type"}
	samples := [][]string{{"intel xeon"}, {"amd epyc"}}

	got := d.Detect(headers, samples)
	m, found := got.MappingFor("CPU Type")
	require.True(t, found)
	assert.Equal(t, "cpu_type", m.Target, "non-numeric CPU column should fall to identity mapping")
	assert.InDelta(t, 0.5, m.Confidence, 0.0001)

	// The same header with numeric samples keeps the keyword mapping.
	got = d.Detect(headers, [][]string{{"8"}, {"16"}})
	m, _ = got.MappingFor("CPU Type")
	assert.Equal(t, FieldVCPUs, m.Target)
}

func TestAverageConfidence(t *testing.T) {
	det := Detection{Mappings: []ColumnMapping{
		{Confidence: 1.0},
		{Confidence: 0.5},
	}}
	assert.InDelta(t, 0.75, det.AverageConfidence(), 0.0001)

	assert.Zero(t, Detection{}.AverageConfidence())
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Foo Bar", "foo_bar"},
		{"Whatever123", "whatever123"},
		{"Total Cost ($)", "total_cost"},
		{"__weird--header__", "weird_header"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestPadRow(t *testing.T) {
	assert.Equal(t, []string{"a", "b", ""}, PadRow([]string{"a", "b"}, 3))
	assert.Equal(t, []string{"a", "b"}, PadRow([]string{"a", "b", "c"}, 2))
	assert.Equal(t, []string{"a"}, PadRow([]string{"a"}, 1))
}
