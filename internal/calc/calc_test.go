package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wattprint/wattprint/internal/assumption"
	"github.com/wattprint/wattprint/internal/refdata"
)

func floatPtr(v float64) *float64 { return &v }

// TestCalculate_KnownAWSGPUWorkload walks the full formula for a measured
// V100 workload in a clean-grid region:
//
//	compute = 300W × 0.78 × 24h / 1000 = 5.616 kWh
//	total   = 5.616 × 1.135           ≈ 6.374 kWh
//	carbon  = 6.374 × 117 / 1000      ≈ 0.746 kg
//
// and every confidence bonus applies: 70 + 10 + 5 + 15 = 100.
func TestCalculate_KnownAWSGPUWorkload(t *testing.T) {
	got := Calculate(assumption.DefaultSet(), Workload{
		Provider:       "AWS",
		Region:         "us-west-2",
		InstanceType:   "p3.2xlarge",
		VCPUs:          8,
		RuntimeHours:   24,
		CPUUtilization: floatPtr(78),
	})

	assert.InDelta(t, 6.374, got.EnergyKWh, 0.0005)
	assert.InDelta(t, 0.746, got.CarbonKg, 0.0005)
	assert.Equal(t, 100, got.Confidence)
}

// TestCalculate_UnknownEverything validates the full default path: no
// provider, region, or instance type, defaulted utilization, and the base
// confidence with no bonuses. Garbage in still computes, never throws.
func TestCalculate_UnknownEverything(t *testing.T) {
	got := Calculate(assumption.DefaultSet(), Workload{
		VCPUs:        4,
		RuntimeHours: 1,
	})

	// 40W medium tier × 50% default utilization × 1h / 1000 × 1.58 PUE.
	assert.InDelta(t, 0.032, got.EnergyKWh, 0.0005)
	// × 379 gCO2/kWh (us-east-1 fallback) / 1000.
	assert.InDelta(t, 0.012, got.CarbonKg, 0.0005)
	assert.Equal(t, 70, got.Confidence)
}

// TestCalculate_Deterministic validates that repeated calls with the same
// inputs produce identical output: no hidden randomness or clock use.
func TestCalculate_Deterministic(t *testing.T) {
	set := assumption.DefaultSet()
	w := Workload{
		Provider:       "gcp",
		Region:         "europe-west1",
		InstanceType:   "n2-standard-8",
		VCPUs:          8,
		RuntimeHours:   13.7,
		CPUUtilization: floatPtr(61.5),
	}

	first := Calculate(set, w)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Calculate(set, w))
	}
}

// TestCalculate_MonotonicConfidence validates that supplying a measured
// utilization never lowers the confidence score, all else equal.
func TestCalculate_MonotonicConfidence(t *testing.T) {
	set := assumption.DefaultSet()
	base := Workload{Provider: "aws", Region: "us-west-2", InstanceType: "m5.large", VCPUs: 2, RuntimeHours: 10}

	withoutUtil := Calculate(set, base)

	measured := base
	measured.CPUUtilization = floatPtr(42)
	withUtil := Calculate(set, measured)

	assert.GreaterOrEqual(t, withUtil.Confidence, withoutUtil.Confidence)
	assert.Equal(t, withoutUtil.Confidence+confidenceUtilization, withUtil.Confidence)
}

// TestCalculate_FallbackSafety validates the never-fails contract over
// malformed and empty records.
func TestCalculate_FallbackSafety(t *testing.T) {
	set := assumption.DefaultSet()

	tests := []struct {
		name string
		w    Workload
	}{
		{"zero record", Workload{}},
		{"negative runtime", Workload{RuntimeHours: -5, VCPUs: 4}},
		{"negative utilization", Workload{RuntimeHours: 10, VCPUs: 4, CPUUtilization: floatPtr(-50)}},
		{"absurd utilization", Workload{RuntimeHours: 10, VCPUs: 4, CPUUtilization: floatPtr(900)}},
		{"nonsense strings", Workload{Provider: "###", Region: "!!", InstanceType: "???", VCPUs: -3, RuntimeHours: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(set, tt.w)
			assert.GreaterOrEqual(t, got.EnergyKWh, 0.0)
			assert.GreaterOrEqual(t, got.CarbonKg, 0.0)
			assert.GreaterOrEqual(t, got.Confidence, 0)
			assert.LessOrEqual(t, got.Confidence, 100)
		})
	}
}

// TestCalculate_PUEMonotonicEffect validates that raising the PUE
// assumption strictly raises total energy and carbon for a fixed workload.
func TestCalculate_PUEMonotonicEffect(t *testing.T) {
	w := Workload{
		Provider:       "aws",
		Region:         "us-west-2",
		InstanceType:   "p3.2xlarge",
		RuntimeHours:   24,
		CPUUtilization: floatPtr(78),
	}

	base := Calculate(assumption.DefaultSet(), w)

	raised := assumption.DefaultSet()
	raised[refdata.PUEAWSKey] = 2.0
	higher := Calculate(raised, w)

	assert.Greater(t, higher.EnergyKWh, base.EnergyKWh)
	assert.Greater(t, higher.CarbonKg, base.CarbonKg)
	// 5.616 × 2.0 = 11.232, × 117/1000 = 1.314.
	assert.InDelta(t, 11.232, higher.EnergyKWh, 0.0005)
	assert.InDelta(t, 1.314, higher.CarbonKg, 0.0005)
}

// TestCalculate_RoundingStability validates that outputs carry exactly
// three decimal places and are fixed points of their own rounding.
func TestCalculate_RoundingStability(t *testing.T) {
	got := Calculate(assumption.DefaultSet(), Workload{
		Provider:       "azure",
		Region:         "westeurope",
		InstanceType:   "standard_d4s_v3",
		VCPUs:          4,
		RuntimeHours:   7.77,
		CPUUtilization: floatPtr(33.3),
	})

	assert.InDelta(t, got.EnergyKWh, math.Round(got.EnergyKWh*1000)/1000, 1e-12)
	assert.InDelta(t, got.CarbonKg, math.Round(got.CarbonKg*1000)/1000, 1e-12)
}

// TestCalculate_RegionBonusRules validates the region confidence bonus:
// granted for known non-fallback regions only.
func TestCalculate_RegionBonusRules(t *testing.T) {
	set := assumption.DefaultSet()
	base := Workload{InstanceType: "m5.large", VCPUs: 2, RuntimeHours: 1}

	known := base
	known.Region = "us-west-2"
	assert.Equal(t, 85, Calculate(set, known).Confidence)

	fallbackRegion := base
	fallbackRegion.Region = refdata.DefaultIntensityRegion
	assert.Equal(t, 80, Calculate(set, fallbackRegion).Confidence,
		"the fallback region itself earns no region bonus")

	unknownRegion := base
	unknownRegion.Region = "atlantis-1"
	assert.Equal(t, 80, Calculate(set, unknownRegion).Confidence)
}

func TestResolvePUE_ProviderVariants(t *testing.T) {
	set := assumption.DefaultSet()

	tests := []struct {
		provider string
		want     float64
	}{
		{"aws", 1.135},
		{"Amazon Web Services", 1.135},
		{"gcp", 1.10},
		{"Google Cloud", 1.10},
		{"azure", 1.18},
		{"Microsoft Azure", 1.18},
		{"oracle", 1.58},
		{"", 1.58},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			assert.InDelta(t, tt.want, resolvePUE(set, tt.provider), 0.0001)
		})
	}
}

func TestResolveIntensity_SubstringMatch(t *testing.T) {
	set := assumption.DefaultSet()

	// An availability-zone suffix still resolves the parent region.
	v, bonus := resolveIntensity(set, "us-west-2a")
	assert.InDelta(t, 117, v, 0.0001)
	assert.True(t, bonus)

	v, bonus = resolveIntensity(set, "not-a-region")
	assert.InDelta(t, 379, v, 0.0001)
	assert.False(t, bonus)
}

func TestCreditRate(t *testing.T) {
	set := assumption.DefaultSet()

	rate, ok := CreditRate(set, "Snowflake Compute")
	require.True(t, ok)
	assert.InDelta(t, 3.00, rate, 0.0001)

	rate, ok = CreditRate(set, "Databricks Jobs")
	require.True(t, ok)
	assert.InDelta(t, 0.55, rate, 0.0001)

	_, ok = CreditRate(set, "AmazonEC2")
	assert.False(t, ok)
}
