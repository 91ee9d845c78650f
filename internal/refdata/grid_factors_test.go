package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGridCarbonIntensity_AllWithinValidRange validates that every grid
// intensity falls in the physically reasonable range of 0 to 2000 gCO2/kWh.
// Even the most coal-heavy grids stay well below 1000 gCO2/kWh.
func TestGridCarbonIntensity_AllWithinValidRange(t *testing.T) {
	for region, intensity := range GridCarbonIntensity {
		t.Run(region, func(t *testing.T) {
			assert.Greater(t, intensity, 0.0,
				"intensity for %s should be positive (got %f)", region, intensity)
			assert.Less(t, intensity, 2000.0,
				"intensity for %s should be below 2000 gCO2/kWh (got %f)", region, intensity)
		})
	}
}

// TestGridCarbonIntensity_FallbackRegionPresent validates that the
// documented fallback region has a table entry, since every unknown-region
// lookup resolves to it.
func TestGridCarbonIntensity_FallbackRegionPresent(t *testing.T) {
	assert.True(t, KnownRegion(DefaultIntensityRegion),
		"fallback region %s must have a grid intensity entry", DefaultIntensityRegion)
}

// TestGridCarbonIntensity_RegionalVariation validates that the data
// reflects real-world grid differences and hasn't been flattened.
func TestGridCarbonIntensity_RegionalVariation(t *testing.T) {
	// Stockholm (hydro) must be far cleaner than Mumbai (coal).
	sweden := GridCarbonIntensity["eu-north-1"]
	india := GridCarbonIntensity["ap-south-1"]
	assert.Less(t, sweden, 50.0, "eu-north-1 should be a very low carbon grid")
	assert.Greater(t, india, 500.0, "ap-south-1 should be a high carbon grid")
	assert.Greater(t, india/sweden, 10.0,
		"Mumbai should be at least 10x more carbon-intensive than Stockholm")
}

// TestGridCarbonIntensity_SpecAnchors pins the values the rest of the
// pipeline's numeric fixtures depend on.
func TestGridCarbonIntensity_SpecAnchors(t *testing.T) {
	assert.InDelta(t, 117.0, GridCarbonIntensity["us-west-2"], 0.0001)
	assert.InDelta(t, 379.0, GridCarbonIntensity["us-east-1"], 0.0001)
}

func TestIntensityKey(t *testing.T) {
	tests := []struct {
		region string
		want   string
	}{
		{"us-east-1", "carbon_intensity_us_east_1"},
		{"us-central1", "carbon_intensity_us_central1"},
		{"eastus", "carbon_intensity_eastus"},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			assert.Equal(t, tt.want, IntensityKey(tt.region))
		})
	}
}

func TestKnownRegion_UnknownStrings(t *testing.T) {
	for _, region := range []string{"", "mars-central-9", "US-EAST-1"} {
		assert.False(t, KnownRegion(region), "KnownRegion(%q) should be false", region)
	}
}
