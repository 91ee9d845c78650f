package refdata

import "strings"

// GridCarbonIntensity maps canonical cloud region codes to grid carbon
// intensity in gCO2 per kWh.
//
// Source: Cloud Carbon Footprint methodology, 2024 grid data.
// Reference: https://www.cloudcarbonfootprint.org/docs/methodology
var GridCarbonIntensity = map[string]float64{
	// AWS
	"us-east-1":      379, // Virginia (SERC)
	"us-east-2":      411, // Ohio (RFC)
	"us-west-1":      210, // N. California (WECC)
	"us-west-2":      117, // Oregon (hydro-heavy WECC)
	"ca-central-1":   120, // Canada (Montreal, hydro)
	"eu-west-1":      316, // Ireland
	"eu-west-2":      228, // London
	"eu-west-3":      52,  // Paris (nuclear)
	"eu-central-1":   338, // Frankfurt
	"eu-north-1":     13,  // Stockholm (hydro)
	"ap-northeast-1": 471, // Tokyo
	"ap-southeast-1": 408, // Singapore
	"ap-southeast-2": 656, // Sydney
	"ap-south-1":     708, // Mumbai (coal-heavy)
	"sa-east-1":      61,  // São Paulo (hydro)

	// GCP
	"us-central1":     394, // Iowa
	"us-west1":        78,  // Oregon
	"europe-west1":    110, // Belgium
	"europe-north1":   130, // Finland
	"asia-east1":      509, // Taiwan
	"asia-northeast1": 464, // Tokyo

	// Azure
	"eastus":      379, // Virginia
	"eastus2":     379, // Virginia
	"westus2":     117, // Washington
	"westeurope":  390, // Netherlands
	"northeurope": 316, // Ireland
}

// DefaultIntensityRegion is the documented fallback when a region has no
// table entry. Unknown regions are treated as us-east-1, not as an error.
const DefaultIntensityRegion = "us-east-1"

// IntensityKey returns the assumption-set constant name for a region's grid
// carbon intensity, e.g. "us-east-1" -> "carbon_intensity_us_east_1".
func IntensityKey(region string) string {
	return "carbon_intensity_" + strings.ReplaceAll(region, "-", "_")
}

// KnownRegion reports whether a canonical region code has a grid intensity
// table entry.
func KnownRegion(region string) bool {
	_, ok := GridCarbonIntensity[region]
	return ok
}
