package detect

import (
	"strings"

	"github.com/wattprint/wattprint/internal/refdata"
)

// providerRegionAliases maps provider-specific region spellings to canonical
// codes. AWS billing exports use location display names; Azure portals and
// exports use spaced display names.
var providerRegionAliases = map[string]map[string]string{
	ProviderAWS: {
		"us east (n. virginia)":     "us-east-1",
		"us east (ohio)":            "us-east-2",
		"us west (n. california)":   "us-west-1",
		"us west (oregon)":          "us-west-2",
		"canada (central)":          "ca-central-1",
		"eu (ireland)":              "eu-west-1",
		"europe (ireland)":          "eu-west-1",
		"eu (london)":               "eu-west-2",
		"europe (london)":           "eu-west-2",
		"eu (paris)":                "eu-west-3",
		"europe (paris)":            "eu-west-3",
		"eu (frankfurt)":            "eu-central-1",
		"europe (frankfurt)":        "eu-central-1",
		"eu (stockholm)":            "eu-north-1",
		"europe (stockholm)":        "eu-north-1",
		"asia pacific (tokyo)":      "ap-northeast-1",
		"asia pacific (singapore)":  "ap-southeast-1",
		"asia pacific (sydney)":     "ap-southeast-2",
		"asia pacific (mumbai)":     "ap-south-1",
		"south america (sao paulo)": "sa-east-1",
		"virginia":                  "us-east-1",
		"ohio":                      "us-east-2",
		"oregon":                    "us-west-2",
		"ireland":                   "eu-west-1",
		"frankfurt":                 "eu-central-1",
		"tokyo":                     "ap-northeast-1",
		"singapore":                 "ap-southeast-1",
		"sydney":                    "ap-southeast-2",
		"mumbai":                    "ap-south-1",
	},
	ProviderAzure: {
		"east us":      "eastus",
		"east us 2":    "eastus2",
		"west us 2":    "westus2",
		"west europe":  "westeurope",
		"north europe": "northeurope",
	},
	ProviderGCP: {
		"iowa":    "us-central1",
		"belgium": "europe-west1",
		"finland": "europe-north1",
		"taiwan":  "asia-east1",
	},
}

// compactRegionIndex maps separator-free spellings ("useast1") back to
// canonical codes, built from the grid intensity table.
var compactRegionIndex = func() map[string]string {
	idx := make(map[string]string, len(refdata.GridCarbonIntensity))
	for region := range refdata.GridCarbonIntensity {
		idx[strings.ReplaceAll(region, "-", "")] = region
	}
	return idx
}()

var separatorReplacer = strings.NewReplacer("_", "-", " ", "-")

var compactReplacer = strings.NewReplacer("-", "", "_", "", " ", "", ".", "")

// NormalizeRegion maps provider-specific region spellings and aliases to a
// canonical region code. Resolution order: exact canonical code, provider
// alias table, separator-normalized spelling, compact spelling. A string
// recognized by none of these passes through trimmed but otherwise
// unchanged; unrecognized regions are best-effort, not errors.
func (n *Normalizer) NormalizeRegion(raw, provider string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	lower := strings.ToLower(trimmed)
	if refdata.KnownRegion(lower) {
		return lower
	}

	if aliases, ok := providerRegionAliases[provider]; ok {
		if canonical, ok := aliases[lower]; ok {
			return canonical
		}
	}

	if separated := separatorReplacer.Replace(lower); refdata.KnownRegion(separated) {
		return separated
	}

	if canonical, ok := compactRegionIndex[compactReplacer.Replace(lower)]; ok {
		return canonical
	}

	return trimmed
}
