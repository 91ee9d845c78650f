// Package detect infers the cloud provider and canonical region code for a
// workload row from whatever signals the upload carries: an explicit
// provider field, instance-type naming conventions, or GPU model strings.
// Many real billing exports omit or corrupt the provider column; recovering
// it decides which PUE and carbon-intensity constants apply downstream.
package detect

import "strings"

// Method is the tier of evidence used to infer the provider.
type Method string

const (
	// MethodExplicit means the row carried a recognized provider field.
	MethodExplicit Method = "explicit"

	// MethodInstancePattern means the instance-type naming convention
	// identified the provider.
	MethodInstancePattern Method = "instance_pattern"

	// MethodGPUPattern means the GPU model string identified the provider.
	MethodGPUPattern Method = "gpu_pattern"

	// MethodFallback means no signal matched; provider is unknown.
	MethodFallback Method = "fallback"
)

// Canonical provider identifiers.
const (
	ProviderAWS     = "aws"
	ProviderGCP     = "gcp"
	ProviderAzure   = "azure"
	ProviderUnknown = "unknown"
)

// Hints are the per-row signals available for provider detection. All
// fields are optional; empty hints yield the fallback result.
type Hints struct {
	Provider     string
	Region       string
	InstanceType string
	GPUModel     string
}

// Result describes the detected provider and region together with how they
// were inferred. The method and confidence feed the downstream
// data-quality score.
type Result struct {
	Provider   string  `json:"provider"`
	Region     string  `json:"region"`
	Method     Method  `json:"method"`
	Confidence float64 `json:"confidence"`
}

// providerNameRule recognizes a provider from a fragment of an explicit
// provider field.
type providerNameRule struct {
	match    string
	provider string
}

// providerNameRules is consulted in order against the lowercased provider
// field; a hit is authoritative (confidence 1.0).
var providerNameRules = []providerNameRule{
	{"aws", ProviderAWS},
	{"amazon", ProviderAWS},
	{"gcp", ProviderGCP},
	{"google", ProviderGCP},
	{"azure", ProviderAzure},
	{"microsoft", ProviderAzure},
}

// instanceFamilyRule recognizes a provider from an instance-type prefix.
type instanceFamilyRule struct {
	prefix   string
	provider string
}

// instanceFamilyRules covers the per-provider instance naming conventions.
// Azure's "standard_" namespace is checked first since it is unambiguous;
// GCP families end in a hyphen, AWS families in a dot.
var instanceFamilyRules = []instanceFamilyRule{
	{"standard_", ProviderAzure},

	{"n1-", ProviderGCP},
	{"n2-", ProviderGCP},
	{"n2d-", ProviderGCP},
	{"e2-", ProviderGCP},
	{"c2-", ProviderGCP},
	{"c3-", ProviderGCP},
	{"a2-", ProviderGCP},
	{"a3-", ProviderGCP},
	{"t2d-", ProviderGCP},
	{"m1-", ProviderGCP},
	{"m2-", ProviderGCP},

	{"t2.", ProviderAWS},
	{"t3.", ProviderAWS},
	{"t3a.", ProviderAWS},
	{"t4g.", ProviderAWS},
	{"m4.", ProviderAWS},
	{"m5.", ProviderAWS},
	{"m6i.", ProviderAWS},
	{"m7i.", ProviderAWS},
	{"c4.", ProviderAWS},
	{"c5.", ProviderAWS},
	{"c6i.", ProviderAWS},
	{"c7i.", ProviderAWS},
	{"r4.", ProviderAWS},
	{"r5.", ProviderAWS},
	{"r6i.", ProviderAWS},
	{"i3.", ProviderAWS},
	{"d2.", ProviderAWS},
	{"x1.", ProviderAWS},
	{"p2.", ProviderAWS},
	{"p3.", ProviderAWS},
	{"p4d.", ProviderAWS},
	{"p5.", ProviderAWS},
	{"g4dn.", ProviderAWS},
	{"g5.", ProviderAWS},
}

// instancePatternConfidence applies to any instance-family hit: the naming
// convention is reliable but not verified against the provider's catalog.
const instancePatternConfidence = 0.85

// gpuModelRule recognizes a provider from a GPU model string.
type gpuModelRule struct {
	match      string
	provider   string
	confidence float64
}

// gpuModelRules: GCP's accelerator API uses the "nvidia-tesla-" naming, so
// that form is a strong GCP signal. A bare GPU model name carries no real
// provider information; AWS is assumed at low confidence as the most common
// source of GPU workload exports.
var gpuModelRules = []gpuModelRule{
	{"nvidia-tesla-", ProviderGCP, 0.75},
	{"nvidia-", ProviderGCP, 0.7},
	{"a100", ProviderAWS, 0.5},
	{"v100", ProviderAWS, 0.5},
	{"h100", ProviderAWS, 0.5},
	{"t4", ProviderAWS, 0.5},
	{"k80", ProviderAWS, 0.5},
}

// Normalizer infers providers and canonicalizes region codes.
type Normalizer struct{}

// NewNormalizer creates a provider/region Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Detect infers the provider from the hints using the fixed evidence
// precedence (explicit > instance_pattern > gpu_pattern > fallback) and
// normalizes the region for the detected provider.
func (n *Normalizer) Detect(hints Hints) Result {
	res := n.DetectProvider(hints)
	res.Region = n.NormalizeRegion(hints.Region, res.Provider)
	return res
}

// DetectProvider runs the ordered provider-detection tiers over the hints.
// It never fails: when no signal matches, the result is provider "unknown"
// with method "fallback" and confidence 0.
func (n *Normalizer) DetectProvider(hints Hints) Result {
	if provider := strings.ToLower(strings.TrimSpace(hints.Provider)); provider != "" {
		for _, rule := range providerNameRules {
			if strings.Contains(provider, rule.match) {
				return Result{Provider: rule.provider, Method: MethodExplicit, Confidence: 1.0}
			}
		}
	}

	if instanceType := strings.ToLower(strings.TrimSpace(hints.InstanceType)); instanceType != "" {
		for _, rule := range instanceFamilyRules {
			if strings.HasPrefix(instanceType, rule.prefix) {
				return Result{Provider: rule.provider, Method: MethodInstancePattern, Confidence: instancePatternConfidence}
			}
		}
	}

	if gpuModel := strings.ToLower(strings.TrimSpace(hints.GPUModel)); gpuModel != "" {
		for _, rule := range gpuModelRules {
			if strings.Contains(gpuModel, rule.match) {
				return Result{Provider: rule.provider, Method: MethodGPUPattern, Confidence: rule.confidence}
			}
		}
	}

	return Result{Provider: ProviderUnknown, Method: MethodFallback, Confidence: 0}
}
