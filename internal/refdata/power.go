package refdata

// Constant names for hardware power draw. These are the keys teams may
// override and the keys the calculator resolves at run time.
const (
	GPUA100PowerKey = "gpu_a100_power_w"
	GPUV100PowerKey = "gpu_v100_power_w"
	GPUH100PowerKey = "gpu_h100_power_w"
	GPUT4PowerKey   = "gpu_t4_power_w"

	CPUSmallPowerKey  = "cpu_small_power_w"
	CPUMediumPowerKey = "cpu_medium_power_w"
	CPULargePowerKey  = "cpu_large_power_w"
	CPUXLargePowerKey = "cpu_xlarge_power_w"
)

// GPUPowerRule matches an instance type string to a GPU power constant.
// Model-name rules match anywhere in the string; family rules match only as
// a prefix ("t4" must not fire on "g4dn", and "nc" alone would fire on
// "instance", so family prefixes are kept exact).
type GPUPowerRule struct {
	// Match is the lowercase pattern to look for.
	Match string

	// Prefix restricts matching to the start of the instance type.
	Prefix bool

	// Key is the power constant resolved when the rule fires.
	Key string

	// Model is the GPU model name for display/reporting.
	Model string
}

// GPUPowerRules is the ordered rule list for resolving GPU wattage from an
// instance type. First match wins; model names are checked before family
// prefixes so an explicit "a100" in the string beats family inference.
var GPUPowerRules = []GPUPowerRule{
	// Explicit GPU model names anywhere in the instance type.
	{Match: "h100", Key: GPUH100PowerKey, Model: "H100"},
	{Match: "a100", Key: GPUA100PowerKey, Model: "A100"},
	{Match: "v100", Key: GPUV100PowerKey, Model: "V100"},
	{Match: "t4", Key: GPUT4PowerKey, Model: "T4"},

	// AWS accelerated instance families.
	{Match: "p5", Prefix: true, Key: GPUH100PowerKey, Model: "H100"},
	{Match: "p4", Prefix: true, Key: GPUA100PowerKey, Model: "A100"},
	{Match: "p3", Prefix: true, Key: GPUV100PowerKey, Model: "V100"},
	{Match: "g4dn", Prefix: true, Key: GPUT4PowerKey, Model: "T4"},

	// GCP accelerator-optimized families (a2 = A100, a3 = H100).
	{Match: "a3-", Prefix: true, Key: GPUH100PowerKey, Model: "H100"},
	{Match: "a2-", Prefix: true, Key: GPUA100PowerKey, Model: "A100"},

	// Azure N-series.
	{Match: "standard_nd", Prefix: true, Key: GPUA100PowerKey, Model: "A100"},
	{Match: "standard_nc", Prefix: true, Key: GPUV100PowerKey, Model: "V100"},
}

// CPU power tiers bucket non-GPU instances by vCPU count.
const (
	cpuSmallMaxVCPUs  = 2
	cpuMediumMaxVCPUs = 4
	cpuLargeMaxVCPUs  = 8
)

// CPUTierPowerKey returns the power constant name for a CPU-only instance
// with the given vCPU count. Every count maps to a tier; zero and negative
// counts land in the smallest tier.
func CPUTierPowerKey(vcpus float64) string {
	switch {
	case vcpus <= cpuSmallMaxVCPUs:
		return CPUSmallPowerKey
	case vcpus <= cpuMediumMaxVCPUs:
		return CPUMediumPowerKey
	case vcpus <= cpuLargeMaxVCPUs:
		return CPULargePowerKey
	default:
		return CPUXLargePowerKey
	}
}
