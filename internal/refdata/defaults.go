package refdata

// DefaultUtilizationKey names the CPU utilization percentage assumed when a
// workload row carries no measured utilization.
const DefaultUtilizationKey = "default_cpu_utilization"

// sourceCCF labels constants taken from the Cloud Carbon Footprint
// methodology; sourceListPrice labels published vendor list prices.
const (
	sourceCCF       = "ccf-methodology-2024"
	sourceVendorTDP = "vendor-tdp-spec"
	sourceListPrice = "vendor-list-price"
)

// defaults is the full reference constant table. Immutable within a process;
// Defaults() hands out copies so callers can layer overrides on top.
var defaults = map[string]Constant{
	// GPU power draw (thermal design power per accelerator).
	GPUA100PowerKey: {Value: 400, Unit: "W", Category: CategoryPower, Source: sourceVendorTDP},
	GPUV100PowerKey: {Value: 300, Unit: "W", Category: CategoryPower, Source: sourceVendorTDP},
	GPUH100PowerKey: {Value: 700, Unit: "W", Category: CategoryPower, Source: sourceVendorTDP},
	GPUT4PowerKey:   {Value: 70, Unit: "W", Category: CategoryPower, Source: sourceVendorTDP},

	// CPU instance power tiers by vCPU band.
	CPUSmallPowerKey:  {Value: 20, Unit: "W", Category: CategoryPower, Source: sourceCCF},
	CPUMediumPowerKey: {Value: 40, Unit: "W", Category: CategoryPower, Source: sourceCCF},
	CPULargePowerKey:  {Value: 80, Unit: "W", Category: CategoryPower, Source: sourceCCF},
	CPUXLargePowerKey: {Value: 160, Unit: "W", Category: CategoryPower, Source: sourceCCF},

	// Power Usage Effectiveness per provider.
	PUEAWSKey:     {Value: 1.135, Unit: "ratio", Category: CategoryPUE, Source: sourceCCF},
	PUEGCPKey:     {Value: 1.10, Unit: "ratio", Category: CategoryPUE, Source: sourceCCF},
	PUEAzureKey:   {Value: 1.18, Unit: "ratio", Category: CategoryPUE, Source: sourceCCF},
	PUEDefaultKey: {Value: 1.58, Unit: "ratio", Category: CategoryPUE, Source: sourceCCF},

	// Utilization assumed when no measurement is present.
	DefaultUtilizationKey: {Value: 50, Unit: "%", Category: CategoryUtilization, Source: sourceCCF},

	// Cost rates for credit-billed services.
	SnowflakeCreditRateKey: {Value: defaultSnowflakeCreditUSD, Unit: "USD/credit", Category: CategoryCost, Source: sourceListPrice},
	DatabricksDBURateKey:   {Value: defaultDatabricksDBUUSD, Unit: "USD/DBU", Category: CategoryCost, Source: sourceListPrice},
}

func init() {
	for region, intensity := range GridCarbonIntensity {
		defaults[IntensityKey(region)] = Constant{
			Value:    intensity,
			Unit:     "gCO2/kWh",
			Category: CategoryCarbonIntensity,
			Source:   sourceCCF,
		}
	}
}

// Defaults returns a fresh copy of the full reference constant table.
func Defaults() map[string]Constant {
	out := make(map[string]Constant, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	return out
}

// Lookup returns the default constant for a name.
func Lookup(name string) (Constant, bool) {
	c, ok := defaults[name]
	return c, ok
}

// ConstantCount reports the number of reference constants loaded.
func ConstantCount() int {
	return len(defaults)
}
