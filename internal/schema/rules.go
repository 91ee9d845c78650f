package schema

// awsCURColumns maps AWS Cost and Usage Report headers to canonical fields.
// CUR schemas are verified exports, so every matched column carries
// confidence 1.0; CUR headers not in this table are dropped from the mapping
// rather than guessed at.
var awsCURColumns = map[string]string{
	"lineItem/ResourceId":    FieldWorkloadID,
	"lineItem/UsageAmount":   FieldRuntimeHours,
	"lineItem/UnblendedCost": FieldCost,
	"product/ProductName":    FieldService,
	"product/instanceType":   FieldInstanceType,
	"product/region":         FieldRegion,
	"product/vcpu":           FieldVCPUs,
	"product/memory":         FieldMemoryGB,
	"product/gpu":            FieldGPUModel,
}

// curNamespacePrefixes are the column namespaces characteristic of a CUR
// export. Two or more namespaced headers identify the format.
var curNamespacePrefixes = []string{"lineItem/", "product/", "bill/", "pricing/"}

// canonicalConfidence distinguishes direct identifier fields (1.0) from
// derived or aggregate fields (0.95) in the tool's own export vocabulary.
var canonicalConfidence = map[string]float64{
	FieldWorkloadID:     1.0,
	FieldName:           1.0,
	FieldProvider:       1.0,
	FieldRegion:         1.0,
	FieldInstanceType:   1.0,
	FieldGPUModel:       1.0,
	FieldVCPUs:          1.0,
	FieldMemoryGB:       1.0,
	FieldRuntimeHours:   1.0,
	FieldCPUUtilization: 1.0,
	FieldMemUtilization: 1.0,
	FieldService:        1.0,
	FieldCreditsUsed:    1.0,
	FieldCost:           0.95,
	FieldTotalEnergy:    0.95,
	FieldTotalCarbon:    0.95,
}

// keywordRule matches a header substring to a canonical field at a fixed
// confidence.
type keywordRule struct {
	keyword    string
	target     string
	confidence float64
}

// keywordRules is the ordered generic-fallback rule list. First match wins
// per header, so more specific keywords come before their substrings
// ("utilization" before "cpu", "vcpu" before "cpu").
var keywordRules = []keywordRule{
	{"utilization", FieldCPUUtilization, 0.85},
	{"util", FieldCPUUtilization, 0.85},
	{"provider", FieldProvider, 0.95},
	{"cloud", FieldProvider, 0.85},
	{"region", FieldRegion, 0.95},
	{"zone", FieldRegion, 0.85},
	{"instance", FieldInstanceType, 0.9},
	{"machine", FieldInstanceType, 0.85},
	{"sku", FieldInstanceType, 0.8},
	{"gpu", FieldGPUModel, 0.85},
	{"vcpu", FieldVCPUs, 0.9},
	{"cpu", FieldVCPUs, 0.8},
	{"memory", FieldMemoryGB, 0.85},
	{"mem", FieldMemoryGB, 0.8},
	{"hour", FieldRuntimeHours, 0.85},
	{"runtime", FieldRuntimeHours, 0.85},
	{"duration", FieldRuntimeHours, 0.85},
	{"credit", FieldCreditsUsed, 0.85},
	{"dbu", FieldCreditsUsed, 0.85},
	{"cost", FieldCost, 0.9},
	{"price", FieldCost, 0.9},
	{"spend", FieldCost, 0.9},
	{"service", FieldService, 0.85},
	{"product", FieldService, 0.85},
	{"name", FieldName, 0.8},
	{"workload", FieldName, 0.8},
	{"resource", FieldName, 0.8},
}

// identityConfidence is assigned to headers matching no keyword rule, which
// map to a slugified version of themselves so no column is dropped silently.
const identityConfidence = 0.5

// numericFields are canonical fields whose values must parse as numbers.
// A keyword match against one of these is discarded when the column's
// sample values are provably non-numeric.
var numericFields = map[string]bool{
	FieldVCPUs:          true,
	FieldMemoryGB:       true,
	FieldRuntimeHours:   true,
	FieldCPUUtilization: true,
	FieldMemUtilization: true,
	FieldCost:           true,
	FieldCreditsUsed:    true,
	FieldTotalEnergy:    true,
	FieldTotalCarbon:    true,
}
