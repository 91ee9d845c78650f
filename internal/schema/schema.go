// Package schema inspects uploaded tabular headers and sample rows, detects
// the source export format, and proposes a mapping from source columns to
// the canonical workload schema.
package schema

// Canonical workload field names. All detected source formats map into this
// vocabulary before calculation.
const (
	FieldWorkloadID     = "workload_id"
	FieldName           = "name"
	FieldProvider       = "provider"
	FieldRegion         = "region"
	FieldInstanceType   = "instance_type"
	FieldGPUModel       = "gpu_model"
	FieldVCPUs          = "vcpus"
	FieldMemoryGB       = "memory_gb"
	FieldRuntimeHours   = "runtime_hours"
	FieldCPUUtilization = "avg_cpu_utilization"
	FieldMemUtilization = "avg_memory_utilization"
	FieldService        = "service"
	FieldCost           = "cost"
	FieldCreditsUsed    = "credits_used"
	FieldTotalEnergy    = "total_energy"
	FieldTotalCarbon    = "total_carbon"
)

// SourceType identifies the detected upload format.
type SourceType string

const (
	// SourceAWSCUR is an AWS Cost and Usage Report export, recognized by
	// its slash-namespaced column headers.
	SourceAWSCUR SourceType = "aws_cur"

	// SourceCanonical is the tool's own export vocabulary.
	SourceCanonical SourceType = "canonical"

	// SourceGeneric is any other CSV, mapped by keyword heuristics.
	SourceGeneric SourceType = "generic"
)

// ColumnMapping maps one source column to a canonical target field.
// Confidence is descriptive metadata for summaries and display; it never
// gates whether the field is used.
type ColumnMapping struct {
	Source     string  `json:"source"`
	Target     string  `json:"target"`
	Confidence float64 `json:"confidence"`
}

// Detection is the result of schema detection for one uploaded dataset.
type Detection struct {
	SourceType SourceType      `json:"source_type"`
	Mappings   []ColumnMapping `json:"mappings"`
}

// MappingFor returns the mapping whose source column matches the given
// header, if any.
func (d Detection) MappingFor(source string) (ColumnMapping, bool) {
	for _, m := range d.Mappings {
		if m.Source == source {
			return m, true
		}
	}
	return ColumnMapping{}, false
}

// AverageConfidence returns the mean mapping confidence, or 0 for an empty
// mapping set.
func (d Detection) AverageConfidence() float64 {
	if len(d.Mappings) == 0 {
		return 0
	}
	var sum float64
	for _, m := range d.Mappings {
		sum += m.Confidence
	}
	return sum / float64(len(d.Mappings))
}
