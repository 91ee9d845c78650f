package ingest

import (
	"context"
	"sync"
)

// WorkloadRecord is the flat per-row record handed to the persistence layer:
// the normalized workload fields plus the calculator output and detection
// provenance.
type WorkloadRecord struct {
	ID        string `json:"id"`
	DatasetID string `json:"dataset_id"`
	TeamID    string `json:"team_id"`

	Name         string `json:"name"`
	Provider     string `json:"provider"`
	Region       string `json:"region"`
	InstanceType string `json:"instance_type"`

	VCPUs        float64 `json:"vcpus"`
	MemoryGB     float64 `json:"memory_gb"`
	RuntimeHours float64 `json:"runtime_hours"`

	AvgCPUUtilization *float64 `json:"avg_cpu_utilization,omitempty"`
	AvgMemUtilization *float64 `json:"avg_memory_utilization,omitempty"`

	TotalEnergyKWh float64 `json:"total_energy_kwh"`
	TotalCarbonKg  float64 `json:"total_carbon_kg"`
	CostUSD        float64 `json:"cost_usd"`
	Confidence     int     `json:"confidence"`

	DetectionMethod     string  `json:"detection_method"`
	DetectionConfidence float64 `json:"detection_confidence"`
}

// DatasetSummary is the single aggregate record written per upload.
type DatasetSummary struct {
	DatasetID string `json:"dataset_id"`
	TeamID    string `json:"team_id"`

	SourceType     string `json:"source_type"`
	WorkloadCount  int    `json:"workload_count"`
	PersistedCount int    `json:"persisted_count"`

	CostUSD   float64 `json:"cost_usd"`
	EnergyKWh float64 `json:"energy_kwh"`
	CarbonKg  float64 `json:"carbon_kg"`

	AvgMappingConfidence float64 `json:"avg_mapping_confidence"`
}

// Store is the persistence port for calculated workloads and dataset
// aggregates. The engine takes it as an explicit dependency; no ambient
// client state.
type Store interface {
	SaveWorkload(ctx context.Context, rec *WorkloadRecord) error
	SaveDatasetSummary(ctx context.Context, summary *DatasetSummary) error
}

// MemStore is an in-memory Store used by the CLI and tests. Writes may
// arrive concurrently from the persistence batch.
type MemStore struct {
	mu        sync.Mutex
	workloads []WorkloadRecord
	summaries []DatasetSummary
}

// Compile-time check that *MemStore implements Store.
var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) SaveWorkload(_ context.Context, rec *WorkloadRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workloads = append(m.workloads, *rec)
	return nil
}

func (m *MemStore) SaveDatasetSummary(_ context.Context, summary *DatasetSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summaries = append(m.summaries, *summary)
	return nil
}

// Workloads returns a snapshot of the persisted workload records.
func (m *MemStore) Workloads() []WorkloadRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]WorkloadRecord, len(m.workloads))
	copy(out, m.workloads)
	return out
}

// Summaries returns a snapshot of the persisted dataset summaries.
func (m *MemStore) Summaries() []DatasetSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]DatasetSummary, len(m.summaries))
	copy(out, m.summaries)
	return out
}
