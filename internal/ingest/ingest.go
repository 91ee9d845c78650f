// Package ingest drives the per-upload pipeline: parse the raw CSV, detect
// the schema once, then map, normalize, and calculate every row against a
// single assumption snapshot, aggregating dataset totals and handing results
// to the persistence port.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/wattprint/wattprint/internal/assumption"
	"github.com/wattprint/wattprint/internal/calc"
	"github.com/wattprint/wattprint/internal/detect"
	"github.com/wattprint/wattprint/internal/schema"
)

// Config controls batch behavior. The persistence cap and whether
// aggregates include uncapped rows are explicit decisions, not implicit
// coupling.
type Config struct {
	// PersistRowLimit caps how many individual workload records are
	// written per upload. Zero or negative disables the cap.
	PersistRowLimit int

	// AggregateAll includes rows beyond the persistence cap in dataset
	// totals. When false, totals cover only persisted rows.
	AggregateAll bool

	// PersistConcurrency bounds in-flight persistence writes.
	PersistConcurrency int
}

// DefaultConfig matches the historical behavior: first 100 rows persisted
// individually, every row counted in aggregates.
func DefaultConfig() Config {
	return Config{
		PersistRowLimit:    100,
		AggregateAll:       true,
		PersistConcurrency: 8,
	}
}

// Result is the outcome of one ingestion batch: the dataset aggregate plus
// the per-row results for every row, persisted or not.
type Result struct {
	Summary   DatasetSummary   `json:"summary"`
	Workloads []WorkloadRecord `json:"workloads"`
	Detection schema.Detection `json:"detection"`
}

// sampleRowCount is how many leading rows schema detection may inspect.
const sampleRowCount = 5

// Engine is the batch entry point. All collaborators are injected; the
// engine holds no ambient state.
type Engine struct {
	store      Store
	resolver   *assumption.Resolver
	detector   *schema.Detector
	normalizer *detect.Normalizer
	cfg        Config
	logger     zerolog.Logger
}

// NewEngine creates an ingestion Engine writing to the given store and
// resolving assumptions through the given resolver.
func NewEngine(store Store, resolver *assumption.Resolver, cfg Config, logger zerolog.Logger) *Engine {
	return &Engine{
		store:      store,
		resolver:   resolver,
		detector:   schema.NewDetector(),
		normalizer: detect.NewNormalizer(),
		cfg:        cfg,
		logger:     logger,
	}
}

// Ingest processes one uploaded CSV for a team. The only hard failure is an
// unreadable file; malformed rows are padded or skipped with a warning, and
// unreachable override storage degrades to reference defaults. All rows in
// the batch compute against the same assumption snapshot.
func (e *Engine) Ingest(ctx context.Context, r io.Reader, teamID string) (*Result, error) {
	headers, rows, err := readCSV(r, e.logger)
	if err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		return nil, errors.New("uploaded file has no header row")
	}

	samples := rows
	if len(samples) > sampleRowCount {
		samples = samples[:sampleRowCount]
	}
	detection := e.detector.Detect(headers, samples)

	set, err := e.resolver.Resolve(ctx, teamID)
	if err != nil {
		// Fail open: an unreachable override store degrades to reference
		// defaults rather than blocking the batch.
		e.logger.Warn().
			Err(err).
			Str("team_id", teamID).
			Msg("override storage unreachable, calculating with reference defaults")
	}

	datasetID := uuid.New().String()
	targetByColumn := targetIndex(headers, detection)

	summary := DatasetSummary{
		DatasetID:            datasetID,
		TeamID:               teamID,
		SourceType:           string(detection.SourceType),
		AvgMappingConfidence: detection.AverageConfidence(),
	}
	workloads := make([]WorkloadRecord, 0, len(rows))

	for i, row := range rows {
		row = schema.PadRow(row, len(headers))

		fields := make(map[string]string, len(targetByColumn))
		for col, target := range targetByColumn {
			fields[target] = row[col]
		}

		rec := e.processRow(set, coerceRow(fields), i)
		rec.ID = uuid.New().String()
		rec.DatasetID = datasetID
		rec.TeamID = teamID

		persisted := e.cfg.PersistRowLimit <= 0 || len(workloads) < e.cfg.PersistRowLimit
		if persisted || e.cfg.AggregateAll {
			summary.WorkloadCount++
			summary.CostUSD += rec.CostUSD
			summary.EnergyKWh += rec.TotalEnergyKWh
			summary.CarbonKg += rec.TotalCarbonKg
		}

		workloads = append(workloads, rec)
	}

	persistCount := len(workloads)
	if e.cfg.PersistRowLimit > 0 && persistCount > e.cfg.PersistRowLimit {
		persistCount = e.cfg.PersistRowLimit
	}
	summary.PersistedCount = persistCount

	if err := e.persist(ctx, workloads[:persistCount], &summary); err != nil {
		return nil, err
	}

	e.logger.Info().
		Str("dataset_id", datasetID).
		Str("team_id", teamID).
		Str("source_type", string(detection.SourceType)).
		Int("rows", len(workloads)).
		Int("persisted", persistCount).
		Float64("energy_kwh", summary.EnergyKWh).
		Float64("carbon_kg", summary.CarbonKg).
		Msg("ingestion batch complete")

	return &Result{Summary: summary, Workloads: workloads, Detection: detection}, nil
}

// processRow runs one coerced row through normalization and calculation.
func (e *Engine) processRow(set assumption.Set, row coercedRow, index int) WorkloadRecord {
	detected := e.normalizer.Detect(detect.Hints{
		Provider:     row.Provider,
		Region:       row.Region,
		InstanceType: row.InstanceType,
		GPUModel:     row.GPUModel,
	})

	metrics := calc.Calculate(set, calc.Workload{
		Provider:       detected.Provider,
		Region:         detected.Region,
		InstanceType:   row.InstanceType,
		VCPUs:          row.VCPUs,
		RuntimeHours:   row.RuntimeHours,
		CPUUtilization: row.CPUUtilization,
	})

	cost := row.Cost
	if !row.CostPresent && row.CreditsUsed > 0 {
		if rate, ok := calc.CreditRate(set, row.Service); ok {
			cost = row.CreditsUsed * rate
		}
	}

	name := row.Name
	if name == "" {
		name = row.WorkloadID
	}
	if name == "" {
		name = fmt.Sprintf("workload-%d", index+1)
	}

	return WorkloadRecord{
		Name:                name,
		Provider:            detected.Provider,
		Region:              detected.Region,
		InstanceType:        row.InstanceType,
		VCPUs:               row.VCPUs,
		MemoryGB:            row.MemoryGB,
		RuntimeHours:        row.RuntimeHours,
		AvgCPUUtilization:   row.CPUUtilization,
		AvgMemUtilization:   row.MemUtilization,
		TotalEnergyKWh:      metrics.EnergyKWh,
		TotalCarbonKg:       metrics.CarbonKg,
		CostUSD:             cost,
		Confidence:          metrics.Confidence,
		DetectionMethod:     string(detected.Method),
		DetectionConfidence: detected.Confidence,
	}
}

// persist writes the capped record set concurrently, then the summary. Rows
// are independent, so writes may complete in any order; there is no rollback
// of rows already written when a later write fails.
func (e *Engine) persist(ctx context.Context, records []WorkloadRecord, summary *DatasetSummary) error {
	g, gctx := errgroup.WithContext(ctx)
	if e.cfg.PersistConcurrency > 0 {
		g.SetLimit(e.cfg.PersistConcurrency)
	}

	for i := range records {
		rec := &records[i]
		g.Go(func() error {
			return e.store.SaveWorkload(gctx, rec)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("persisting workload records: %w", err)
	}

	if err := e.store.SaveDatasetSummary(ctx, summary); err != nil {
		return fmt.Errorf("persisting dataset summary: %w", err)
	}
	return nil
}

// readCSV parses the upload into headers and data rows. Ragged rows are
// kept as-is for later padding; rows the CSV parser rejects outright are
// skipped with a warning rather than failing the batch.
func readCSV(r io.Reader, logger zerolog.Logger) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading CSV header: %w", err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Warn().Err(err).Msg("skipping unparseable CSV row")
			continue
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

// targetIndex maps column positions to canonical target fields using the
// single detection computed for the whole file.
func targetIndex(headers []string, detection schema.Detection) map[int]string {
	idx := make(map[int]string, len(headers))
	for i, h := range headers {
		if m, ok := detection.MappingFor(h); ok {
			idx[i] = m.Target
		}
	}
	return idx
}
