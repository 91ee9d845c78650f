package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wattprint/wattprint/internal/assumption"
	"github.com/wattprint/wattprint/internal/ingest"
)

// ingestOptions carries the flag values for the ingest command.
type ingestOptions struct {
	file          string
	teamID        string
	overridesFile string
	rowLimit      int
	outputJSON    bool
}

func newIngestCmd() *cobra.Command {
	opts := &ingestOptions{}

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest a billing/usage CSV and calculate workload metrics",
		RunE: func(c *cobra.Command, _ []string) error {
			return runIngest(c.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "CSV file to ingest (required)")
	cmd.Flags().StringVarP(&opts.teamID, "team", "t", "default", "team identifier for assumption overrides")
	cmd.Flags().StringVar(&opts.overridesFile, "overrides", "", "YAML file of team assumption overrides")
	cmd.Flags().IntVar(&opts.rowLimit, "row-limit", ingest.DefaultConfig().PersistRowLimit, "max rows persisted individually (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.outputJSON, "json", false, "emit the full result as JSON")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runIngest(ctx context.Context, opts *ingestOptions) error {
	logger := newLogger()

	f, err := os.Open(opts.file)
	if err != nil {
		return fmt.Errorf("opening %s: %w", opts.file, err)
	}
	defer f.Close()

	overrideStore := assumption.NewMemStore()
	if opts.overridesFile != "" {
		if err := loadOverrides(overrideStore, opts.teamID, opts.overridesFile); err != nil {
			return err
		}
	}

	cfg := ingest.DefaultConfig()
	cfg.PersistRowLimit = opts.rowLimit

	store := ingest.NewMemStore()
	resolver := assumption.NewResolver(overrideStore, logger)
	engine := ingest.NewEngine(store, resolver, cfg, logger)

	result, err := engine.Ingest(ctx, f, opts.teamID)
	if err != nil {
		return err
	}

	if opts.outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printSummary(result)
	return nil
}

// loadOverrides seeds the in-memory override store from a YAML file of
// constant-name -> override entries. Out-of-range values are rejected at
// this write boundary, matching the behavior of the hosted override editor.
func loadOverrides(store *assumption.MemStore, teamID, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading overrides file: %w", err)
	}

	var overrides map[string]assumption.Override
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("parsing overrides file: %w", err)
	}

	for name, ov := range overrides {
		if err := store.Put(teamID, name, ov); err != nil {
			return fmt.Errorf("override %s: %w", name, err)
		}
	}
	return nil
}

func printSummary(result *ingest.Result) {
	s := result.Summary
	fmt.Printf("dataset %s (%s)\n", s.DatasetID, s.SourceType)
	fmt.Printf("  workloads:      %d (%d persisted)\n", s.WorkloadCount, s.PersistedCount)
	fmt.Printf("  energy:         %.3f kWh\n", s.EnergyKWh)
	fmt.Printf("  carbon:         %.3f kgCO2e\n", s.CarbonKg)
	fmt.Printf("  cost:           $%.2f\n", s.CostUSD)
	fmt.Printf("  mapping conf.:  %.2f\n", s.AvgMappingConfidence)
}
