package ingest

import (
	"context"
	"fmt"
	"io"
)

// BillingSource is the port for integration workers that poll cloud billing
// APIs and deliver exports as CSV streams. Polling itself is an external
// collaborator; the engine only consumes the fetched export through Ingest.
type BillingSource interface {
	// FetchExport returns the latest billing export for a team as CSV.
	FetchExport(ctx context.Context, teamID string) (io.ReadCloser, error)
}

// IngestFromSource pulls the latest billing export for a team from an
// integration source and processes it like a direct upload.
func (e *Engine) IngestFromSource(ctx context.Context, src BillingSource, teamID string) (*Result, error) {
	rc, err := src.FetchExport(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("fetching billing export: %w", err)
	}
	defer rc.Close()

	return e.Ingest(ctx, rc, teamID)
}
