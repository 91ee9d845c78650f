package assumption

import (
	"context"
	"fmt"
	"sync"

	"github.com/wattprint/wattprint/internal/refdata"
)

// Override is a team-edited replacement for one reference constant.
type Override struct {
	Value       float64 `json:"value" yaml:"value"`
	SourceLabel string  `json:"source_label" yaml:"source_label"`
}

// OverrideStore is the persistence port for team assumption overrides.
// Absence of a document is not an error: implementations return an empty map
// for teams with no overrides.
type OverrideStore interface {
	Get(ctx context.Context, teamID string) (map[string]Override, error)
}

// MemStore is an in-memory OverrideStore, used by the CLI and tests.
type MemStore struct {
	mu    sync.RWMutex
	teams map[string]map[string]Override
}

// Compile-time check that *MemStore implements OverrideStore.
var _ OverrideStore = (*MemStore)(nil)

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{teams: make(map[string]map[string]Override)}
}

// Put stores an override after validating it against the constant's category
// range. Unknown constant names and out-of-range values are rejected, never
// clamped.
func (m *MemStore) Put(teamID, name string, ov Override) error {
	c, ok := refdata.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown constant %q", name)
	}

	r := refdata.ValidationRange(c.Category)
	if ov.Value < r.Min || ov.Value > r.Max {
		return fmt.Errorf("value %v for %q outside allowed range [%v, %v]", ov.Value, name, r.Min, r.Max)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	team, ok := m.teams[teamID]
	if !ok {
		team = make(map[string]Override)
		m.teams[teamID] = team
	}
	team[name] = ov
	return nil
}

// Get returns the team's overrides. Teams without overrides get an empty map.
func (m *MemStore) Get(_ context.Context, teamID string) (map[string]Override, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]Override, len(m.teams[teamID]))
	for k, v := range m.teams[teamID] {
		out[k] = v
	}
	return out, nil
}
