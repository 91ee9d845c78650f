package assumption

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/wattprint/wattprint/internal/refdata"
)

// Resolver merges reference defaults with a team's overrides into a flat
// per-batch Set.
type Resolver struct {
	store  OverrideStore
	logger zerolog.Logger
}

// NewResolver creates a Resolver backed by the given override store.
func NewResolver(store OverrideStore, logger zerolog.Logger) *Resolver {
	return &Resolver{store: store, logger: logger}
}

// Resolve builds the assumption snapshot for one team. Overrides shadow
// defaults by constant name; override keys with no matching default are
// ignored so stale or forward-versioned override documents never break
// resolution.
//
// When the store is unreachable, Resolve returns the pure-defaults Set
// together with the storage error. Callers decide whether to degrade and
// continue (the ingestion engine does, with a warning) or to surface the
// failure.
func (r *Resolver) Resolve(ctx context.Context, teamID string) (Set, error) {
	set := DefaultSet()

	overrides, err := r.store.Get(ctx, teamID)
	if err != nil {
		return set, err
	}

	applied := 0
	for name, ov := range overrides {
		if _, ok := set[name]; !ok {
			r.logger.Debug().
				Str("team_id", teamID).
				Str("constant", name).
				Msg("ignoring override for unknown constant")
			continue
		}
		set[name] = ov.Value
		applied++
	}

	if applied > 0 {
		r.logger.Debug().
			Str("team_id", teamID).
			Int("overrides_applied", applied).
			Msg("assumption set resolved with team overrides")
	}
	return set, nil
}

// DefaultSet returns an assumption snapshot built from reference defaults
// alone, with no team overrides applied.
func DefaultSet() Set {
	defaults := refdata.Defaults()
	set := make(Set, len(defaults))
	for name, c := range defaults {
		set[name] = c.Value
	}
	return set
}
