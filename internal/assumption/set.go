// Package assumption resolves the constants a calculation batch runs
// against: reference defaults merged with team-specific overrides into one
// immutable snapshot per ingestion batch.
package assumption

// Set is a resolved assumption snapshot: constant name to numeric value.
// A Set is built once per ingestion batch and must not be mutated afterwards
// so every row in the batch computes against the same values.
type Set map[string]float64

// Value returns the resolved value for a constant name.
func (s Set) Value(name string) (float64, bool) {
	v, ok := s[name]
	return v, ok
}

// ValueOr returns the resolved value for name, or fallback when the name is
// not present in the snapshot.
func (s Set) ValueOr(name string, fallback float64) float64 {
	if v, ok := s[name]; ok {
		return v
	}
	return fallback
}
