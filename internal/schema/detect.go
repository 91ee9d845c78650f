package schema

import (
	"strconv"
	"strings"
)

// Detector classifies uploaded headers into a source format and proposes a
// column mapping. Detection tiers are evaluated in precedence order: known
// provider export, canonical self-format, generic keyword fallback.
type Detector struct{}

// NewDetector creates a schema Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// canonicalSelfFormatMinFields is the minimum number of canonical vocabulary
// headers required before a file is treated as a canonical export.
const canonicalSelfFormatMinFields = 3

// Detect inspects headers and up to a handful of sample rows and returns the
// detected source type with a per-column mapping. Every header receives a
// mapping in the generic and canonical tiers; only the known-provider tier
// drops unmatched columns, since its schema is exact.
func (d *Detector) Detect(headers []string, sampleRows [][]string) Detection {
	if isAWSCUR(headers) {
		return Detection{SourceType: SourceAWSCUR, Mappings: mapAWSCUR(headers)}
	}

	canonical := canonicalMatches(headers)
	if len(canonical) >= canonicalSelfFormatMinFields && len(canonical)*2 > len(headers) {
		return Detection{SourceType: SourceCanonical, Mappings: mapCanonical(headers, canonical, sampleRows)}
	}

	return Detection{SourceType: SourceGeneric, Mappings: mapGeneric(headers, sampleRows)}
}

// isAWSCUR reports whether the header set carries the slash-namespaced
// column prefixes of an AWS Cost and Usage Report.
func isAWSCUR(headers []string) bool {
	namespaced := 0
	for _, h := range headers {
		for _, prefix := range curNamespacePrefixes {
			if strings.HasPrefix(h, prefix) {
				namespaced++
				break
			}
		}
	}
	return namespaced >= 2
}

func mapAWSCUR(headers []string) []ColumnMapping {
	mappings := make([]ColumnMapping, 0, len(headers))
	for _, h := range headers {
		target, ok := awsCURColumns[h]
		if !ok {
			continue
		}
		mappings = append(mappings, ColumnMapping{Source: h, Target: target, Confidence: 1.0})
	}
	return mappings
}

// canonicalMatches returns header -> canonical field for headers that are
// case-insensitive exact names from the canonical vocabulary.
func canonicalMatches(headers []string) map[string]string {
	matches := make(map[string]string)
	for _, h := range headers {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, ok := canonicalConfidence[name]; ok {
			matches[h] = name
		}
	}
	return matches
}

// mapCanonical maps canonical-vocabulary headers at their fixed confidence
// and routes any remaining headers through the generic keyword fallback so
// extra columns survive alongside a canonical core.
func mapCanonical(headers []string, canonical map[string]string, sampleRows [][]string) []ColumnMapping {
	mappings := make([]ColumnMapping, 0, len(headers))
	for i, h := range headers {
		if field, ok := canonical[h]; ok {
			mappings = append(mappings, ColumnMapping{Source: h, Target: field, Confidence: canonicalConfidence[field]})
			continue
		}
		mappings = append(mappings, mapHeader(h, columnSamples(sampleRows, i)))
	}
	return mappings
}

func mapGeneric(headers []string, sampleRows [][]string) []ColumnMapping {
	mappings := make([]ColumnMapping, 0, len(headers))
	for i, h := range headers {
		mappings = append(mappings, mapHeader(h, columnSamples(sampleRows, i)))
	}
	return mappings
}

// mapHeader applies the ordered keyword rules to one header. A rule whose
// target field is numeric is discarded when the column's sample values are
// all non-numeric, since a keyword hit on text data would poison coercion.
// Headers matching no rule map to a slugified version of themselves at
// identity confidence, never dropped.
func mapHeader(header string, samples []string) ColumnMapping {
	lower := strings.ToLower(header)
	for _, rule := range keywordRules {
		if !strings.Contains(lower, rule.keyword) {
			continue
		}
		if numericFields[rule.target] && provablyNonNumeric(samples) {
			continue
		}
		return ColumnMapping{Source: header, Target: rule.target, Confidence: rule.confidence}
	}
	return ColumnMapping{Source: header, Target: Slugify(header), Confidence: identityConfidence}
}

// columnSamples extracts the values of column i from the sample rows,
// skipping rows too short to carry the column.
func columnSamples(sampleRows [][]string, i int) []string {
	samples := make([]string, 0, len(sampleRows))
	for _, row := range sampleRows {
		if i < len(row) {
			samples = append(samples, row[i])
		}
	}
	return samples
}

// provablyNonNumeric reports whether the samples contain at least one
// non-empty value and none of the non-empty values parse as a number.
func provablyNonNumeric(samples []string) bool {
	nonEmpty := 0
	for _, s := range samples {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		nonEmpty++
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			return false
		}
	}
	return nonEmpty > 0
}

// Slugify converts an arbitrary header into a safe snake_case field name:
// lowercase, runs of non-alphanumerics collapsed to single underscores,
// leading and trailing underscores trimmed.
func Slugify(header string) string {
	var b strings.Builder
	lastUnderscore := true // trims leading underscores
	for _, r := range strings.ToLower(header) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlnum {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimRight(b.String(), "_")
}

// PadRow pads a short row with empty strings or truncates a long row so its
// length matches the header count. Ragged CSV rows are a data-quality
// problem, not a parse failure.
func PadRow(row []string, headerCount int) []string {
	if len(row) == headerCount {
		return row
	}
	if len(row) > headerCount {
		return row[:headerCount]
	}
	padded := make([]string, headerCount)
	copy(padded, row)
	return padded
}
