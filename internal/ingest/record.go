// Package ingest loads raw records from heterogeneous input files
// (JSON, JSONL, CSV, TXT) into a uniform map shape for the pipeline.
package ingest

import "strconv"

// Record is one raw input record: field name to value. Values are strings,
// numbers, bools, or nested maps for conversation-style inputs. Records are
// never mutated after ingestion.
type Record map[string]any

// String returns the value under key coerced to a string. Nil, absent, and
// non-scalar values coerce to "".
func (r Record) String(key string) string {
	return CoerceString(r[key])
}

// CoerceString converts a scalar value to its string form.
// Nil and non-scalar values (maps, slices) yield "".
func CoerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
