package clean

import (
	"encoding/json"
	"strings"

	"refinery/internal/config"
	"refinery/internal/ingest"
)

// DropStats counts the records Dedupe removed, by cause.
type DropStats struct {
	Duplicates int
	Empties    int
}

// Dedupe removes duplicate and empty records from an already-normalized
// batch in a single left-to-right pass, keeping the earliest occurrence of
// each fingerprint. mode selects the fingerprint: DedupExact covers the whole
// record, DedupField only the contentFields.
//
// A record is dropped as empty when any requiredFields entry is empty after
// normalization. With no required fields configured, a record is dropped only
// when every contentFields entry is empty (nothing to train on).
func Dedupe(records []ingest.Record, mode string, contentFields, requiredFields []string) ([]ingest.Record, DropStats) {
	seen := make(map[string]bool, len(records))
	var kept []ingest.Record
	var stats DropStats

	for _, rec := range records {
		if isEmpty(rec, contentFields, requiredFields) {
			stats.Empties++
			continue
		}

		fp := Fingerprint(rec, mode, contentFields)
		if seen[fp] {
			stats.Duplicates++
			continue
		}
		seen[fp] = true
		kept = append(kept, rec)
	}

	return kept, stats
}

// Fingerprint computes the duplicate-detection key for a normalized record.
// DedupExact marshals the whole record as canonical JSON (map keys sorted);
// DedupField joins the record's content-field values.
func Fingerprint(rec ingest.Record, mode string, contentFields []string) string {
	if mode == config.DedupExact || len(contentFields) == 0 {
		data, err := json.Marshal(rec)
		if err != nil {
			// Unmarshalable values cannot collide meaningfully; fall back to
			// the field fingerprint.
			return fieldFingerprint(rec, contentFields)
		}
		return string(data)
	}
	return fieldFingerprint(rec, contentFields)
}

func fieldFingerprint(rec ingest.Record, contentFields []string) string {
	parts := make([]string, len(contentFields))
	for i, field := range contentFields {
		parts[i] = rec.String(field)
	}
	return strings.Join(parts, "\x1f")
}

func isEmpty(rec ingest.Record, contentFields, requiredFields []string) bool {
	if len(requiredFields) > 0 {
		for _, field := range requiredFields {
			if rec.String(field) == "" {
				return true
			}
		}
		return false
	}
	if len(contentFields) == 0 {
		return len(rec) == 0
	}
	for _, field := range contentFields {
		if rec.String(field) != "" {
			return false
		}
	}
	return true
}
