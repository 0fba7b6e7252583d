// Package clean provides pure text normalization and record deduplication
// for the preparation pipeline. Normalization is idempotent: applying it
// twice always yields the same string as applying it once.
package clean

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"refinery/internal/ingest"
)

// artifactReplacer repairs the common UTF-8-decoded-as-Windows-1252 sequences
// and maps typographic punctuation to plain ASCII. Replacement outputs never
// contain replacement inputs, which keeps Normalize idempotent.
var artifactReplacer = strings.NewReplacer(
	// Mojibake: UTF-8 bytes read as Windows-1252.
	"â€™", "'",
	"â€˜", "'",
	"â€œ", `"`,
	"â€", `"`,
	"â€“", "-",
	"â€”", "-",
	"â€¦", "...",
	"Â ", " ",
	// Typographic punctuation.
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"–", "-",
	"—", "-",
	"…", "...",
)

// controlStripper removes non-printable control and format runes that are not
// whitespace (whitespace is handled by the collapse pass).
var controlStripper = runes.Remove(runes.Predicate(func(r rune) bool {
	return (unicode.IsControl(r) || unicode.Is(unicode.Cf, r)) && !unicode.IsSpace(r)
}))

// Normalize cleans one text field: repairs encoding artifacts, applies NFC,
// strips non-printable control runes, collapses whitespace runs to single
// spaces, and trims. Pure function; empty input yields empty output, which
// callers read as "field missing".
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = artifactReplacer.Replace(s)

	out, _, err := transform.String(transform.Chain(norm.NFC, controlStripper), s)
	if err == nil {
		s = out
	}

	return strings.Join(strings.Fields(s), " ")
}

// NormalizeValue coerces a scalar value to a string and normalizes it.
// Nil and non-scalar values yield "".
func NormalizeValue(v any) string {
	return Normalize(ingest.CoerceString(v))
}

// Record returns a normalized deep copy of rec: every string field passed
// through Normalize, nested maps and string lists recursed into, and fields
// whose normalized value is empty removed entirely. Scalar non-string values
// are kept as-is.
func Record(rec ingest.Record) ingest.Record {
	out := make(ingest.Record, len(rec))
	for key, value := range rec {
		switch v := value.(type) {
		case string:
			if n := Normalize(v); n != "" {
				out[key] = n
			}
		case []any:
			items := make([]any, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					items = append(items, Normalize(s))
				} else {
					items = append(items, item)
				}
			}
			out[key] = items
		case map[string]any:
			out[key] = map[string]any(Record(ingest.Record(v)))
		default:
			out[key] = value
		}
	}
	return out
}

// Records normalizes every record in the batch.
func Records(recs []ingest.Record) []ingest.Record {
	out := make([]ingest.Record, len(recs))
	for i, r := range recs {
		out[i] = Record(r)
	}
	return out
}
