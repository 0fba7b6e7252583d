package clean

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"refinery/internal/config"
	"refinery/internal/ingest"
)

var contentFields = []string{"instruction", "response"}

func TestDedupe_FieldMode(t *testing.T) {
	records := []ingest.Record{
		{"instruction": "Add 1+1", "response": "2"},
		{"instruction": "Add 1+1", "response": "2", "extra": "ignored in field mode"},
		{"instruction": "Add 2+2", "response": "4"},
	}
	kept, stats := Dedupe(records, config.DedupField, contentFields, nil)
	if len(kept) != 2 {
		t.Fatalf("kept %d records, want 2", len(kept))
	}
	if stats.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", stats.Duplicates)
	}
	// First occurrence wins.
	if _, hasExtra := kept[0]["extra"]; hasExtra {
		t.Error("expected earliest occurrence kept, got the later one")
	}
}

func TestDedupe_ExactMode(t *testing.T) {
	records := []ingest.Record{
		{"instruction": "Add 1+1", "response": "2"},
		{"instruction": "Add 1+1", "response": "2", "extra": "differs"},
		{"instruction": "Add 1+1", "response": "2"},
	}
	kept, stats := Dedupe(records, config.DedupExact, contentFields, nil)
	if len(kept) != 2 {
		t.Fatalf("kept %d records, want 2 (extra field differs structurally)", len(kept))
	}
	if stats.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", stats.Duplicates)
	}
}

func TestDedupe_PreservesOrder(t *testing.T) {
	records := []ingest.Record{
		{"instruction": "c", "response": "3"},
		{"instruction": "a", "response": "1"},
		{"instruction": "c", "response": "3"},
		{"instruction": "b", "response": "2"},
	}
	kept, _ := Dedupe(records, config.DedupField, contentFields, nil)
	var got []string
	for _, r := range kept {
		got = append(got, r.String("instruction"))
	}
	want := []string{"c", "a", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch:\n%s", diff)
	}
}

func TestDedupe_DropsRecordMissingRequiredField(t *testing.T) {
	records := []ingest.Record{
		{"instruction": "Add 1+1", "response": "2"},
		{"instruction": "", "response": "x"},
		{"response": "orphaned"},
	}
	kept, stats := Dedupe(records, config.DedupField, contentFields, []string{"instruction", "response"})
	if len(kept) != 1 {
		t.Fatalf("kept %d records, want 1", len(kept))
	}
	if stats.Empties != 2 {
		t.Errorf("Empties = %d, want 2", stats.Empties)
	}
}

func TestDedupe_NoRequiredFieldsDropsOnlyFullyEmpty(t *testing.T) {
	records := []ingest.Record{
		{"instruction": "", "response": "x"},
		{"instruction": "", "response": ""},
	}
	kept, stats := Dedupe(records, config.DedupField, contentFields, nil)
	if len(kept) != 1 {
		t.Fatalf("kept %d records, want 1 (partial content survives)", len(kept))
	}
	if stats.Empties != 1 {
		t.Errorf("Empties = %d, want 1", stats.Empties)
	}
}

func TestDedupe_OutputIsSubsequence(t *testing.T) {
	records := []ingest.Record{
		{"instruction": "a", "response": "1"},
		{"instruction": "b", "response": "2"},
		{"instruction": "a", "response": "1"},
		{"instruction": "c", "response": "3"},
	}
	kept, _ := Dedupe(records, config.DedupField, contentFields, nil)

	// Every kept record appears in input order, and no two share a fingerprint.
	seen := make(map[string]bool)
	inputIdx := 0
	for _, k := range kept {
		fp := Fingerprint(k, config.DedupField, contentFields)
		if seen[fp] {
			t.Errorf("duplicate fingerprint %q survived dedup", fp)
		}
		seen[fp] = true

		found := false
		for ; inputIdx < len(records); inputIdx++ {
			if Fingerprint(records[inputIdx], config.DedupField, contentFields) == fp {
				found = true
				inputIdx++
				break
			}
		}
		if !found {
			t.Errorf("kept record %v is not an order-preserving subsequence of input", k)
		}
	}
}

func TestFingerprint_ExactSortsKeys(t *testing.T) {
	a := ingest.Record{"x": "1", "y": "2"}
	b := ingest.Record{"y": "2", "x": "1"}
	if Fingerprint(a, config.DedupExact, nil) != Fingerprint(b, config.DedupExact, nil) {
		t.Error("exact fingerprint should be key-order independent")
	}
}
