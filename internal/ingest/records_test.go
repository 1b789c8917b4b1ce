package ingest

import (
	"testing"
	"time"
)

func TestRecordID(t *testing.T) {
	tests := []struct {
		name    string
		docID   string
		version int
		index   int
		want    string
	}{
		{name: "first chunk", docID: "apple_q2_report", version: 1, index: 0, want: "apple_q2_report::v1::chunk-0"},
		{name: "later chunk", docID: "apple_q2_report", version: 1, index: 12, want: "apple_q2_report::v1::chunk-12"},
		{name: "new version", docID: "apple_q2_report", version: 2, index: 0, want: "apple_q2_report::v2::chunk-0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecordID(tt.docID, tt.version, tt.index); got != tt.want {
				t.Errorf("RecordID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPageList(t *testing.T) {
	tests := []struct {
		name  string
		pages []int
		want  string
	}{
		{name: "empty", pages: nil, want: ""},
		{name: "single", pages: []int{3}, want: "3"},
		{name: "multiple", pages: []int{3, 4}, want: "3,4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PageList(tt.pages); got != tt.want {
				t.Errorf("PageList(%v) = %q, want %q", tt.pages, got, tt.want)
			}
		})
	}
}

func TestBuildRecords(t *testing.T) {
	chunks := []Chunk{
		{Text: "first chunk", Pages: []int{1}},
		{Text: "second chunk", Pages: []int{1, 2}},
	}

	records := BuildRecords("report", 3, true, "report.pdf", chunks)

	if len(records) != 2 {
		t.Fatalf("BuildRecords() returned %d records, want 2", len(records))
	}

	if records[0].ID != "report::v3::chunk-0" {
		t.Errorf("records[0].ID = %q, want %q", records[0].ID, "report::v3::chunk-0")
	}
	if records[1].ID != "report::v3::chunk-1" {
		t.Errorf("records[1].ID = %q, want %q", records[1].ID, "report::v3::chunk-1")
	}
	if records[1].Metadata.Pages != "1,2" {
		t.Errorf("records[1].Metadata.Pages = %q, want %q", records[1].Metadata.Pages, "1,2")
	}

	for i, record := range records {
		meta := record.Metadata
		if meta.DocID != "report" || meta.DocVersion != 3 || !meta.IsActive || meta.Source != "report.pdf" {
			t.Errorf("records[%d].Metadata = %+v, unexpected values", i, meta)
		}
		if record.ChunkText != chunks[i].Text {
			t.Errorf("records[%d].ChunkText = %q, want %q", i, record.ChunkText, chunks[i].Text)
		}
	}

	// The whole batch shares one timestamp, parseable as RFC 3339 UTC.
	if records[0].Metadata.IngestedAt != records[1].Metadata.IngestedAt {
		t.Errorf("batch timestamps differ: %q vs %q", records[0].Metadata.IngestedAt, records[1].Metadata.IngestedAt)
	}
	parsed, err := time.Parse(time.RFC3339, records[0].Metadata.IngestedAt)
	if err != nil {
		t.Fatalf("IngestedAt %q is not RFC 3339: %v", records[0].Metadata.IngestedAt, err)
	}
	if parsed.Location() != time.UTC {
		t.Errorf("IngestedAt %q is not UTC", records[0].Metadata.IngestedAt)
	}
}

func TestBuildRecords_VersionsAreDisjoint(t *testing.T) {
	chunks := []Chunk{
		{Text: "alpha", Pages: []int{1}},
		{Text: "beta", Pages: []int{2}},
	}

	v1 := BuildRecords("doc", 1, false, "doc.txt", chunks)
	v2 := BuildRecords("doc", 2, true, "doc.txt", chunks)

	v1IDs := make(map[string]struct{}, len(v1))
	for _, r := range v1 {
		v1IDs[r.ID] = struct{}{}
	}
	for _, r := range v2 {
		if _, collides := v1IDs[r.ID]; collides {
			t.Errorf("id %q appears in both version batches", r.ID)
		}
	}
}

func TestBuildRecords_Deterministic(t *testing.T) {
	chunks := []Chunk{{Text: "stable text", Pages: []int{5}}}

	first := BuildRecords("doc", 1, true, "doc.txt", chunks)
	second := BuildRecords("doc", 1, true, "doc.txt", chunks)

	if first[0].ID != second[0].ID {
		t.Errorf("re-run produced different ids: %q vs %q", first[0].ID, second[0].ID)
	}
	if first[0].ChunkText != second[0].ChunkText {
		t.Errorf("re-run produced different chunk text")
	}
	if first[0].Metadata.Pages != second[0].Metadata.Pages {
		t.Errorf("re-run produced different page lists")
	}
}

func TestBuildRecords_Empty(t *testing.T) {
	records := BuildRecords("doc", 1, true, "doc.txt", nil)
	if len(records) != 0 {
		t.Errorf("BuildRecords() returned %d records for no chunks, want 0", len(records))
	}
}
