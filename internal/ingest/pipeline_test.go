package ingest

import (
	"context"
	"errors"
	"testing"
)

func TestNewPipeline(t *testing.T) {
	tests := []struct {
		name    string
		params  ChunkParams
		wantErr bool
	}{
		{name: "valid params", params: ChunkParams{ChunkSize: 500, Overlap: 100}, wantErr: false},
		{name: "invalid params rejected at construction", params: ChunkParams{ChunkSize: 100, Overlap: 100}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPipeline(tt.params)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidChunkParams) {
					t.Errorf("NewPipeline() error = %v, want ErrInvalidChunkParams", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewPipeline() error = %v", err)
			}
			if p == nil {
				t.Fatal("NewPipeline() returned nil")
			}
		})
	}
}

func TestPipeline_Ingest(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "report.txt", "A short report. It has a few sentences. Enough for two chunks at least.")

	p, err := NewPipeline(ChunkParams{ChunkSize: 40, Overlap: 10})
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	records, err := p.Ingest(context.Background(), path, "report", 1, true)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if len(records) < 2 {
		t.Fatalf("Ingest() returned %d records, want at least 2", len(records))
	}

	for i, record := range records {
		if want := RecordID("report", 1, i); record.ID != want {
			t.Errorf("records[%d].ID = %q, want %q", i, record.ID, want)
		}
		if record.Metadata.Source != "report.txt" {
			t.Errorf("records[%d].Metadata.Source = %q, want %q", i, record.Metadata.Source, "report.txt")
		}
		if record.Metadata.Pages != "1" {
			t.Errorf("records[%d].Metadata.Pages = %q, want %q", i, record.Metadata.Pages, "1")
		}
	}
}

func TestPipeline_Ingest_Idempotent(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "stable.txt", "Identical input should produce identical records, timestamps aside.")

	p, err := NewPipeline(ChunkParams{ChunkSize: 30, Overlap: 5})
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	first, err := p.Ingest(context.Background(), path, "stable", 2, true)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	second, err := p.Ingest(context.Background(), path, "stable", 2, true)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("re-ingestion produced %d records, first run produced %d", len(second), len(first))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("records[%d] id changed across runs: %q vs %q", i, first[i].ID, second[i].ID)
		}
		if first[i].ChunkText != second[i].ChunkText {
			t.Errorf("records[%d] chunk text changed across runs", i)
		}
		if first[i].Metadata.Pages != second[i].Metadata.Pages {
			t.Errorf("records[%d] page list changed across runs", i)
		}
	}
}

func TestPipeline_Ingest_ErrorsPropagate(t *testing.T) {
	dir := t.TempDir()

	p, err := NewPipeline(ChunkParams{ChunkSize: 100, Overlap: 20})
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "missing file", path: dir + "/nope.txt", wantErr: ErrFileNotFound},
		{name: "unsupported extension", path: writeFile(t, dir, "sheet.docx", "x"), wantErr: ErrUnsupportedFormat},
		{name: "corrupt pdf", path: writeFile(t, dir, "bad.pdf", "junk"), wantErr: ErrExtraction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := p.Ingest(context.Background(), tt.path, "doc", 1, true)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Ingest() error = %v, want %v", err, tt.wantErr)
			}
			if records != nil {
				t.Errorf("Ingest() returned a partial batch alongside an error")
			}
		})
	}
}
