package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"docchat-ai/internal/ingest"
	"docchat-ai/internal/storage"
	storagemocks "docchat-ai/internal/storage/mocks"
	"docchat-ai/internal/vectorstore"
	vsmocks "docchat-ai/internal/vectorstore/mocks"
)

type lengthEmbedder struct{}

// EmbedTexts returns one-dimensional vectors encoding the text length, so
// tests can verify vector-to-chunk alignment.
func (lengthEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = []float32{float32(len(text))}
	}
	return vectors, nil
}

type failingEmbedder struct{}

func (failingEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, errors.New("embedding server down")
}

func newTestService(t *testing.T, embedder Embedder, store vectorstore.VectorStore, docs storage.DocumentStore) *IngestService {
	t.Helper()

	pipeline, err := ingest.NewPipeline(ingest.ChunkParams{ChunkSize: 50, Overlap: 10})
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	return NewIngestService(pipeline, embedder, store, "documents", docs)
}

func writeTestDoc(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "report.txt")
	content := strings.Repeat("The quarterly revenue grew substantially. ", 5)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestIngestService_Ingest(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := vsmocks.NewMockVectorStore(ctrl)
	docs := storagemocks.NewMockDocumentStore(ctrl)
	path := writeTestDoc(t)

	var captured []vectorstore.Point
	store.EXPECT().
		Upsert(gomock.Any(), "documents", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, points []vectorstore.Point) error {
			captured = points
			return nil
		})

	docs.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, doc *storage.Document) error {
			if doc.DocID != "report" || doc.Version != 2 {
				t.Errorf("registered %s v%d, want report v2", doc.DocID, doc.Version)
			}
			if doc.Source != "report.txt" {
				t.Errorf("registered source = %q, want report.txt", doc.Source)
			}
			if doc.ChunkCount == 0 {
				t.Error("registered chunk count = 0, want > 0")
			}
			return nil
		})
	docs.EXPECT().SetActive(gomock.Any(), "report", 2).Return(nil)

	svc := newTestService(t, lengthEmbedder{}, store, docs)

	result, err := svc.Ingest(context.Background(), IngestRequest{
		FilePath: path,
		DocID:    "report",
		Version:  2,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if result.DocID != "report" || result.Version != 2 {
		t.Errorf("result = %s v%d, want report v2", result.DocID, result.Version)
	}
	if result.Chunks != len(captured) {
		t.Errorf("result.Chunks = %d, but %d points upserted", result.Chunks, len(captured))
	}

	for i, point := range captured {
		if _, err := uuid.Parse(point.ID); err != nil {
			t.Errorf("point %d ID %q is not a UUID: %v", i, point.ID, err)
		}

		recordID, _ := point.Meta["record_id"].(string)
		if !strings.HasPrefix(recordID, "report::v2::chunk-") {
			t.Errorf("point %d record_id = %q, want report::v2::chunk-*", i, recordID)
		}

		// lengthEmbedder encodes len(text); a mismatch means vectors and
		// chunks got misaligned during batched embedding.
		text, _ := point.Meta["chunk_text"].(string)
		if len(point.Vec) != 1 || point.Vec[0] != float32(len(text)) {
			t.Errorf("point %d vector %v does not match its chunk text (len %d)", i, point.Vec, len(text))
		}

		if active, _ := point.Meta["is_active"].(bool); !active {
			t.Errorf("point %d is_active = false, want true", i)
		}
	}
}

func TestIngestService_Ingest_DeterministicPointIDs(t *testing.T) {
	path := writeTestDoc(t)

	runOnce := func() []string {
		ctrl := gomock.NewController(t)
		store := vsmocks.NewMockVectorStore(ctrl)
		docs := storagemocks.NewMockDocumentStore(ctrl)

		var ids []string
		store.EXPECT().
			Upsert(gomock.Any(), "documents", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, points []vectorstore.Point) error {
				for _, p := range points {
					ids = append(ids, p.ID)
				}
				return nil
			})
		docs.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

		svc := newTestService(t, lengthEmbedder{}, store, docs)
		if _, err := svc.Ingest(context.Background(), IngestRequest{FilePath: path, DocID: "report", Version: 1}); err != nil {
			t.Fatalf("Ingest() error = %v", err)
		}
		return ids
	}

	first := runOnce()
	second := runOnce()

	if len(first) == 0 || len(first) != len(second) {
		t.Fatalf("point ID counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("point %d ID changed between runs: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestIngestService_Ingest_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  IngestRequest
	}{
		{name: "empty file path", req: IngestRequest{DocID: "d", Version: 1}},
		{name: "empty doc id", req: IngestRequest{FilePath: "/tmp/x.txt", Version: 1}},
		{name: "zero version", req: IngestRequest{FilePath: "/tmp/x.txt", DocID: "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := newTestService(t, lengthEmbedder{}, vsmocks.NewMockVectorStore(ctrl), storagemocks.NewMockDocumentStore(ctrl))

			_, err := svc.Ingest(context.Background(), tt.req)

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("Ingest() error = %v, want ValidationError", err)
			}
		})
	}
}

func TestIngestService_Ingest_PipelineErrorsPassThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := newTestService(t, lengthEmbedder{}, vsmocks.NewMockVectorStore(ctrl), storagemocks.NewMockDocumentStore(ctrl))

	_, err := svc.Ingest(context.Background(), IngestRequest{
		FilePath: filepath.Join(t.TempDir(), "missing.txt"),
		DocID:    "report",
		Version:  1,
	})
	if !errors.Is(err, ingest.ErrFileNotFound) {
		t.Errorf("Ingest() error = %v, want ErrFileNotFound to pass through", err)
	}
}

func TestIngestService_Ingest_EmbedFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := newTestService(t, failingEmbedder{}, vsmocks.NewMockVectorStore(ctrl), storagemocks.NewMockDocumentStore(ctrl))

	_, err := svc.Ingest(context.Background(), IngestRequest{
		FilePath: writeTestDoc(t),
		DocID:    "report",
		Version:  1,
	})
	if err == nil {
		t.Error("Ingest() expected error when embedding fails")
	}
}

func TestIngestService_ActivateVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	docs := storagemocks.NewMockDocumentStore(ctrl)
	docs.EXPECT().SetActive(gomock.Any(), "report", 3).Return(nil)

	svc := newTestService(t, lengthEmbedder{}, vsmocks.NewMockVectorStore(ctrl), docs)

	if err := svc.ActivateVersion(context.Background(), "report", 3); err != nil {
		t.Errorf("ActivateVersion() error = %v", err)
	}
}

func TestIngestService_ActivateVersion_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	docs := storagemocks.NewMockDocumentStore(ctrl)
	docs.EXPECT().SetActive(gomock.Any(), "report", 9).Return(storage.ErrNotFound)

	svc := newTestService(t, lengthEmbedder{}, vsmocks.NewMockVectorStore(ctrl), docs)

	err := svc.ActivateVersion(context.Background(), "report", 9)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ActivateVersion() error = %v, want ErrNotFound", err)
	}
}

func TestIngestService_ListDocuments(t *testing.T) {
	ctrl := gomock.NewController(t)
	docs := storagemocks.NewMockDocumentStore(ctrl)
	docs.EXPECT().ListAll(gomock.Any()).Return([]*storage.Document{
		{DocID: "report", Version: 1, IsActive: true},
	}, nil)

	svc := newTestService(t, lengthEmbedder{}, vsmocks.NewMockVectorStore(ctrl), docs)

	list, err := svc.ListDocuments(context.Background())
	if err != nil {
		t.Fatalf("ListDocuments() error = %v", err)
	}
	if len(list) != 1 || list[0].DocID != "report" {
		t.Errorf("ListDocuments() = %+v, want one report row", list)
	}
}
