package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/medassist/medassist-backend/internal/entity"
	"go.uber.org/zap"
)

type fakeEmbedder struct {
	failOn map[string]bool
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.failOn[text] {
		return nil, errors.New("embedding failed")
	}
	return []float32{float32(len(text))}, nil
}

type fakeStore struct {
	uploaded []entity.Chunk
	err      error
}

func (f *fakeStore) UploadDocuments(ctx context.Context, chunks []entity.Chunk) error {
	if f.err != nil {
		return f.err
	}
	f.uploaded = append(f.uploaded, chunks...)
	return nil
}

func TestIngestText(t *testing.T) {
	store := &fakeStore{}
	uc := NewUsecase(&fakeEmbedder{}, store, zap.NewNop())

	uploaded, skipped, err := uc.ingestText(context.Background(), zap.NewNop(), "pdfs/who.pdf",
		"Patients with diabetes should follow a balanced diet and stay active.",
		"WHO", 2024)
	if err != nil {
		t.Fatalf("ingestText() error = %v", err)
	}
	if uploaded != 1 || skipped != 0 {
		t.Fatalf("ingestText() = (%d uploaded, %d skipped), want (1, 0)", uploaded, skipped)
	}

	chunk := store.uploaded[0]
	if chunk.ID != SafeID("pdfs/who.pdf", 0) {
		t.Errorf("chunk id = %q, want %q", chunk.ID, SafeID("pdfs/who.pdf", 0))
	}
	if chunk.Source != "WHO" || chunk.Year != 2024 {
		t.Errorf("chunk metadata = %q/%d, want WHO/2024", chunk.Source, chunk.Year)
	}
	if len(chunk.Embedding) == 0 {
		t.Error("chunk uploaded without embedding")
	}
}

func TestIngestText_EmptyText(t *testing.T) {
	store := &fakeStore{}
	uc := NewUsecase(&fakeEmbedder{}, store, zap.NewNop())

	uploaded, skipped, err := uc.ingestText(context.Background(), zap.NewNop(), "pdfs/blank.pdf", "   \n", "WHO", 2024)
	if err != nil {
		t.Fatalf("ingestText() error = %v", err)
	}
	if uploaded != 0 || skipped != 0 {
		t.Errorf("ingestText() = (%d, %d), want (0, 0)", uploaded, skipped)
	}
	if len(store.uploaded) != 0 {
		t.Errorf("store received %d chunks for empty text", len(store.uploaded))
	}
}

func TestIngestText_SkipsFailedEmbeddings(t *testing.T) {
	text := "Patients should limit sodium."
	store := &fakeStore{}
	uc := NewUsecase(&fakeEmbedder{failOn: map[string]bool{text: true}}, store, zap.NewNop())

	uploaded, skipped, err := uc.ingestText(context.Background(), zap.NewNop(), "pdfs/who.pdf", text, "WHO", 2024)
	if err != nil {
		t.Fatalf("ingestText() error = %v", err)
	}
	if uploaded != 0 || skipped != 1 {
		t.Errorf("ingestText() = (%d uploaded, %d skipped), want (0, 1)", uploaded, skipped)
	}
	if len(store.uploaded) != 0 {
		t.Errorf("store received %d chunks despite embedding failure", len(store.uploaded))
	}
}

func TestIngestText_UploadFailure(t *testing.T) {
	storeErr := errors.New("index rejected batch")
	uc := NewUsecase(&fakeEmbedder{}, &fakeStore{err: storeErr}, zap.NewNop())

	_, _, err := uc.ingestText(context.Background(), zap.NewNop(), "pdfs/who.pdf", "Patients should limit sodium.", "WHO", 2024)
	if !errors.Is(err, storeErr) {
		t.Errorf("ingestText() error = %v, want %v", err, storeErr)
	}
}

func TestIngestDirectory_MissingDirectory(t *testing.T) {
	uc := NewUsecase(&fakeEmbedder{}, &fakeStore{}, zap.NewNop())

	_, err := uc.IngestDirectory(context.Background(), "does-not-exist", "WHO", 2024)
	if err == nil {
		t.Error("IngestDirectory() on missing directory returned nil error")
	}
}

func TestIngestDirectory_IgnoresNonPDFs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "not a pdf")
	writeFile(t, dir, "README.md", "also not a pdf")

	store := &fakeStore{}
	uc := NewUsecase(&fakeEmbedder{}, store, zap.NewNop())

	report, err := uc.IngestDirectory(context.Background(), dir, "WHO", 2024)
	if err != nil {
		t.Fatalf("IngestDirectory() error = %v", err)
	}
	if report.Files != 0 || report.ChunksUploaded != 0 {
		t.Errorf("report = %+v, want no files processed", report)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
