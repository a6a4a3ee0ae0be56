package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func floatPtr(v float64) *float64 { return &v }

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	sub, err := store.Record(ctx, Submission{
		RequestID:  "req-1",
		MediaID:    "media-1",
		Source:     "/tmp/clip.mp4",
		SourceType: SourceTypeFile,
		Status:     "PROCESSING",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if sub == nil || sub.ID == 0 {
		t.Fatalf("sub = %+v", sub)
	}
	if sub.RequestID != "req-1" || sub.Source != "/tmp/clip.mp4" || sub.SourceType != SourceTypeFile {
		t.Errorf("sub = %+v", sub)
	}
	if sub.Score != nil {
		t.Errorf("Score = %v, want nil", sub.Score)
	}
	if sub.CreatedAt.IsZero() || sub.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}

	missing, err := store.GetByRequestID(ctx, "req-none")
	if err != nil {
		t.Fatalf("GetByRequestID: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing = %+v, want nil", missing)
	}
}

func TestRecordRejectsEmptyRequestID(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.Record(context.Background(), Submission{Source: "x", SourceType: SourceTypeFile}); err == nil {
		t.Fatal("Record accepted empty request id")
	}
}

func TestRecordReplacesExisting(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.Record(ctx, Submission{
		RequestID: "req-1", Source: "a.mp4", SourceType: SourceTypeFile, Status: "PROCESSING",
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Record(ctx, Submission{
		RequestID: "req-1", Source: "a.mp4", SourceType: SourceTypeFile, Status: "ANALYZING",
	}); err != nil {
		t.Fatalf("re-record: %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("Count = %d, want 1", count)
	}

	sub, err := store.GetByRequestID(ctx, "req-1")
	if err != nil {
		t.Fatal(err)
	}
	if sub.Status != "ANALYZING" {
		t.Fatalf("Status = %q", sub.Status)
	}
}

func TestUpdateOutcome(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.Record(ctx, Submission{
		RequestID: "req-1", Source: "a.mp4", SourceType: SourceTypeFile, Status: "PROCESSING",
	}); err != nil {
		t.Fatal(err)
	}

	if err := store.UpdateOutcome(ctx, "req-1", "MANIPULATED", floatPtr(0.978)); err != nil {
		t.Fatalf("UpdateOutcome: %v", err)
	}

	sub, err := store.GetByRequestID(ctx, "req-1")
	if err != nil {
		t.Fatal(err)
	}
	if sub.Status != "MANIPULATED" {
		t.Errorf("Status = %q", sub.Status)
	}
	if sub.Score == nil || *sub.Score != 0.978 {
		t.Errorf("Score = %v", sub.Score)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"req-1", "req-2", "req-3"} {
		if _, err := store.Record(ctx, Submission{
			RequestID: id, Source: id + ".mp4", SourceType: SourceTypeFile, Status: "PROCESSING",
		}); err != nil {
			t.Fatal(err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	subs, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(subs) != 3 {
		t.Fatalf("len = %d", len(subs))
	}
	if subs[0].RequestID != "req-3" || subs[2].RequestID != "req-1" {
		t.Errorf("order = %q, %q, %q", subs[0].RequestID, subs[1].RequestID, subs[2].RequestID)
	}

	limited, err := store.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Fatalf("limited len = %d", len(limited))
	}
}

func TestListByBatch(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"req-1", "req-2"} {
		batch := "batch-a"
		if i == 1 {
			batch = "batch-b"
		}
		if _, err := store.Record(ctx, Submission{
			RequestID: id, Source: id + ".mp4", SourceType: SourceTypeFile,
			BatchID: batch, Status: "PROCESSING",
		}); err != nil {
			t.Fatal(err)
		}
	}

	subs, err := store.ListByBatch(ctx, "batch-a")
	if err != nil {
		t.Fatalf("ListByBatch: %v", err)
	}
	if len(subs) != 1 || subs[0].RequestID != "req-1" {
		t.Fatalf("subs = %+v", subs)
	}
}

func TestClear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"req-1", "req-2"} {
		if _, err := store.Record(ctx, Submission{
			RequestID: id, Source: "x", SourceType: SourceTypeSocial, Status: "PROCESSING",
		}); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d", removed)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("Count = %d", count)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Record(context.Background(), Submission{
		RequestID: "req-1", Source: "x", SourceType: SourceTypeFile, Status: "PROCESSING",
	}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	sub, err := reopened.GetByRequestID(context.Background(), "req-1")
	if err != nil {
		t.Fatal(err)
	}
	if sub == nil {
		t.Fatal("record lost across reopen")
	}
}
