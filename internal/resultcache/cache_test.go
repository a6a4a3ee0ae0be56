package resultcache

import (
	"os"
	"path/filepath"
	"testing"

	"verilens/detection"
	"verilens/internal/logging"
)

func floatPtr(v float64) *float64 { return &v }

func newTestCache(t *testing.T) (*Cache, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.json")
	return NewCache(path, logging.NewNop()), path
}

func terminalResult(id string) detection.Result {
	return detection.Result{
		RequestID: id,
		Status:    detection.StatusManipulated,
		Score:     floatPtr(0.978),
		Models: []detection.ModelResult{
			{Name: "visual", Status: detection.StatusManipulated, Score: floatPtr(0.978)},
		},
	}
}

func TestStoreAndLookup(t *testing.T) {
	cache, _ := newTestCache(t)

	if _, found := cache.Lookup("req-1"); found {
		t.Fatal("lookup hit on empty cache")
	}

	if err := cache.Store(terminalResult("req-1")); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, found := cache.Lookup("req-1")
	if !found {
		t.Fatal("lookup miss after store")
	}
	if got.Status != detection.StatusManipulated || got.Score == nil || *got.Score != 0.978 {
		t.Fatalf("cached result = %+v", got)
	}
	if len(got.Models) != 1 || got.Models[0].Name != "visual" {
		t.Fatalf("cached models = %+v", got.Models)
	}
}

func TestStoreRejectsNonTerminal(t *testing.T) {
	cache, _ := newTestCache(t)

	for _, status := range []string{detection.StatusAnalyzing, detection.StatusProcessing} {
		err := cache.Store(detection.Result{RequestID: "req-1", Status: status})
		if err == nil {
			t.Errorf("Store accepted %q", status)
		}
	}
	if _, found := cache.Lookup("req-1"); found {
		t.Fatal("non-terminal result was cached")
	}
}

func TestStoreRejectsEmptyRequestID(t *testing.T) {
	cache, _ := newTestCache(t)
	if err := cache.Store(detection.Result{Status: "AUTHENTIC"}); err == nil {
		t.Fatal("Store accepted empty request id")
	}
}

func TestCacheSurvivesReload(t *testing.T) {
	cache, path := newTestCache(t)
	if err := cache.Store(terminalResult("req-1")); err != nil {
		t.Fatalf("Store: %v", err)
	}

	reloaded := NewCache(path, logging.NewNop())
	if _, found := reloaded.Lookup("req-1"); !found {
		t.Fatal("entry lost across reload")
	}
	if reloaded.Count() != 1 {
		t.Fatalf("Count = %d", reloaded.Count())
	}
}

func TestClear(t *testing.T) {
	cache, path := newTestCache(t)
	if err := cache.Store(terminalResult("req-1")); err != nil {
		t.Fatal(err)
	}
	if err := cache.Store(terminalResult("req-2")); err != nil {
		t.Fatal(err)
	}

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if cache.Count() != 0 {
		t.Fatalf("Count = %d after clear", cache.Count())
	}

	reloaded := NewCache(path, logging.NewNop())
	if reloaded.Count() != 0 {
		t.Fatal("clear did not persist")
	}
}

func TestDisabledCacheIsNoop(t *testing.T) {
	cache := NewCache("", logging.NewNop())

	if err := cache.Store(terminalResult("req-1")); err != nil {
		t.Fatalf("Store on disabled cache: %v", err)
	}
	if _, found := cache.Lookup("req-1"); found {
		t.Fatal("disabled cache returned a hit")
	}
	if cache.List() != nil || cache.Count() != 0 {
		t.Fatal("disabled cache reports entries")
	}
	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear on disabled cache: %v", err)
	}
}

func TestCorruptCacheFileIsIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	cache := NewCache(path, logging.NewNop())
	if cache.Count() != 0 {
		t.Fatal("corrupt file produced entries")
	}
	if err := cache.Store(terminalResult("req-1")); err != nil {
		t.Fatalf("Store after corrupt load: %v", err)
	}
}
