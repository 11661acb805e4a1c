package buffer

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "appends.db"), "appends")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_EnqueueAndDrainOrder(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"first", "second", "third"} {
		item := Item{
			ID:        id,
			TaskID:    "t1",
			Entity:    EntityComment,
			Data:      json.RawMessage(`{}`),
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}
		if err := store.Enqueue(item); err != nil {
			t.Fatalf("enqueue %s: %v", id, err)
		}
	}

	items, err := store.GetBatch(10)
	if err != nil {
		t.Fatalf("get batch: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, want := range []string{"first", "second", "third"} {
		if items[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, items[i].ID)
		}
	}
}

func TestStore_RemoveAndSize(t *testing.T) {
	store := openTestStore(t)

	if err := store.Enqueue(Item{ID: "a", Entity: EntityAttachment, Data: json.RawMessage(`{}`)}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	size, err := store.Size()
	if err != nil || size != 1 {
		t.Fatalf("expected size 1, got %d (err %v)", size, err)
	}

	items, _ := store.GetBatch(1)
	if err := store.Remove(items[0]); err != nil {
		t.Fatalf("remove: %v", err)
	}

	size, _ = store.Size()
	if size != 0 {
		t.Errorf("expected empty store after remove, got %d", size)
	}
}

func TestStore_CleanupDropsOldItems(t *testing.T) {
	store := openTestStore(t)
	old := time.Now().Add(-48 * time.Hour)

	if err := store.Enqueue(Item{ID: "stale", Entity: EntityComment, Data: json.RawMessage(`{}`), Timestamp: old}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if err := store.Enqueue(Item{ID: "fresh", Entity: EntityComment, Data: json.RawMessage(`{}`)}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if err := store.Cleanup(time.Now().Add(-24 * time.Hour)); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	items, _ := store.GetBatch(10)
	if len(items) != 1 || items[0].ID != "fresh" {
		t.Fatalf("expected only the fresh item to survive, got %+v", items)
	}
}
