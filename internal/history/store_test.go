package history_test

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/DakshC17/reciperecommendation/internal/history"
)

// newTestStore creates a Store backed by a temporary SQLite database.
func newTestStore(t *testing.T) *history.Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := history.NewStore(dbPath)
	if err != nil {
		t.Fatalf("NewStore(%q): %v", dbPath, err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// makeRecord returns a minimal pending Record.
func makeRecord(id string, items ...string) *history.Record {
	now := time.Now().UTC().Truncate(time.Second)
	return &history.Record{
		ID:        id,
		Items:     items,
		Status:    history.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ---------------------------------------------------------------------------
// Store creation
// ---------------------------------------------------------------------------

func TestNewStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "new.db")
	store, err := history.NewStore(dbPath)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestNewStore_InvalidPath(t *testing.T) {
	_, err := history.NewStore("/no/such/dir/test.db")
	if err == nil {
		t.Fatal("expected error for invalid path, got nil")
	}
}

// ---------------------------------------------------------------------------
// Create + Get
// ---------------------------------------------------------------------------

func TestCreateAndGet(t *testing.T) {
	store := newTestStore(t)

	want := makeRecord("abc12345", "apple", "napkins")
	if err := store.Create(want); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.Get("abc12345")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != want.ID {
		t.Errorf("ID = %q, want %q", got.ID, want.ID)
	}
	if len(got.Items) != 2 || got.Items[0] != "apple" || got.Items[1] != "napkins" {
		t.Errorf("Items = %v, want [apple napkins]", got.Items)
	}
	if got.Status != history.StatusPending {
		t.Errorf("Status = %q, want %q", got.Status, history.StatusPending)
	}
	if got.Result != nil {
		t.Errorf("Result = %s, want nil before update", got.Result)
	}
}

func TestGet_Missing(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Get("nope"); err == nil {
		t.Fatal("expected error for unknown id, got nil")
	}
}

func TestCreate_DefaultsStatusToPending(t *testing.T) {
	store := newTestStore(t)

	rec := makeRecord("xyz", "milk")
	rec.Status = ""
	if err := store.Create(rec); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Status != history.StatusPending {
		t.Errorf("Status = %q, want %q", rec.Status, history.StatusPending)
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestUpdate_RoundTripsResult(t *testing.T) {
	store := newTestStore(t)

	rec := makeRecord("r1", "apple")
	if err := store.Create(rec); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rec.Status = history.StatusComplete
	rec.Result = json.RawMessage(`{"filtered_food_items":["apple"],"recipes":["baked apple"]}`)
	if err := store.Update(rec); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := store.Get("r1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != history.StatusComplete {
		t.Errorf("Status = %q, want %q", got.Status, history.StatusComplete)
	}

	var payload struct {
		Recipes []string `json:"recipes"`
	}
	if err := json.Unmarshal(got.Result, &payload); err != nil {
		t.Fatalf("stored result is not valid JSON: %v", err)
	}
	if len(payload.Recipes) != 1 || payload.Recipes[0] != "baked apple" {
		t.Errorf("stored recipes = %v", payload.Recipes)
	}
}

func TestUpdate_RecordsFailureDetail(t *testing.T) {
	store := newTestStore(t)

	rec := makeRecord("r2", "foil")
	if err := store.Create(rec); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rec.Status = history.StatusRejected
	rec.Detail = "No food-related items found."
	if err := store.Update(rec); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := store.Get("r2")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != history.StatusRejected {
		t.Errorf("Status = %q, want %q", got.Status, history.StatusRejected)
	}
	if got.Detail != "No food-related items found." {
		t.Errorf("Detail = %q", got.Detail)
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestList_NewestFirst(t *testing.T) {
	store := newTestStore(t)

	older := makeRecord("old", "apple")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := makeRecord("new", "bread")

	if err := store.Create(older); err != nil {
		t.Fatalf("Create(older): %v", err)
	}
	if err := store.Create(newer); err != nil {
		t.Fatalf("Create(newer): %v", err)
	}

	records, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].ID != "new" || records[1].ID != "old" {
		t.Errorf("order = [%s %s], want [new old]", records[0].ID, records[1].ID)
	}
}

func TestList_Empty(t *testing.T) {
	store := newTestStore(t)

	records, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}
