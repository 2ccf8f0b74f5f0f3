package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/omnisnip/omnisnip/internal/snippet"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir())
}

func addSnippet(t *testing.T, s *Store, title string) *snippet.Snippet {
	t.Helper()
	created, err := s.Add(snippet.CreateInput{
		Title:       title,
		Description: "test description",
		Code:        "test code",
		Language:    snippet.LangGo,
		Category:    snippet.CategorySnippet,
	})
	if err != nil {
		t.Fatalf("Add(%q) error = %v", title, err)
	}
	return created
}

func TestAdd_GeneratesUniqueIDs(t *testing.T) {
	store := newTestStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		created := addSnippet(t, store, "dup title")
		if created.ID == "" {
			t.Fatal("Add() returned empty ID")
		}
		if seen[created.ID] {
			t.Fatalf("Add() returned duplicate ID %q", created.ID)
		}
		seen[created.ID] = true
	}
}

func TestAdd_SetsTimestampsAndDefaults(t *testing.T) {
	store := newTestStore(t)

	created, err := store.Add(snippet.CreateInput{
		Title:       "defaults",
		Description: "d",
		Code:        "c",
		Language:    snippet.LangShell,
		Category:    snippet.CategoryCommand,
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if created.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Errorf("CreatedAt %v != UpdatedAt %v at creation", created.CreatedAt, created.UpdatedAt)
	}
	if created.Tags == nil || len(created.Tags) != 0 {
		t.Errorf("Tags = %v, want empty slice", created.Tags)
	}
	if created.Favorite {
		t.Error("Favorite should default to false")
	}
}

func TestAdd_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	created, err := store.Add(snippet.CreateInput{
		Title:       "round trip",
		Description: "desc",
		Code:        "fmt.Println(\"hi\")",
		Language:    snippet.LangGo,
		Category:    snippet.CategoryFunction,
		Tags:        []string{"fmt", "fmt"}, // duplicates preserved verbatim
		Favorite:    true,
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, err := store.GetByID(created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetByID() returned nil for freshly added snippet")
	}

	if !got.CreatedAt.Equal(created.CreatedAt) || !got.UpdatedAt.Equal(created.UpdatedAt) {
		t.Errorf("timestamps differ after round trip: %v vs %v", got, created)
	}
	got.CreatedAt, got.UpdatedAt = created.CreatedAt, created.UpdatedAt
	if !reflect.DeepEqual(*got, *created) {
		t.Errorf("GetByID() = %+v, want %+v", *got, *created)
	}
	if len(got.Tags) != 2 {
		t.Errorf("duplicate tags not preserved: %v", got.Tags)
	}
}

func TestGetAll_FreshDirectoryIsEmpty(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "never-written"))

	snippets, err := store.GetAll()
	if err != nil {
		t.Fatalf("GetAll() on fresh directory error = %v", err)
	}
	if len(snippets) != 0 {
		t.Errorf("GetAll() = %d snippets, want 0", len(snippets))
	}
}

func TestGetAll_PreservesInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	first := addSnippet(t, store, "first")
	second := addSnippet(t, store, "second")
	third := addSnippet(t, store, "third")

	all, err := store.GetAll()
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("GetAll() = %d snippets, want 3", len(all))
	}
	if all[0].ID != first.ID || all[1].ID != second.ID || all[2].ID != third.ID {
		t.Errorf("order = [%s %s %s], want insertion order", all[0].ID, all[1].ID, all[2].ID)
	}
}

func TestGetAll_CorruptFile(t *testing.T) {
	store := newTestStore(t)

	if err := os.WriteFile(store.Path(), []byte("{not valid json"), 0644); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}

	_, err := store.GetAll()
	if err == nil {
		t.Fatal("GetAll() on corrupt file should error")
	}
	if !errors.Is(err, ErrRead) {
		t.Errorf("GetAll() error = %v, want ErrRead", err)
	}
}

func TestGetByID_NotFoundIsNilNotError(t *testing.T) {
	store := newTestStore(t)
	addSnippet(t, store, "present")

	got, err := store.GetByID("no-such-id")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetByID() = %+v, want nil", got)
	}
}

func TestUpdate_PartialKeepsUnspecifiedFields(t *testing.T) {
	store := newTestStore(t)

	created, err := store.Add(snippet.CreateInput{
		Title:       "original",
		Description: "original description",
		Code:        "original code",
		Language:    snippet.LangPython,
		Category:    snippet.CategoryQuery,
		Tags:        []string{"a", "b"},
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	newTitle := "renamed"
	updated, err := store.Update(created.ID, snippet.UpdateInput{Title: &newTitle})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated == nil {
		t.Fatal("Update() returned nil for existing snippet")
	}

	if updated.Title != "renamed" {
		t.Errorf("Title = %q, want %q", updated.Title, "renamed")
	}
	if updated.Description != "original description" || updated.Code != "original code" {
		t.Errorf("unspecified fields changed: %+v", updated)
	}
	if !reflect.DeepEqual(updated.Tags, []string{"a", "b"}) {
		t.Errorf("Tags = %v, want [a b]", updated.Tags)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt changed: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Errorf("UpdatedAt went backwards: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}

	// Position unchanged
	all, err := store.GetAll()
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if all[0].ID != created.ID {
		t.Error("updated snippet moved from its position")
	}
}

func TestUpdate_NotFoundIsNilNotError(t *testing.T) {
	store := newTestStore(t)
	addSnippet(t, store, "present")

	newTitle := "whatever"
	updated, err := store.Update("no-such-id", snippet.UpdateInput{Title: &newTitle})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated != nil {
		t.Errorf("Update() = %+v, want nil", updated)
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	keep := addSnippet(t, store, "keep")
	drop := addSnippet(t, store, "drop")

	// Unknown identifier: false, collection unchanged
	removed, err := store.Delete("no-such-id")
	if err != nil {
		t.Fatalf("Delete(unknown) error = %v", err)
	}
	if removed {
		t.Error("Delete(unknown) = true, want false")
	}
	if count, _ := store.Count(); count != 2 {
		t.Errorf("count after no-op delete = %d, want 2", count)
	}

	// Known identifier: true, length decreases by one
	removed, err = store.Delete(drop.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !removed {
		t.Error("Delete() = false, want true")
	}

	all, err := store.GetAll()
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 1 || all[0].ID != keep.ID {
		t.Errorf("collection after delete = %v", all)
	}
}

func TestDeleteAll_Idempotent(t *testing.T) {
	store := newTestStore(t)
	addSnippet(t, store, "one")
	addSnippet(t, store, "two")

	for i := 0; i < 2; i++ {
		if err := store.DeleteAll(); err != nil {
			t.Fatalf("DeleteAll() call %d error = %v", i+1, err)
		}
		all, err := store.GetAll()
		if err != nil {
			t.Fatalf("GetAll() after DeleteAll error = %v", err)
		}
		if len(all) != 0 {
			t.Errorf("GetAll() after DeleteAll = %d snippets, want 0", len(all))
		}
	}
}

func TestFilter_SortScenario(t *testing.T) {
	store := newTestStore(t)

	// Added in this order with strictly increasing createdAt
	for _, title := range []string{"Zebra", "Apple", "Mango"} {
		addSnippet(t, store, title)
		time.Sleep(2 * time.Millisecond)
	}

	asc, err := store.Filter(snippet.Filter{SortBy: snippet.SortByTitle, SortOrder: snippet.SortAsc})
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if asc[0].Title != "Apple" || asc[1].Title != "Mango" || asc[2].Title != "Zebra" {
		t.Errorf("title asc = [%s %s %s]", asc[0].Title, asc[1].Title, asc[2].Title)
	}

	desc, err := store.Filter(snippet.Filter{SortBy: snippet.SortByCreatedAt, SortOrder: snippet.SortDesc})
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if desc[0].Title != "Mango" || desc[1].Title != "Apple" || desc[2].Title != "Zebra" {
		t.Errorf("createdAt desc = [%s %s %s]", desc[0].Title, desc[1].Title, desc[2].Title)
	}
}

func TestSearch_EquivalentToFilterQuery(t *testing.T) {
	store := newTestStore(t)
	addSnippet(t, store, "HTTP client")
	addSnippet(t, store, "Retry loop")
	addSnippet(t, store, "http server")

	for _, q := range []string{"http", "HTTP", "Http client", "", "loop", "zzz"} {
		fromSearch, err := store.Search(q)
		if err != nil {
			t.Fatalf("Search(%q) error = %v", q, err)
		}
		fromFilter, err := store.Filter(snippet.Filter{Query: q})
		if err != nil {
			t.Fatalf("Filter({Query: %q}) error = %v", q, err)
		}
		if !reflect.DeepEqual(fromSearch, fromFilter) {
			t.Errorf("Search(%q) != Filter(query): %v vs %v", q, fromSearch, fromFilter)
		}
	}
}

func TestWriteAll_LeavesNoTempFiles(t *testing.T) {
	store := newTestStore(t)
	addSnippet(t, store, "one")
	addSnippet(t, store, "two")

	entries, err := os.ReadDir(store.Dir())
	if err != nil {
		t.Fatalf("reading store dir: %v", err)
	}
	for _, e := range entries {
		if e.Name() != SnippetsFile {
			t.Errorf("unexpected file in store dir: %s", e.Name())
		}
	}
}

func TestWriteAll_DirectoryError(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission checks don't apply")
	}

	parent := t.TempDir()
	if err := os.Chmod(parent, 0555); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(parent, 0755) })

	store := New(filepath.Join(parent, "sub"))
	_, err := store.Add(snippet.CreateInput{
		Title:       "t",
		Description: "d",
		Code:        "c",
		Language:    snippet.LangGo,
		Category:    snippet.CategorySnippet,
	})
	if !errors.Is(err, ErrDirectory) {
		t.Errorf("Add() into unwritable parent error = %v, want ErrDirectory", err)
	}
}
