// Package storage persists the snippet collection as a single JSON file.
//
// The file holds one JSON array of snippet objects; every mutating
// operation reads the full collection, changes it in memory, and writes
// the whole file back atomically (temp file + rename). One store
// instance per path, one operation at a time; concurrent external
// writers are unsupported and the later write wins at whole-file
// granularity.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/xid"

	"github.com/omnisnip/omnisnip/internal/snippet"
)

// SnippetsFile is the name of the backing file inside the store directory.
const SnippetsFile = "snippets.json"

// Store is a snippet collection backed by a JSON file in dir.
// Construct once with New and pass by reference; there is no ambient
// global instance.
type Store struct {
	dir string
}

// New creates a store rooted at dir. The directory is created lazily on
// the first write, not here.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the full path of the snippets file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, SnippetsFile)
}

// readAll loads the full collection in file order.
// A missing file reads as an empty collection (lazy initialization);
// any other failure is an ErrRead.
func (s *Store) readAll() ([]snippet.Snippet, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, readError(fmt.Errorf("reading snippets file: %w", err))
	}

	var snippets []snippet.Snippet
	if err := json.Unmarshal(data, &snippets); err != nil {
		return nil, readError(fmt.Errorf("parsing snippets file: %w", err))
	}

	return snippets, nil
}

// writeAll replaces the backing file with the given collection.
// Writes go to a temp file in the same directory followed by a rename,
// so a crash mid-write never leaves a torn file behind.
func (s *Store) writeAll(snippets []snippet.Snippet) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return directoryError(fmt.Errorf("creating storage directory: %w", err))
	}

	if snippets == nil {
		snippets = []snippet.Snippet{}
	}

	data, err := json.MarshalIndent(snippets, "", "  ")
	if err != nil {
		return writeError(fmt.Errorf("encoding snippets: %w", err))
	}

	tmpFile, err := os.CreateTemp(s.dir, ".tmp-*.json")
	if err != nil {
		return writeError(fmt.Errorf("creating temp file: %w", err))
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on error
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return writeError(fmt.Errorf("writing snippets: %w", err))
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return writeError(fmt.Errorf("syncing temp file: %w", err))
	}
	if err := tmpFile.Close(); err != nil {
		return writeError(fmt.Errorf("closing temp file: %w", err))
	}

	if err := os.Rename(tmpPath, s.Path()); err != nil {
		return writeError(fmt.Errorf("renaming temp file: %w", err))
	}

	success = true
	return nil
}

// Add creates a snippet from in, appends it to the collection, and
// persists the whole collection. The identifier and both timestamps are
// generated here; createdAt == updatedAt at creation.
func (s *Store) Add(in snippet.CreateInput) (*snippet.Snippet, error) {
	snippets, err := s.readAll()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := snippet.Snippet{
		ID:          xid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Code:        in.Code,
		Language:    in.Language,
		Category:    in.Category,
		Tags:        in.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
		Favorite:    in.Favorite,
	}
	if created.Tags == nil {
		created.Tags = []string{}
	}

	snippets = append(snippets, created)
	if err := s.writeAll(snippets); err != nil {
		return nil, err
	}

	return &created, nil
}

// GetAll returns the full collection in file order.
// A store pointed at a fresh, never-written directory returns an empty
// slice, not an error.
func (s *Store) GetAll() ([]snippet.Snippet, error) {
	snippets, err := s.readAll()
	if err != nil {
		return nil, err
	}
	if snippets == nil {
		snippets = []snippet.Snippet{}
	}
	return snippets, nil
}

// GetByID returns the first snippet with the given identifier, or
// nil (with a nil error) if no snippet matches.
func (s *Store) GetByID(id string) (*snippet.Snippet, error) {
	snippets, err := s.readAll()
	if err != nil {
		return nil, err
	}

	for i := range snippets {
		if snippets[i].ID == id {
			return &snippets[i], nil
		}
	}
	return nil, nil
}

// Update applies a partial update to the snippet with the given
// identifier and persists the collection with the record replaced in
// place. Returns nil (with a nil error) if no snippet matches. Fields
// absent from in keep their prior value; ID and CreatedAt never change;
// UpdatedAt is set to now.
func (s *Store) Update(id string, in snippet.UpdateInput) (*snippet.Snippet, error) {
	snippets, err := s.readAll()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range snippets {
		if snippets[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, nil
	}

	in.Apply(&snippets[idx], time.Now().UTC())

	if err := s.writeAll(snippets); err != nil {
		return nil, err
	}

	updated := snippets[idx]
	return &updated, nil
}

// Delete removes the first snippet with the given identifier.
// Returns true and persists the filtered collection if a removal
// occurred, false (with a nil error) if no snippet matched.
func (s *Store) Delete(id string) (bool, error) {
	snippets, err := s.readAll()
	if err != nil {
		return false, err
	}

	idx := -1
	for i := range snippets {
		if snippets[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}

	snippets = append(snippets[:idx], snippets[idx+1:]...)
	if err := s.writeAll(snippets); err != nil {
		return false, err
	}

	return true, nil
}

// DeleteAll persists an empty collection unconditionally.
func (s *Store) DeleteAll() error {
	return s.writeAll([]snippet.Snippet{})
}

// Filter returns the snippets matching f, sorted per f's sort criteria.
func (s *Store) Filter(f snippet.Filter) ([]snippet.Snippet, error) {
	snippets, err := s.readAll()
	if err != nil {
		return nil, err
	}
	return snippet.Select(snippets, f), nil
}

// Search is a convenience wrapper: equivalent to Filter with only the
// query criterion set.
func (s *Store) Search(text string) ([]snippet.Snippet, error) {
	return s.Filter(snippet.Filter{Query: text})
}

// Count returns the number of snippets in the collection.
func (s *Store) Count() (int, error) {
	snippets, err := s.readAll()
	if err != nil {
		return 0, err
	}
	return len(snippets), nil
}
