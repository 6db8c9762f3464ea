package sheetcapture

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
)

// DefaultURLStorePath is where the CLI keeps saved sheet URLs.
const DefaultURLStorePath = ".urls.json"

// URLStore persists a name -> URL map as a small JSON file so frequently
// captured sheets can be addressed by name instead of a full URL.
type URLStore struct {
	path string
}

// NewURLStore creates a store backed by the given file path.
// An empty path uses DefaultURLStorePath.
func NewURLStore(path string) *URLStore {
	if path == "" {
		path = DefaultURLStorePath
	}
	return &URLStore{path: path}
}

// Load reads all saved URLs. A missing file is an empty store, not an error.
func (s *URLStore) Load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read URL store %q: %w", s.path, err)
	}

	urls := map[string]string{}
	if err := json.Unmarshal(data, &urls); err != nil {
		return nil, fmt.Errorf("failed to parse URL store %q: %w", s.path, err)
	}
	return urls, nil
}

// Save adds or replaces one named URL and writes the store back to disk.
func (s *URLStore) Save(name, sheetURL string) error {
	urls, err := s.Load()
	if err != nil {
		return err
	}
	urls[name] = sheetURL

	data, err := json.MarshalIndent(urls, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode URL store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write URL store %q: %w", s.path, err)
	}
	return nil
}

// Lookup returns the URL saved under name.
func (s *URLStore) Lookup(name string) (string, bool, error) {
	urls, err := s.Load()
	if err != nil {
		return "", false, err
	}
	u, ok := urls[name]
	return u, ok, nil
}

// Names returns all saved names in sorted order.
func (s *URLStore) Names() ([]string, error) {
	urls, err := s.Load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(urls))
	for name := range urls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
