package tripmap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ViewportStore persists the camera per trip so the map reopens where the
// viewer left it.
type ViewportStore interface {
	Load(tripId string) (Viewport, bool)
	Save(tripId string, v Viewport) error
}

// FileViewportStore keeps one JSON file per trip under the user cache
// directory, the client-side counterpart of the browser's local storage.
type FileViewportStore struct {
	dir string
}

func NewFileViewportStore() (*FileViewportStore, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("resolving cache dir: %w", err)
	}
	dir := filepath.Join(cacheDir, "trackmate", "views")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating view store dir: %w", err)
	}
	return &FileViewportStore{dir: dir}, nil
}

// NewFileViewportStoreAt uses an explicit directory. Used in tests.
func NewFileViewportStoreAt(dir string) *FileViewportStore {
	return &FileViewportStore{dir: dir}
}

func (s *FileViewportStore) Load(tripId string) (Viewport, bool) {
	data, err := os.ReadFile(s.path(tripId))
	if err != nil {
		return Viewport{}, false
	}
	var v Viewport
	if err := json.Unmarshal(data, &v); err != nil {
		return Viewport{}, false
	}
	return v, true
}

func (s *FileViewportStore) Save(tripId string, v Viewport) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(tripId), data, 0o644)
}

func (s *FileViewportStore) path(tripId string) string {
	return filepath.Join(s.dir, "tripMapView_"+tripId+".json")
}
