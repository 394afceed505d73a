package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store keeps rendered monthly reports as files named reporte_<YYYY-MM>.pdf
// in a single directory.
type Store struct {
	Dir string
}

// OpenStore uses an explicit directory, creating it if needed
func OpenStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating report directory %s: %w", dir, err)
	}
	return &Store{Dir: dir}, nil
}

// NewStore picks the report directory: $DATA_DIR, /data, ./data, then the
// working directory, whichever is writable first (probed with a throwaway
// file, since MkdirAll alone can succeed on a read-only mount's existing
// path).
func NewStore() (*Store, error) {
	var candidates []string
	if env := os.Getenv("DATA_DIR"); env != "" {
		candidates = append(candidates, env)
	}
	cwd, _ := os.Getwd()
	candidates = append(candidates, "/data", filepath.Join(cwd, "data"), cwd)

	for _, base := range candidates {
		dir := filepath.Join(base, "reportes_mensuales")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			continue
		}
		probe := filepath.Join(dir, ".rwtest")
		if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
			continue
		}
		os.Remove(probe)
		return &Store{Dir: dir}, nil
	}
	return nil, fmt.Errorf("no writable report directory among %v", candidates)
}

func (s *Store) path(key string) string {
	return filepath.Join(s.Dir, "reporte_"+key+".pdf")
}

// Has reports whether an artifact already exists for the month key
func (s *Store) Has(key string) bool {
	_, err := os.Stat(s.path(key))
	return err == nil
}

// Put persists the rendered report for a month key
func (s *Store) Put(key string, payload []byte) error {
	if err := os.WriteFile(s.path(key), payload, 0o644); err != nil {
		return fmt.Errorf("storing report %s: %w", key, err)
	}
	return nil
}

// Open reads a stored report back
func (s *Store) Open(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w", key, err)
	}
	return data, nil
}

// List returns the stored month keys, newest first
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "reporte_") || !strings.HasSuffix(name, ".pdf") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(strings.TrimPrefix(name, "reporte_"), ".pdf"))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys, nil
}
