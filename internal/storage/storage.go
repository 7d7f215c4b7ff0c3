package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/llGaetanll/McUtils/pkg/search"
	"github.com/llGaetanll/McUtils/pkg/world"
)

// Storage handles file-based persistence of search results.
type Storage struct {
	dir string
	log *slog.Logger
}

// New creates a new Storage rooted at dir, creating subdirectories as needed.
func New(dir string, log *slog.Logger) (*Storage, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	d := filepath.Join(dir, "results")
	if err := os.MkdirAll(d, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", d, err)
	}
	return &Storage{dir: dir, log: log}, nil
}

// ResultPath is where the result for seed over [start, end] is kept.
func (s *Storage) ResultPath(seed int64, start, end world.ChunkPos) string {
	name := fmt.Sprintf("%d_%d_%d_%d_%d.json", seed, start.X, start.Z, end.X, end.Z)
	return filepath.Join(s.dir, "results", name)
}

// SaveResult writes the outcome of a search over [start, end] atomically.
func (s *Storage) SaveResult(start, end world.ChunkPos, w search.Window, res search.Result) error {
	rf := NewResultFile(start, end, w, res)
	path := s.ResultPath(res.Seed, start, end)
	if err := s.atomicWriteJSON(path, rf); err != nil {
		return err
	}
	s.log.Info("saved result", "path", path, "count", res.Count)
	return nil
}

// LoadResult reads a saved result, or returns nil if none exists.
func (s *Storage) LoadResult(seed int64, start, end world.ChunkPos) (*ResultFile, error) {
	path := s.ResultPath(seed, start, end)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read result %s: %w", path, err)
	}

	var rf ResultFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse result %s: %w", path, err)
	}
	return &rf, nil
}

// ListResults returns every saved result, densest first.
func (s *Storage) ListResults() ([]ResultFile, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, "results"))
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	var out []ResultFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, "results", e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read result %s: %w", path, err)
		}
		var rf ResultFile
		if err := json.Unmarshal(data, &rf); err != nil {
			s.log.Warn("skipping unreadable result", "path", path, "error", err)
			continue
		}
		out = append(out, rf)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Result.Count > out[j].Result.Count
	})
	return out, nil
}

// atomicWriteJSON marshals v to JSON and writes it atomically using a temp file + rename.
func (s *Storage) atomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
