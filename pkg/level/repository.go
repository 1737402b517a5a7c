package level

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// ErrNotFound is returned by Lookup for unknown level numbers.
var ErrNotFound = errors.New("level: not found")

// Repository knows how to look up levels by number.
type Repository interface {
	Lookup(n int) (*Level, error)
	List() []*Level
}

// MemoryRepository is an in-memory Repository. Levels added later replace
// earlier ones with the same number.
type MemoryRepository struct {
	mu     sync.RWMutex
	levels map[int]*Level
}

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{levels: make(map[int]*Level)}
}

// Add registers levels.
func (r *MemoryRepository) Add(levels ...*Level) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range levels {
		if l != nil {
			r.levels[l.Number] = l
		}
	}
}

// Lookup implements the Repository interface.
func (r *MemoryRepository) Lookup(n int) (*Level, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if l, ok := r.levels[n]; ok {
		return l, nil
	}
	return nil, fmt.Errorf("%w: level %d", ErrNotFound, n)
}

// List returns every level ordered by number.
func (r *MemoryRepository) List() []*Level {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Level, 0, len(r.levels))
	for _, l := range r.levels {
		out = append(out, l)
	}
	slices.SortFunc(out, func(a, b *Level) int { return a.Number - b.Number })
	return out
}

// Len returns the number of levels.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.levels)
}

// LoadFiles parses the provided pack files and adds their levels.
func (r *MemoryRepository) LoadFiles(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	parser, err := NewParser()
	if err != nil {
		return err
	}
	for _, path := range paths {
		if err := r.loadFile(parser, path); err != nil {
			return err
		}
	}
	return nil
}

// LoadDir recursively loads all .lvl files below root.
func (r *MemoryRepository) LoadDir(root string) error {
	parser, err := NewParser()
	if err != nil {
		return err
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !isPackFile(path) {
			return nil
		}
		return r.loadFile(parser, path)
	})
}

func (r *MemoryRepository) loadFile(parser *Parser, path string) error {
	f, err := parser.ParseFile(path)
	if err != nil {
		return fmt.Errorf("level: parse %s: %w", path, err)
	}
	levels, err := f.Build()
	if err != nil {
		return fmt.Errorf("level: load %s: %w", path, err)
	}
	r.Add(levels...)
	return nil
}

func isPackFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".lvl")
}

//go:embed levels/*.lvl
var packs embed.FS

var (
	defaultOnce sync.Once
	defaultRepo *MemoryRepository
	defaultErr  error
)

// Default returns a repository holding the built-in level pack.
func Default() (*MemoryRepository, error) {
	defaultOnce.Do(func() {
		repo := NewMemoryRepository()
		parser, err := NewParser()
		if err != nil {
			defaultErr = err
			return
		}
		defaultErr = fs.WalkDir(packs, ".", func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil || d.IsDir() {
				return walkErr
			}
			data, err := packs.ReadFile(path)
			if err != nil {
				return err
			}
			f, err := parser.ParseString(string(data))
			if err != nil {
				return fmt.Errorf("level: parse %s: %w", path, err)
			}
			levels, err := f.Build()
			if err != nil {
				return fmt.Errorf("level: load %s: %w", path, err)
			}
			repo.Add(levels...)
			return nil
		})
		defaultRepo = repo
	})
	return defaultRepo, defaultErr
}
