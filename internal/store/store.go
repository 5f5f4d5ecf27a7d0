// Package store keeps puzzle inputs on disk as <root>/<year>/<day>.txt.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"aoc-inputs/internal/models"
)

const ext = ".txt"

type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

func (s *Store) Root() string {
	return s.root
}

// Path returns where the input for p lives, whether or not it exists yet.
func (s *Store) Path(p models.Puzzle) string {
	return filepath.Join(s.root, strconv.Itoa(p.Year), strconv.Itoa(p.Day)+ext)
}

// Exists reports whether the input for p is already cached.
func (s *Store) Exists(p models.Puzzle) (bool, error) {
	_, err := os.Stat(s.Path(p))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("checking %s: %w", s.Path(p), err)
}

// Write stores content for p followed by a single newline, creating
// parent directories as needed.
func (s *Store) Write(p models.Puzzle, content string) error {
	path := s.Path(p)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating input dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// List returns every cached puzzle, ordered by year then day.
// Files that don't follow the layout are ignored.
func (s *Store) List() ([]models.Puzzle, error) {
	var out []models.Puzzle
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == s.root {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ext {
			return nil
		}
		year, err := strconv.Atoi(filepath.Base(filepath.Dir(path)))
		if err != nil {
			return nil
		}
		day, err := strconv.Atoi(strings.TrimSuffix(d.Name(), ext))
		if err != nil {
			return nil
		}
		p := models.Puzzle{Year: year, Day: day}
		if p.Valid() {
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.root, err)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Day < out[j].Day
	})
	return out, nil
}
