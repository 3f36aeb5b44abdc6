package records

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"setupvault/internal/fileutil"
	"setupvault/internal/textutil"
)

// Store maps records to durable Markdown files under a root directory,
// partitioned by entry kind then source.
type Store struct {
	root string
}

// NewStore creates a record store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// Root returns the records-tree root directory.
func (s *Store) Root() string {
	return s.root
}

// RecordPath returns the deterministic file path for a record. The name is
// derived from the source, a slug of the title, and the id, so two records
// can never collide.
func (s *Store) RecordPath(record *Record) string {
	name := fmt.Sprintf("%s-%s-%s.md", record.Source, textutil.Slug(record.Title), record.ID)
	return filepath.Join(s.root, record.Kind.Dir(), record.Source, name)
}

// Write persists a record with a crash-safe atomic replace.
func (s *Store) Write(record *Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	data, err := Render(record)
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(s.RecordPath(record), data, 0o644)
}

// Read loads a single record file, aborting with a CorruptError when the
// file fails to parse.
func (s *Store) Read(path string) (*Record, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read record %s: %w", path, err)
	}
	return Parse(path, contents)
}

// List loads every record in the tree, ordered by source then title.
// Unparseable files are collected as CorruptErrors so bulk callers can
// report each offending file and continue with the rest.
func (s *Store) List() ([]*Record, []*CorruptError, error) {
	var (
		result  []*Record
		corrupt []*CorruptError
	)
	err := s.walk(func(path string) error {
		record, err := s.Read(path)
		if err != nil {
			var corruptErr *CorruptError
			if errors.As(err, &corruptErr) {
				corrupt = append(corrupt, corruptErr)
				return nil
			}
			return err
		}
		result = append(result, record)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Source != result[j].Source {
			return result[i].Source < result[j].Source
		}
		return result[i].Title < result[j].Title
	})
	return result, corrupt, nil
}

// Find locates a record by id or unique id prefix. Returns nil and an
// empty path when nothing matches, and an error when a prefix matches more
// than one record. A file that fails to parse while searching is skipped;
// only its header would identify it, and the caller asked for a specific id.
func (s *Store) Find(id string) (*Record, string, error) {
	var (
		found     *Record
		foundPath string
	)
	err := s.walk(func(path string) error {
		// The id is embedded in the filename; cheap filter before parsing.
		if !strings.Contains(filepath.Base(path), id) {
			return nil
		}
		record, err := s.Read(path)
		if err != nil {
			var corruptErr *CorruptError
			if errors.As(err, &corruptErr) {
				return nil
			}
			return err
		}
		if !strings.HasPrefix(record.ID, id) {
			return nil
		}
		if found != nil && found.ID != record.ID {
			return fmt.Errorf("record id %q is ambiguous", id)
		}
		found = record
		foundPath = path
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return found, foundPath, nil
}

// Remove deletes a record's file. Reports whether the record existed.
func (s *Store) Remove(id string) (bool, error) {
	_, path, err := s.Find(id)
	if err != nil {
		return false, err
	}
	if path == "" {
		return false, nil
	}
	if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("remove record %s: %w", path, err)
	}
	return true, nil
}

// Export copies every record file verbatim into dst, preserving the
// kind/source tree. Each file lands via the same temp+rename discipline as
// a normal write, so an interrupted export never leaves partial files.
func (s *Store) Export(dst string) (int, error) {
	count := 0
	err := s.walk(func(path string) error {
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return fmt.Errorf("relativize %s: %w", path, err)
		}
		target := filepath.Join(dst, rel)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
		tmp := target + ".tmp"
		if err := fileutil.CopyFileVerified(path, tmp); err != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("copy record %s: %w", path, err)
		}
		if err := os.Rename(tmp, target); err != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("place record %s: %w", target, err)
		}
		count++
		return nil
	})
	if err != nil {
		return count, err
	}
	return count, nil
}

func (s *Store) walk(fn func(path string) error) error {
	if _, err := os.Stat(s.root); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return filepath.WalkDir(s.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}
		return fn(path)
	})
}
