// Package artifact stages output files and publishes them together.
// Every file is rendered to a temporary sibling first; only when all of them
// succeed are they renamed into place, so a failed run leaves no partial output.
package artifact

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	apperrors "benchgraph/internal/errors"
)

// WriteFunc renders one artifact into w
type WriteFunc func(w io.Writer) error

type entry struct {
	path  string
	write WriteFunc
	tmp   string
}

// Set is an ordered batch of files to publish together
type Set struct {
	entries []*entry
}

// NewSet returns an empty set
func NewSet() *Set {
	return &Set{}
}

// Add schedules path to be produced by write. A later Add for the same path
// replaces the earlier one.
func (s *Set) Add(path string, write WriteFunc) {
	for _, e := range s.entries {
		if e.path == path {
			e.write = write
			return
		}
	}
	s.entries = append(s.entries, &entry{path: path, write: write})
}

// Paths returns the destination paths in the order they were added
func (s *Set) Paths() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.path
	}
	return out
}

// Commit renders every file concurrently, then renames them into place.
// On any failure all temporaries are removed and nothing is published.
func (s *Set) Commit(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, e := range s.entries {
		e := e
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tmp, err := stage(e.path, e.write)
			if err != nil {
				return err
			}
			e.tmp = tmp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.cleanup()
		return err
	}

	for i, e := range s.entries {
		if err := os.Rename(e.tmp, e.path); err != nil {
			// already-published files from this batch are rolled back
			for _, done := range s.entries[:i] {
				_ = os.Remove(done.path)
			}
			s.cleanup()
			return apperrors.WriteFailed(e.path, err)
		}
		e.tmp = ""
	}
	return nil
}

func (s *Set) cleanup() {
	for _, e := range s.entries {
		if e.tmp != "" {
			_ = os.Remove(e.tmp)
			e.tmp = ""
		}
	}
}

func stage(path string, write WriteFunc) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", apperrors.WriteFailed(path, err)
	}
	tmp := f.Name()

	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", apperrors.WriteFailed(path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", apperrors.WriteFailed(path, fmt.Errorf("close: %w", err))
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return "", apperrors.WriteFailed(path, err)
	}
	return tmp, nil
}
