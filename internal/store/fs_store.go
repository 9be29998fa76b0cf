package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/docserve/internal/frontmatter"
	"git.home.luguber.info/inful/docserve/internal/slug"
)

// FSStore is the filesystem-backed ContentStore. A slug ["guide","intro"]
// maps to <root>/guide/intro.md; the same slug as a directory maps to
// <root>/guide/intro.
type FSStore struct {
	root string
}

// NewFSStore creates a store rooted at dir. The directory must exist.
func NewFSStore(dir string) (*FSStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve content dir: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s is not a directory", abs)
	}
	return &FSStore{root: abs}, nil
}

// Root returns the absolute content root directory.
func (fs *FSStore) Root() string { return fs.root }

// Read returns the document at s.
func (fs *FSStore) Read(ctx context.Context, s slug.Slug) (*Document, error) {
	if err := fs.check(ctx, s); err != nil {
		return nil, err
	}
	if s.IsRoot() {
		return nil, &NotFoundError{Slug: s}
	}

	path := fs.documentPath(s)
	// #nosec G304 - path is built from validated slug segments under root
	data, err := os.ReadFile(path)
	if err != nil {
		// ENOTDIR means a regular file occupies a path component; from the
		// caller's view the document equally does not exist.
		if os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR) {
			return nil, &NotFoundError{Slug: s}
		}
		return nil, fmt.Errorf("read %s: %w", s.String(), err)
	}

	return &Document{
		Slug:     s,
		Text:     data,
		Identity: fingerprint(data),
	}, nil
}

// ListChildren returns the ordered immediate children of the directory at s.
func (fs *FSStore) ListChildren(ctx context.Context, s slug.Slug) ([]Entry, error) {
	if err := fs.check(ctx, s); err != nil {
		return nil, err
	}

	dir := fs.directoryPath(s)
	entries, err := os.ReadDir(dir)
	if err != nil {
		// ENOTDIR covers a regular file occupying the slug path or one of
		// its components; degrade to the same client errors as a missing
		// directory instead of a filesystem failure.
		if os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR) {
			if !s.IsRoot() {
				if _, statErr := os.Stat(fs.documentPath(s)); statErr == nil {
					return nil, &NotDirectoryError{Slug: s}
				}
			}
			return nil, &NotFoundError{Slug: s}
		}
		return nil, fmt.Errorf("list %s: %w", s.String(), err)
	}

	// os.ReadDir returns entries sorted by filename, which is the listing
	// order contract.
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if IsHiddenName(name) {
			continue
		}
		out = append(out, Entry{Name: name, IsDir: entry.IsDir()})
	}
	return out, nil
}

// check runs slug validation and context cancellation before any disk access.
// Validation here is defense in depth: slugs arriving from the HTTP layer
// have already been through slug.Parse.
func (fs *FSStore) check(ctx context.Context, s slug.Slug) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.Validate()
}

func (fs *FSStore) documentPath(s slug.Slug) string {
	return filepath.Join(fs.root, filepath.Join([]string(s)...)+DocExtension)
}

func (fs *FSStore) directoryPath(s slug.Slug) string {
	if s.IsRoot() {
		return fs.root
	}
	return filepath.Join(fs.root, filepath.Join([]string(s)...))
}

// fingerprint computes the document identity over frontmatter and body
// parts. Documents with unparseable frontmatter are fingerprinted whole;
// identity must exist even for malformed content.
func fingerprint(content []byte) string {
	fm, body, _, err := frontmatter.Split(content)
	if err != nil {
		return mdfp.CalculateFingerprintFromParts("", string(content))
	}
	return mdfp.CalculateFingerprintFromParts(string(fm), string(body))
}
