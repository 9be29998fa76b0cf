// Package store provides read-only, slug-addressed access to the content
// corpus. It is the only package that touches the filesystem; everything
// above it works in terms of slugs and document text.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docserve/internal/slug"
)

// DocExtension is the file extension of content documents.
const DocExtension = ".md"

// Document is an unexpanded document as read from storage. It is owned
// transiently by the caller; the store does not cache it.
type Document struct {
	Slug slug.Slug

	// Text is the raw file content, frontmatter included.
	Text []byte

	// Identity is a stable content fingerprint, usable as an HTTP ETag.
	// It changes whenever the document's frontmatter or body changes.
	Identity string
}

// Entry is one immediate child of a directory slug, in listing order.
type Entry struct {
	Name  string
	IsDir bool
}

// ContentStore resolves slugs to documents and directory listings.
type ContentStore interface {
	// Read returns the document at s, or NotFoundError.
	Read(ctx context.Context, s slug.Slug) (*Document, error)

	// ListChildren returns the ordered immediate children of the directory
	// at s. Hidden entries are excluded. Fails with NotFoundError when
	// nothing exists at s and NotDirectoryError when s addresses a document.
	ListChildren(ctx context.Context, s slug.Slug) ([]Entry, error)
}

// NotFoundError indicates no document or directory exists at the slug.
type NotFoundError struct {
	Slug slug.Slug
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("content not found: %q", e.Slug.String())
}

// NotDirectoryError indicates a directory operation on a document slug.
type NotDirectoryError struct {
	Slug slug.Slug
}

func (e *NotDirectoryError) Error() string {
	return fmt.Sprintf("not a directory: %q", e.Slug.String())
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsNotDirectory reports whether err is a NotDirectoryError.
func IsNotDirectory(err error) bool {
	var nd *NotDirectoryError
	return errors.As(err, &nd)
}

// IsDocumentName reports whether a directory entry name is a content
// document.
func IsDocumentName(name string) bool {
	return strings.HasSuffix(name, DocExtension)
}

// DocumentName strips the document extension from an entry name.
func DocumentName(name string) string {
	return strings.TrimSuffix(name, DocExtension)
}

// IsHiddenName reports whether an entry name is excluded from listings.
func IsHiddenName(name string) bool {
	return strings.HasPrefix(name, ".")
}
