package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docserve/internal/doctree"
	derrors "git.home.luguber.info/inful/docserve/internal/errors"
	"git.home.luguber.info/inful/docserve/internal/slug"
	"git.home.luguber.info/inful/docserve/internal/store"
)

func newService(t *testing.T, files map[string]string) *TreeService {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	fs, err := store.NewFSStore(root)
	require.NoError(t, err)
	return NewTreeService(doctree.NewBuilder(fs))
}

func TestGetChildren_EmptyPathIsRoot(t *testing.T) {
	svc := newService(t, map[string]string{
		"home.md":        "hi\n",
		"guide/intro.md": "hi\n",
	})

	entries, err := svc.GetChildren(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, slug.Slug{"guide"}, entries[0].Slug)
	require.Equal(t, slug.Slug{"home"}, entries[1].Slug)
}

func TestGetChildren_InvalidSlugIsValidationError(t *testing.T) {
	svc := newService(t, map[string]string{"home.md": "hi\n"})

	_, err := svc.GetChildren(context.Background(), "../etc")
	require.Error(t, err)
	require.True(t, derrors.IsCategory(err, derrors.CategoryValidation))
}

func TestGetChildren_DocumentSlugIsValidationError(t *testing.T) {
	svc := newService(t, map[string]string{"guide/intro.md": "hi\n"})

	_, err := svc.GetChildren(context.Background(), "guide/intro")
	require.True(t, derrors.IsCategory(err, derrors.CategoryValidation))
}

func TestGetChildren_MissingDirectoryIsNotFound(t *testing.T) {
	svc := newService(t, map[string]string{"home.md": "hi\n"})

	_, err := svc.GetChildren(context.Background(), "nowhere")
	require.True(t, derrors.IsCategory(err, derrors.CategoryNotFound))
}
