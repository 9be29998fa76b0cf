package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docserve/internal/slug"
)

// writeFixture lays out a small corpus under a temp dir.
func writeFixture(t *testing.T, files map[string]string) *FSStore {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	fs, err := NewFSStore(root)
	require.NoError(t, err)
	return fs
}

func TestRead_ReturnsTextAndIdentity(t *testing.T) {
	fs := writeFixture(t, map[string]string{
		"home.md": "---\ntitle: Home\n---\nWelcome\n",
	})

	doc, err := fs.Read(context.Background(), slug.Slug{"home"})
	require.NoError(t, err)
	require.Equal(t, []byte("---\ntitle: Home\n---\nWelcome\n"), doc.Text)
	require.NotEmpty(t, doc.Identity)
}

func TestRead_IdentityTracksContent(t *testing.T) {
	fs := writeFixture(t, map[string]string{
		"a.md": "one\n",
		"b.md": "two\n",
		"c.md": "one\n",
	})
	ctx := context.Background()

	a, err := fs.Read(ctx, slug.Slug{"a"})
	require.NoError(t, err)
	b, err := fs.Read(ctx, slug.Slug{"b"})
	require.NoError(t, err)
	c, err := fs.Read(ctx, slug.Slug{"c"})
	require.NoError(t, err)

	require.NotEqual(t, a.Identity, b.Identity)
	require.Equal(t, a.Identity, c.Identity)
}

func TestRead_MissingDocumentIsNotFound(t *testing.T) {
	fs := writeFixture(t, map[string]string{"home.md": "hi\n"})

	_, err := fs.Read(context.Background(), slug.Slug{"nope"})
	require.Error(t, err)
	require.True(t, IsNotFound(err))
}

func TestRead_DirectorySlugIsNotFound(t *testing.T) {
	fs := writeFixture(t, map[string]string{"guide/intro.md": "hi\n"})

	_, err := fs.Read(context.Background(), slug.Slug{"guide"})
	require.True(t, IsNotFound(err))
}

func TestRead_RejectsInvalidSlugBeforeDisk(t *testing.T) {
	fs := writeFixture(t, map[string]string{"home.md": "hi\n"})

	_, err := fs.Read(context.Background(), slug.Slug{".."})
	require.Error(t, err)
	require.True(t, slug.IsInvalid(err))
}

func TestListChildren_OrderedAndHiddenExcluded(t *testing.T) {
	fs := writeFixture(t, map[string]string{
		"guide/intro.md":   "hi\n",
		"guide/advanced.md": "hi\n",
		"guide/.hidden.md": "no\n",
		"guide/.git/x":     "no\n",
		"general/shared.md": "hi\n",
	})

	entries, err := fs.ListChildren(context.Background(), slug.Slug{"guide"})
	require.NoError(t, err)
	require.Equal(t, []Entry{
		{Name: "advanced.md", IsDir: false},
		{Name: "intro.md", IsDir: false},
	}, entries)
}

func TestListChildren_RootListsTopLevel(t *testing.T) {
	fs := writeFixture(t, map[string]string{
		"home.md":          "hi\n",
		"guide/intro.md":   "hi\n",
	})

	entries, err := fs.ListChildren(context.Background(), slug.Slug{})
	require.NoError(t, err)
	require.Equal(t, []Entry{
		{Name: "guide", IsDir: true},
		{Name: "home.md", IsDir: false},
	}, entries)
}

func TestListChildren_DocumentSlugIsNotADirectory(t *testing.T) {
	fs := writeFixture(t, map[string]string{"guide/intro.md": "hi\n"})

	_, err := fs.ListChildren(context.Background(), slug.Slug{"guide", "intro"})
	require.Error(t, err)
	require.True(t, IsNotDirectory(err))
}

func TestListChildren_MissingDirectoryIsNotFound(t *testing.T) {
	fs := writeFixture(t, map[string]string{"home.md": "hi\n"})

	_, err := fs.ListChildren(context.Background(), slug.Slug{"nowhere"})
	require.True(t, IsNotFound(err))
}

func TestListChildren_FileOccupyingSlugPathIsNotFound(t *testing.T) {
	// "notes" is a regular file without the document extension, so listing
	// it (or anything below it) hits ENOTDIR rather than ENOENT.
	fs := writeFixture(t, map[string]string{
		"notes":   "scratch file\n",
		"home.md": "Welcome\n",
	})

	_, err := fs.ListChildren(context.Background(), slug.Slug{"notes"})
	require.True(t, IsNotFound(err), "got %v", err)

	_, err = fs.ListChildren(context.Background(), slug.Slug{"notes", "deep"})
	require.True(t, IsNotFound(err), "got %v", err)
}

func TestRead_FileOccupyingPathComponentIsNotFound(t *testing.T) {
	fs := writeFixture(t, map[string]string{
		"notes": "scratch file\n",
	})

	_, err := fs.Read(context.Background(), slug.Slug{"notes", "child"})
	require.True(t, IsNotFound(err), "got %v", err)
}

func TestRead_CanceledContext(t *testing.T) {
	fs := writeFixture(t, map[string]string{"home.md": "hi\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fs.Read(ctx, slug.Slug{"home"})
	require.ErrorIs(t, err, context.Canceled)
}
