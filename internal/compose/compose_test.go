package compose

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docserve/internal/slug"
	"git.home.luguber.info/inful/docserve/internal/store"
)

func newComposer(t *testing.T, files map[string]string) *Composer {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	fs, err := store.NewFSStore(root)
	require.NoError(t, err)
	return New(fs)
}

func TestCompose_NoIncludes_BodyAndMetadataPassThrough(t *testing.T) {
	c := newComposer(t, map[string]string{
		"home.md": "---\ntitle: Home\nkeywords:\n  - docs\n---\nWelcome home.\n",
	})

	doc, err := c.Compose(context.Background(), slug.Slug{"home"})
	require.NoError(t, err)
	require.Equal(t, "Welcome home.\n", string(doc.Body))
	require.Equal(t, "Home", doc.Metadata.Title())
	require.Equal(t, []string{"docs"}, doc.Metadata.Keywords())
	require.NotEmpty(t, doc.Identity)
}

func TestCompose_SplicesIncludeInPlace(t *testing.T) {
	c := newComposer(t, map[string]string{
		"guide/intro.md":    "---\ntitle: Intro\n---\nBefore.\n{{include:general/shared}}\nAfter.\n",
		"general/shared.md": "Shared content\n",
	})

	doc, err := c.Compose(context.Background(), slug.Slug{"guide", "intro"})
	require.NoError(t, err)
	require.Equal(t, "Before.\nShared content\n\nAfter.\n", string(doc.Body))
	require.NotContains(t, string(doc.Body), "{{include")
}

func TestCompose_OnlyRootMetadataSurvives(t *testing.T) {
	c := newComposer(t, map[string]string{
		"a.md": "---\ntitle: Root\n---\n{{include:b}}\n",
		"b.md": "---\ntitle: Included\ndescription: hidden\n---\nbody of b\n",
	})

	doc, err := c.Compose(context.Background(), slug.Slug{"a"})
	require.NoError(t, err)
	require.Equal(t, "Root", doc.Metadata.Title())
	require.Empty(t, doc.Metadata.Description())
	require.Contains(t, string(doc.Body), "body of b")
}

func TestCompose_NestedIncludes(t *testing.T) {
	c := newComposer(t, map[string]string{
		"a.md": "A({{include:b}})\n",
		"b.md": "B({{include:c}})",
		"c.md": "C",
	})

	doc, err := c.Compose(context.Background(), slug.Slug{"a"})
	require.NoError(t, err)
	require.Equal(t, "A(B(C))\n", string(doc.Body))
}

func TestCompose_DirectSelfIncludeIsCircular(t *testing.T) {
	c := newComposer(t, map[string]string{
		"loop.md": "{{include:loop}}\n",
	})

	_, err := c.Compose(context.Background(), slug.Slug{"loop"})
	require.Error(t, err)
	require.True(t, IsCircularInclude(err))
}

func TestCompose_MutualIncludeIsCircular(t *testing.T) {
	c := newComposer(t, map[string]string{
		"a.md": "{{include:b}}\n",
		"b.md": "{{include:a}}\n",
	})

	_, err := c.Compose(context.Background(), slug.Slug{"a"})
	require.True(t, IsCircularInclude(err))
}

func TestCompose_SiblingIncludesOfSameTargetAreLegal(t *testing.T) {
	c := newComposer(t, map[string]string{
		"a.md":      "{{include:shared}} and {{include:shared}}\n",
		"shared.md": "S",
	})

	doc, err := c.Compose(context.Background(), slug.Slug{"a"})
	require.NoError(t, err)
	require.Equal(t, "S and S\n", string(doc.Body))
}

func TestCompose_SiblingBranchesDoNotCollide(t *testing.T) {
	// diamond: a -> b -> d and a -> c -> d; d is visited on two independent
	// branches, which is not a cycle.
	c := newComposer(t, map[string]string{
		"a.md": "{{include:b}}{{include:c}}\n",
		"b.md": "[{{include:d}}]",
		"c.md": "[{{include:d}}]",
		"d.md": "D",
	})

	doc, err := c.Compose(context.Background(), slug.Slug{"a"})
	require.NoError(t, err)
	require.Equal(t, "[D][D]\n", string(doc.Body))
}

func TestCompose_IdentityChangesWhenIncludedDocumentChanges(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	write("guide/intro.md", "---\ntitle: Intro\n---\nStart.\n{{include:general/shared}}\n")
	write("general/shared.md", "Shared content\n")

	fs, err := store.NewFSStore(root)
	require.NoError(t, err)
	c := New(fs)

	before, err := c.Compose(context.Background(), slug.Slug{"guide", "intro"})
	require.NoError(t, err)

	write("general/shared.md", "Rewritten shared content\n")

	after, err := c.Compose(context.Background(), slug.Slug{"guide", "intro"})
	require.NoError(t, err)
	require.NotEqual(t, string(before.Body), string(after.Body))
	require.NotEqual(t, before.Identity, after.Identity,
		"identity must change when composition input changes")
}

func TestCompose_IdentityMatchesStoreIdentityWithoutIncludes(t *testing.T) {
	root := t.TempDir()
	content := "---\ntitle: Home\n---\nWelcome home.\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "home.md"), []byte(content), 0o600))

	fs, err := store.NewFSStore(root)
	require.NoError(t, err)

	raw, err := fs.Read(context.Background(), slug.Slug{"home"})
	require.NoError(t, err)

	doc, err := New(fs).Compose(context.Background(), slug.Slug{"home"})
	require.NoError(t, err)
	require.Equal(t, raw.Identity, doc.Identity)
}

func TestCompose_MissingIncludeTargetPropagatesNotFound(t *testing.T) {
	c := newComposer(t, map[string]string{
		"a.md": "{{include:ghost}}\n",
	})

	_, err := c.Compose(context.Background(), slug.Slug{"a"})
	require.Error(t, err)
	require.True(t, store.IsNotFound(err))
}

func TestCompose_EmptyIncludeReferenceIsInvalid(t *testing.T) {
	c := newComposer(t, map[string]string{
		"a.md": "{{include:  }}\n",
	})

	_, err := c.Compose(context.Background(), slug.Slug{"a"})
	require.True(t, IsInvalidInclude(err))
}

func TestCompose_TraversalIncludeReferenceIsInvalid(t *testing.T) {
	c := newComposer(t, map[string]string{
		"a.md": "{{include:../etc/passwd}}\n",
	})

	_, err := c.Compose(context.Background(), slug.Slug{"a"})
	require.True(t, IsInvalidInclude(err))
}

func TestCompose_KnownTemplateKeysPassThrough(t *testing.T) {
	c := newComposer(t, map[string]string{
		"a.md": "{{template:image /logo.png}}\n",
	})

	doc, err := c.Compose(context.Background(), slug.Slug{"a"})
	require.NoError(t, err)
	require.Contains(t, string(doc.Body), "{{template:image /logo.png}}")
}

func TestCompose_UnknownTemplateKeyFails(t *testing.T) {
	c := newComposer(t, map[string]string{
		"a.md": "{{template:carousel x}}\n",
	})

	_, err := c.Compose(context.Background(), slug.Slug{"a"})
	require.True(t, IsInvalidInclude(err))
}
