package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePost(t *testing.T, dir, name, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644))
}

func TestLoadPosts_FiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "old.md", "---\ntitle: Old\ndate: 2023-05-01\npublished: true\ncategories: [go]\n---\nold\n")
	writePost(t, dir, "new.md", "---\ntitle: New\ndate: 2024-02-10\npublished: true\ncategories: [ml, go]\n---\nnew\n")
	writePost(t, dir, "draft.md", "---\ntitle: Draft\ndate: 2025-01-01\n---\ndraft\n")
	writePost(t, dir, "hidden.md", "---\ntitle: Hidden\ndate: 2025-01-02\npublished: false\n---\nhidden\n")
	writePost(t, dir, "notes.txt", "not a post")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "drafts.md"), 0o755))

	posts, err := LoadPosts(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "new", posts[0].Slug)
	assert.Equal(t, "old", posts[1].Slug)
	for i, post := range posts {
		assert.True(t, post.Published)
		if i > 0 {
			assert.False(t, post.Date.After(posts[i-1].Date))
		}
	}
	assert.Equal(t, []string{"go", "ml"}, Categories(posts))
}

func TestLoadPosts_SameDateKeepsFilenameOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.md", "a.md", "c.md"} {
		writePost(t, dir, name, "---\ndate: 2024-01-01\npublished: true\n---\nx\n")
	}

	posts, err := LoadPosts(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{posts[0].Slug, posts[1].Slug, posts[2].Slug})
}

func TestLoadPosts_MalformedFileFailsLoad(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "ok.md", "---\ndate: 2024-01-01\npublished: true\n---\nx\n")
	writePost(t, dir, "bad.md", "---\ntitle: [unclosed\n---\nx\n")

	_, err := LoadPosts(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.md")
}

func TestLoadPosts_MissingDirectory(t *testing.T) {
	_, err := LoadPosts(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestLoadPosts_Empty(t *testing.T) {
	posts, err := LoadPosts(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Empty(t, Categories(posts))
}

func TestReadPost_Defaults(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "my-first_post.md", "# Body\n")

	post, err := ReadPost(filepath.Join(dir, "my-first_post.md"))
	require.NoError(t, err)
	assert.Equal(t, "my-first_post", post.Slug)
	assert.Equal(t, "My First Post", post.Title)
	assert.False(t, post.Published)
	assert.Equal(t, []string{}, post.Categories)
	assert.True(t, post.Date.IsZero())
	assert.Contains(t, post.HTML, ">Body</h1>")
}

func TestReadPost_ExternalLinkAndImage(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "ext.md", "---\ntitle: Ext\ndate: 2024-01-01\npublished: true\nlink: https://example.org/a\nexternal: true\nimage: /img/ext.png\n---\n")

	post, err := ReadPost(filepath.Join(dir, "ext.md"))
	require.NoError(t, err)
	assert.True(t, post.IsExternal())
	assert.Equal(t, "/img/ext.png", post.Image)

	post.External = false
	assert.False(t, post.IsExternal())
}

func TestReadPost_PublishedWithoutDate(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "nodate.md", "---\npublished: true\n---\nx\n")

	_, err := ReadPost(filepath.Join(dir, "nodate.md"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingDate))
}

func TestReadPost_InvalidDate(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "baddate.md", "---\ndate: 01/05/2024\npublished: true\n---\nx\n")

	_, err := ReadPost(filepath.Join(dir, "baddate.md"))
	require.Error(t, err)
}

func TestFormatDate_IgnoresLocalTimezone(t *testing.T) {
	orig := time.Local
	t.Cleanup(func() { time.Local = orig })

	for _, offset := range []int{-12, -5, 0, 9, 14} {
		time.Local = time.FixedZone("test", offset*3600)
		d, err := ParseDate("2024-03-01")
		require.NoError(t, err)
		assert.Equal(t, "March 1, 2024", FormatDate(d))
	}
}

func TestURLPath_EscapesSlug(t *testing.T) {
	assert.Equal(t, "blog/hi", Post{Slug: "hi"}.URLPath())
	assert.Equal(t, "blog/my%20post", Post{Slug: "my post"}.URLPath())
}

func TestReadPage(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "about.md", "---\ntitle: About me\n---\nHello *there*\n")

	page, ok, err := ReadPage(filepath.Join(dir, "about.md"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "About me", page.Meta.Title)
	assert.Contains(t, page.HTML, "<em>there</em>")

	_, ok, err = ReadPage(filepath.Join(dir, "home.md"))
	require.NoError(t, err)
	assert.False(t, ok)
}
