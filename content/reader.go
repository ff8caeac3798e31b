package content

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZacxDev/go-static-blog/markdown"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var extensions = map[string]bool{".md": true, ".markdown": true}

// IsContentFile reports whether name has a Markdown extension.
func IsContentFile(name string) bool {
	return extensions[strings.ToLower(filepath.Ext(name))]
}

// LoadPosts reads every Markdown file directly under dir, concurrently, and
// returns the published posts newest first. Any unreadable or malformed file
// fails the whole load.
func LoadPosts(ctx context.Context, dir string) ([]Post, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading posts directory %s", dir)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !IsContentFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	posts := make([]Post, len(files))
	group, groupctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		group.Go(func() error {
			if err := groupctx.Err(); err != nil {
				return err
			}
			post, err := ReadPost(file)
			if err != nil {
				return err
			}
			posts[i] = post
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return Published(posts), nil
}

// ReadPost parses and renders a single post file.
func ReadPost(path string) (Post, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return Post{}, errors.Wrapf(err, "error reading post %s", path)
	}

	meta, body, err := Parse(source)
	if err != nil {
		return Post{}, errors.Wrapf(err, "post %s", path)
	}

	slug := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	post := Post{
		Slug:        slug,
		Title:       meta.Title,
		Description: meta.Description,
		Categories:  meta.Categories,
		Published:   meta.Published,
		Link:        meta.Link,
		External:    meta.External,
		Image:       meta.Image,
		Source:      path,
	}
	if post.Title == "" {
		post.Title = titleFromSlug(slug)
	}

	switch {
	case meta.Date != "":
		post.Date, err = ParseDate(meta.Date)
		if err != nil {
			return Post{}, errors.Wrapf(err, "post %s", path)
		}
	case meta.Published:
		return Post{}, errors.Wrapf(ErrMissingDate, "post %s", path)
	}

	post.HTML = markdown.ToHTML(body)
	return post, nil
}

// Published drops unpublished posts and orders the rest by date, newest
// first. Posts sharing a date keep their input order.
func Published(posts []Post) []Post {
	out := make([]Post, 0, len(posts))
	for _, post := range posts {
		if post.Published {
			out = append(out, post)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Categories returns the sorted, de-duplicated categories of posts.
func Categories(posts []Post) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, post := range posts {
		for _, category := range post.Categories {
			if seen[category] {
				continue
			}
			seen[category] = true
			out = append(out, category)
		}
	}
	sort.Strings(out)
	return out
}

func titleFromSlug(slug string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	return cases.Title(language.English).String(words)
}
