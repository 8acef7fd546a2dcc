package pubtools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/a-h/templ"
)

// CollectPosts extracts metadata from every entry in dir, in directory order.
// Entries are not filtered; the first entry that fails aborts the collection.
func CollectPosts(dir string) ([]Post, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("pubtools: list posts: %w", err)
	}
	posts := make([]Post, 0, len(entries))
	for _, e := range entries {
		meta, err := ExtractMetadataFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		posts = append(posts, Post{PostMetadata: meta, File: e.Name()})
	}
	return posts, nil
}

// SortPosts orders posts by publication date, most recent first. Posts with
// the same date keep their relative order.
func SortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Publication.After(posts[j].Publication)
	})
}

// IndexPage returns the index page component: one miniature per post, each
// followed by a newline, wrapped in the global template under title.
func IndexPage(posts []Post, title string, tmpl Templates) templ.Component {
	items := make([]templ.Component, len(posts))
	for i, p := range posts {
		items[i] = Slots(tmpl.Miniature, textSlots(p.Slots())...)
	}
	return Slots(tmpl.Global, templ.Raw(title), Lines(items))
}

// RenderIndex renders posts, in the given order, into the index page.
func RenderIndex(ctx context.Context, posts []Post, title string, tmpl Templates) (string, error) {
	page, err := RenderString(ctx, IndexPage(posts, title, tmpl))
	if err != nil {
		return "", fmt.Errorf("pubtools: render index: %w", err)
	}
	return page, nil
}

// BuildIndex collects, sorts and renders the posts in dir. It returns the
// sorted posts alongside the page so callers can publish feeds from them.
func BuildIndex(ctx context.Context, dir, title string, tmpl Templates) (string, []Post, error) {
	posts, err := CollectPosts(dir)
	if err != nil {
		return "", nil, err
	}
	SortPosts(posts)
	page, err := RenderIndex(ctx, posts, title, tmpl)
	if err != nil {
		return "", nil, err
	}
	return page, posts, nil
}
