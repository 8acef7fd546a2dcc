package pubtools

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// BuildURL joins a base URL with path segments. Directory-like paths get a
// trailing slash; paths ending in a file name do not.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") && path.Ext(u.Path) == "" {
		u.Path += "/"
	}
	return u.String()
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// ErrPageName reports posts that cannot be given a distinct published page.
var ErrPageName = errors.New("pubtools: unusable page name")

// checkPages fails when a post has no base name or when two source files
// publish to the same page, e.g. hello.md and hello.txt.
func checkPages(posts []Post) error {
	seen := make(map[string]string, len(posts))
	for _, p := range posts {
		if trimExt(p.File) == "" {
			return fmt.Errorf("%w: %q has no base name", ErrPageName, p.File)
		}
		page := p.Page()
		if prev, ok := seen[page]; ok {
			return fmt.Errorf("%w: %s and %s both publish to %s", ErrPageName, prev, p.File, page)
		}
		seen[page] = p.File
	}
	return nil
}
