package pubtools

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupPreview(t *testing.T, posts map[string]string) *Preview {
	t.Helper()
	root := t.TempDir()
	for _, sub := range []string{"posts", "template", "site"} {
		if err := os.Mkdir(filepath.Join(root, sub), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", sub, err)
		}
	}
	for name, src := range posts {
		writeTestFile(t, filepath.Join(root, "posts"), name, src)
	}
	writeTestFile(t, filepath.Join(root, "template"), "global.html", testTemplates.Global)
	writeTestFile(t, filepath.Join(root, "template"), "post_miniature.html", testTemplates.Miniature)
	writeTestFile(t, filepath.Join(root, "site"), "style.css", "body{}")

	return NewPreview(SiteConfig{
		PostsDir:    filepath.Join(root, "posts"),
		TemplateDir: filepath.Join(root, "template"),
		SiteDir:     filepath.Join(root, "site"),
		URL:         "https://example.com",
	})
}

func serve(p *Preview, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	p.Echo.ServeHTTP(rec, req)
	return rec
}

func TestPreviewIndex(t *testing.T) {
	p := setupPreview(t, map[string]string{
		"old.md": postSource("Old", "2020-01-01", "Before."),
		"new.md": postSource("New", "2024-01-01", "After."),
	})

	rec := serve(p, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "<title>Iker Galardi - Posts</title>") {
		t.Errorf("unexpected page start: %q", body)
	}
	if strings.Index(body, "<h2>New</h2>") > strings.Index(body, "<h2>Old</h2>") {
		t.Errorf("newest post should come first: %q", body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestPreviewRebuildsPerRequest(t *testing.T) {
	p := setupPreview(t, map[string]string{
		"a.md": postSource("First", "2024-01-01", "One."),
	})
	if body := serve(p, "/").Body.String(); strings.Contains(body, "Second") {
		t.Fatalf("unexpected post in first build: %q", body)
	}

	writeTestFile(t, p.Config.PostsDir, "b.md", postSource("Second", "2024-02-01", "Two."))
	if body := serve(p, "/").Body.String(); !strings.Contains(body, "<h2>Second</h2>") {
		t.Errorf("new post missing after rebuild: %q", body)
	}
}

func TestPreviewBuildFailure(t *testing.T) {
	p := setupPreview(t, map[string]string{
		"bad.md": "---\ntitle: No date\n---\nBody.\n",
	})
	rec := serve(p, "/")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "date") {
		t.Errorf("body should name the missing field: %q", rec.Body.String())
	}
}

func TestPreviewFeedAndSitemap(t *testing.T) {
	p := setupPreview(t, map[string]string{
		"hello.md": postSource("Hello", "2024-01-01", "Hi."),
	})

	feed := serve(p, "/feed.xml")
	if feed.Code != http.StatusOK {
		t.Fatalf("feed status = %d", feed.Code)
	}
	if !strings.Contains(feed.Body.String(), "<link>https://example.com/posts/hello.html</link>") {
		t.Errorf("feed missing post link: %q", feed.Body.String())
	}

	sm := serve(p, "/sitemap.xml")
	if sm.Code != http.StatusOK {
		t.Fatalf("sitemap status = %d", sm.Code)
	}
	if !strings.Contains(sm.Body.String(), "<lastmod>2024-01-01</lastmod>") {
		t.Errorf("sitemap missing lastmod: %q", sm.Body.String())
	}
}

func TestPreviewStaticFiles(t *testing.T) {
	p := setupPreview(t, nil)

	rec := serve(p, "/style.css")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "body{}" {
		t.Errorf("body = %q", rec.Body.String())
	}

	if rec := serve(p, "/missing.css"); rec.Code != http.StatusNotFound {
		t.Errorf("missing file status = %d, want 404", rec.Code)
	}
}
