package pubtools

import (
	"path/filepath"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "archive.db")

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStore(t *testing.T) {
	s := setupTestStore(t)
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestSyncAndListPosts(t *testing.T) {
	s := setupTestStore(t)

	post := Post{
		PostMetadata: PostMetadata{
			Publication:    date(2024, time.January, 15),
			Title:          "Test Post",
			FirstParagraph: "A test post summary",
		},
		File: "test-post.md",
	}
	if err := s.SyncPosts([]Post{post}); err != nil {
		t.Fatalf("SyncPosts failed: %v", err)
	}

	posts, err := s.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 || posts[0] != post {
		t.Errorf("ListPosts = %+v, want [%+v]", posts, post)
	}
}

func TestSyncPostsKeysByFile(t *testing.T) {
	s := setupTestStore(t)

	posts := []Post{
		{PostMetadata: PostMetadata{date(2024, time.January, 4), "Hello md", "A."}, File: "hello.md"},
		{PostMetadata: PostMetadata{date(2024, time.January, 3), "Hello txt", "B."}, File: "hello.txt"},
		{PostMetadata: PostMetadata{date(2024, time.January, 2), "Nihon", "C."}, File: "日本.md"},
		{PostMetadata: PostMetadata{date(2024, time.January, 1), "Alpha beta", "D."}, File: "αβ.md"},
	}
	if err := s.SyncPosts(posts); err != nil {
		t.Fatalf("SyncPosts: %v", err)
	}

	got, err := s.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(got) != len(posts) {
		t.Fatalf("expected %d archived posts, got %d", len(posts), len(got))
	}
	for i := range posts {
		if got[i] != posts[i] {
			t.Errorf("post %d = %+v, want %+v", i, got[i], posts[i])
		}
	}
}

func TestSyncPostsUpdatesAndRemoves(t *testing.T) {
	s := setupTestStore(t)

	first := []Post{
		{PostMetadata: PostMetadata{date(2024, time.January, 1), "Kept", "Original summary"}, File: "kept.md"},
		{PostMetadata: PostMetadata{date(2024, time.February, 1), "Removed", "Gone soon"}, File: "removed.md"},
	}
	if err := s.SyncPosts(first); err != nil {
		t.Fatalf("first SyncPosts: %v", err)
	}

	second := []Post{
		{PostMetadata: PostMetadata{date(2024, time.January, 1), "Kept", "Updated summary"}, File: "kept.md"},
		{PostMetadata: PostMetadata{date(2024, time.March, 1), "Added", "New"}, File: "added.md"},
	}
	if err := s.SyncPosts(second); err != nil {
		t.Fatalf("second SyncPosts: %v", err)
	}

	posts, err := s.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].Title != "Added" || posts[1].Title != "Kept" {
		t.Errorf("order = %q, %q; want Added, Kept", posts[0].Title, posts[1].Title)
	}
	if posts[1].FirstParagraph != "Updated summary" {
		t.Errorf("FirstParagraph = %q, want updated", posts[1].FirstParagraph)
	}
	for _, p := range posts {
		if p.File == "removed.md" {
			t.Errorf("removed post still archived: %+v", p)
		}
	}
}

func TestSyncPostsEmptyClearsArchive(t *testing.T) {
	s := setupTestStore(t)

	post := Post{PostMetadata: PostMetadata{date(2024, time.January, 1), "T", "P"}, File: "t.md"}
	if err := s.SyncPosts([]Post{post}); err != nil {
		t.Fatalf("SyncPosts: %v", err)
	}
	if err := s.SyncPosts(nil); err != nil {
		t.Fatalf("SyncPosts(nil): %v", err)
	}
	posts, err := s.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("expected empty archive, got %d posts", len(posts))
	}
}
