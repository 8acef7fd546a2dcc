package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupSite(t *testing.T) (dir, configPath string) {
	t.Helper()
	dir = t.TempDir()
	tmplDir := filepath.Join(dir, "template")
	if err := os.Mkdir(tmplDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	files := map[string]string{
		filepath.Join(tmplDir, "global.html"): "<title>{0}</title><body>{1}</body>",
		filepath.Join(tmplDir, "post.html"):   "<article>{0}</article>",
		filepath.Join(dir, "config.yaml"):     "template_dir: " + tmplDir + "\n",
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
	}
	return dir, filepath.Join(dir, "config.yaml")
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stderr bytes.Buffer
	cmd := newRootCmd(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stderr.String(), err
}

func TestApplyPostMode(t *testing.T) {
	dir, cfg := setupSite(t)
	file := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(file, []byte("hello"), 0o644); err != nil {
		t.Fatalf("writing content: %v", err)
	}

	if _, err := runCmd(t, file, "--type", "post", "--config", cfg); err != nil {
		t.Fatalf("apply-template: %v", err)
	}
	got, _ := os.ReadFile(file)
	if string(got) != "<title>note.txt</title><body><article>hello</article></body>" {
		t.Errorf("content = %q", got)
	}
}

func TestUnsupportedModesAreNotFailures(t *testing.T) {
	dir, cfg := setupSite(t)
	file := filepath.Join(dir, "list.html")
	if err := os.WriteFile(file, []byte("items"), 0o644); err != nil {
		t.Fatalf("writing content: %v", err)
	}

	tests := []struct {
		mode string
		want string
	}{
		{"post-list", "apply_template: 'post-list' currently unsupported"},
		{"project-list", "apply_template: 'project-list' currently unsupported"},
		{"gallery", "apply_template: unknown file type 'gallery'"},
	}
	for _, tt := range tests {
		stderr, err := runCmd(t, file, "--type", tt.mode, "--config", cfg)
		if err != nil {
			t.Errorf("--type %s: unexpected error: %v", tt.mode, err)
		}
		if !strings.Contains(stderr, tt.want) {
			t.Errorf("--type %s: stderr = %q, want %q", tt.mode, stderr, tt.want)
		}
	}
	got, _ := os.ReadFile(file)
	if string(got) != "items" {
		t.Errorf("content modified: %q", got)
	}
}

func TestMissingTemplateFails(t *testing.T) {
	dir, _ := setupSite(t)
	file := filepath.Join(dir, "page.html")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("writing content: %v", err)
	}
	cfg := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(cfg, []byte("template_dir: "+filepath.Join(dir, "nowhere")+"\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := runCmd(t, file, "--type", "empty", "--config", cfg); err == nil {
		t.Fatal("expected an error when global.html is missing")
	}
}

func TestRequiresFileArgument(t *testing.T) {
	if _, err := runCmd(t, "--type", "post"); err == nil {
		t.Fatal("expected an error without a file argument")
	}
}
