package pubtools

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SiteConfig holds all configuration for the blog tools.
type SiteConfig struct {
	PostsDir          string `yaml:"posts_dir"`          // Post sources (default "posts")
	TemplateDir       string `yaml:"template_dir"`       // Template directory (default "template")
	GlobalTemplate    string `yaml:"global_template"`    // Page template, slots: title, body
	PostTemplate      string `yaml:"post_template"`      // Post wrapper, slot: content
	MiniatureTemplate string `yaml:"miniature_template"` // Index entry, slots: title, first paragraph, date
	IndexTitle        string `yaml:"index_title"`        // Page title of the post index

	Name         string `yaml:"name"`           // Site name for the feed
	URL          string `yaml:"url"`            // Canonical URL, required for feed and sitemap
	Description  string `yaml:"description"`    // Feed description
	PostsURLPath string `yaml:"posts_url_path"` // URL path rendered posts live under (default "posts")

	SiteDir     string `yaml:"site_dir"`     // Served statically by the preview server (default ".")
	Addr        string `yaml:"addr"`         // Preview listen address (default ":3000")
	ArchivePath string `yaml:"archive_path"` // SQLite archive of indexed posts, empty to disable
}

func (c *SiteConfig) setDefaults() {
	if c.PostsDir == "" {
		c.PostsDir = "posts"
	}
	if c.TemplateDir == "" {
		c.TemplateDir = "template"
	}
	if c.GlobalTemplate == "" {
		c.GlobalTemplate = "global.html"
	}
	if c.PostTemplate == "" {
		c.PostTemplate = "post.html"
	}
	if c.MiniatureTemplate == "" {
		c.MiniatureTemplate = "post_miniature.html"
	}
	if c.IndexTitle == "" {
		c.IndexTitle = "Iker Galardi - Posts"
	}
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.PostsURLPath == "" {
		c.PostsURLPath = "posts"
	}
	if c.SiteDir == "" {
		c.SiteDir = "."
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
}

// TemplatePath returns the path of the named template file.
func (c *SiteConfig) TemplatePath(name string) string {
	return filepath.Join(c.TemplateDir, name)
}

// PostLink returns the public URL of a rendered post.
func (c *SiteConfig) PostLink(p Post) string {
	return BuildURL(c.URL, c.PostsURLPath, p.Page())
}

func loadDefaults() (SiteConfig, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return SiteConfig{}, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg SiteConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("parsing embedded config: %w", err)
	}
	return cfg, nil
}

// LoadConfig returns the default configuration overlaid with the YAML file at
// path. An empty path means defaults only; a missing file is an error.
func LoadConfig(path string) (SiteConfig, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return SiteConfig{}, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return SiteConfig{}, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return SiteConfig{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	cfg.setDefaults()
	if err := validate(&cfg); err != nil {
		return SiteConfig{}, err
	}
	return cfg, nil
}

func validate(cfg *SiteConfig) error {
	if cfg.URL == "" {
		return nil
	}
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return fmt.Errorf("config: invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("config: url scheme must be http or https, got %q", u.Scheme)
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
