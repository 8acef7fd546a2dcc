package pubtools

import (
	"fmt"
	"os"
)

// Templates holds the template strings a render needs. Templates a mode does
// not use may be empty.
type Templates struct {
	Global    string // slots: page title, page body
	Post      string // slot: post content
	Miniature string // slots: title, first paragraph, publication date
}

// ReadTemplate returns the contents of the named file in the template directory.
func (c *SiteConfig) ReadTemplate(name string) (string, error) {
	data, err := os.ReadFile(c.TemplatePath(name))
	if err != nil {
		return "", fmt.Errorf("pubtools: read template: %w", err)
	}
	return string(data), nil
}

// ApplyTemplates loads the templates Apply needs for mode.
func ApplyTemplates(cfg *SiteConfig, mode Mode) (Templates, error) {
	var t Templates
	var err error
	if t.Global, err = cfg.ReadTemplate(cfg.GlobalTemplate); err != nil {
		return Templates{}, err
	}
	if mode == ModePost {
		if t.Post, err = cfg.ReadTemplate(cfg.PostTemplate); err != nil {
			return Templates{}, err
		}
	}
	return t, nil
}

// IndexTemplates loads the page and miniature templates used by BuildIndex.
func IndexTemplates(cfg *SiteConfig) (Templates, error) {
	var t Templates
	var err error
	if t.Global, err = cfg.ReadTemplate(cfg.GlobalTemplate); err != nil {
		return Templates{}, err
	}
	if t.Miniature, err = cfg.ReadTemplate(cfg.MiniatureTemplate); err != nil {
		return Templates{}, err
	}
	return t, nil
}
