// Package pubtools builds the pages of a static blog from plain text sources.
//
// Apply wraps a single content file in the site's page templates in place.
// BuildIndex scans the posts directory, reads each post's front matter and
// renders the post index page. Templates are plain text with positional
// slots (see package format).
//
// Preview serves the generated index, feed and sitemap over HTTP with Echo,
// rebuilding on every request, next to the site's static files.
package pubtools

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Preview is a local HTTP server for checking the generated site.
type Preview struct {
	Config SiteConfig
	Echo   *echo.Echo
}

// NewPreview creates a Preview with middleware and routes registered.
func NewPreview(cfg SiteConfig) *Preview {
	cfg.setDefaults()

	p := &Preview{
		Config: cfg,
		Echo:   echo.New(),
	}
	p.Echo.HideBanner = true
	p.setupMiddleware()
	p.setupRoutes()
	return p
}

func (p *Preview) setupRoutes() {
	e := p.Echo
	e.GET("/", p.handleIndex)
	e.GET("/feed.xml", p.handleFeed)
	e.GET("/sitemap.xml", p.handleSitemap)
	e.Static("/", p.Config.SiteDir)
}

// Start serves until ctx is cancelled or the server fails.
func (p *Preview) Start(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		errc <- p.Echo.Start(p.Config.Addr)
	}()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		return p.Echo.Shutdown(context.Background())
	}
}

// build runs a full index build from the configured directories.
func (p *Preview) build(ctx context.Context) (string, []Post, error) {
	tmpl, err := IndexTemplates(&p.Config)
	if err != nil {
		return "", nil, err
	}
	return BuildIndex(ctx, p.Config.PostsDir, p.Config.IndexTitle, tmpl)
}
