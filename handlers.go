package pubtools

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (p *Preview) handleIndex(c echo.Context) error {
	page, _, err := p.build(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, page)
}

func (p *Preview) handleFeed(c echo.Context) error {
	_, posts, err := p.build(c.Request().Context())
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := WriteFeed(&buf, &p.Config, posts); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", buf.Bytes())
}

func (p *Preview) handleSitemap(c echo.Context) error {
	_, posts, err := p.build(c.Request().Context())
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := WriteSitemap(&buf, &p.Config, posts); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", buf.Bytes())
}

func (p *Preview) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if _, ok := err.(*echo.HTTPError); ok {
		p.Echo.DefaultHTTPErrorHandler(err, c)
		return
	}
	c.Logger().Errorf("preview: %v", err)
	_ = c.String(http.StatusInternalServerError, err.Error()+"\n")
}
