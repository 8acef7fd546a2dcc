package pubtools

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/eringen/pubtools/format"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// Slots returns a component that renders each value and fills them, in
// order, into the positional slots of tmpl.
func Slots(tmpl string, values ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		args := make([]string, len(values))
		for i, v := range values {
			s, err := RenderString(ctx, v)
			if err != nil {
				return err
			}
			args[i] = s
		}
		out, err := format.Format(tmpl, args...)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	})
}

// Lines renders each component followed by a newline.
func Lines(items []templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, item := range items {
			if err := item.Render(ctx, w); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		return nil
	})
}

// Markdown returns a component that renders src as HTML. Raw HTML in src is
// passed through.
func Markdown(src string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return md.Convert([]byte(src), w)
	})
}

// RenderString renders c into a string.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func textSlots(values []string) []templ.Component {
	out := make([]templ.Component, len(values))
	for i, v := range values {
		out[i] = templ.Raw(v)
	}
	return out
}

// RenderStatus writes an HTML page with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, page string) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	_, err := io.Copy(c.Response().Writer, strings.NewReader(page))
	return err
}

// Render writes an HTML page as an HTTP 200 response.
func Render(c echo.Context, page string) error {
	return RenderStatus(c, http.StatusOK, page)
}
