package pubtools

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/a-h/templ"
)

var (
	// ErrUnsupportedMode is returned for modes that are recognized but not implemented.
	ErrUnsupportedMode = errors.New("mode currently unsupported")
	// ErrUnknownMode is returned for unrecognized modes.
	ErrUnknownMode = errors.New("unknown mode")
)

// ModeError reports a mode Apply cannot handle. Callers treat it as a
// diagnostic rather than a failure.
type ModeError struct {
	Mode Mode
	Err  error
}

func (e *ModeError) Error() string {
	if errors.Is(e.Err, ErrUnsupportedMode) {
		return fmt.Sprintf("'%s' currently unsupported", e.Mode)
	}
	return fmt.Sprintf("unknown file type '%s'", e.Mode)
}

func (e *ModeError) Unwrap() error { return e.Err }

// Validate returns a *ModeError unless m is post or empty.
func (m Mode) Validate() error {
	switch m {
	case ModePost, ModeEmpty:
		return nil
	case ModePostList, ModeProjectList:
		return &ModeError{Mode: m, Err: ErrUnsupportedMode}
	default:
		return &ModeError{Mode: m, Err: ErrUnknownMode}
	}
}

// ApplyOptions tunes how content is inserted.
type ApplyOptions struct {
	Markdown bool // render content as Markdown before wrapping
}

// RenderPage wraps content for mode. title fills the global template's first
// slot.
func RenderPage(ctx context.Context, title, content string, mode Mode, tmpl Templates, opts ApplyOptions) (string, error) {
	if err := mode.Validate(); err != nil {
		return "", err
	}
	body := templ.Raw(content)
	if opts.Markdown {
		body = Markdown(content)
	}
	if mode == ModePost {
		body = Slots(tmpl.Post, body)
	}
	return RenderString(ctx, Slots(tmpl.Global, templ.Raw(title), body))
}

// Apply replaces the file at path with its content wrapped for mode. The page
// title is the file's base name. The file is only truncated once the page has
// rendered.
func Apply(ctx context.Context, path string, mode Mode, tmpl Templates, opts ApplyOptions) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("pubtools: open content: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("pubtools: read content: %w", err)
	}
	page, err := RenderPage(ctx, filepath.Base(path), string(content), mode, tmpl, opts)
	if err != nil {
		return fmt.Errorf("pubtools: render %s: %w", path, err)
	}

	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("pubtools: truncate content: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("pubtools: rewind content: %w", err)
	}
	if _, err := io.WriteString(f, page); err != nil {
		return fmt.Errorf("pubtools: write content: %w", err)
	}
	return f.Close()
}
