package pubtools

import "time"

// DateLayout is how publication dates are written in front matter and templates.
const DateLayout = "2006-01-02"

// PostMetadata is the front matter extracted from one post source file.
type PostMetadata struct {
	Publication    time.Time
	Title          string
	FirstParagraph string
}

// Slots returns the values for the post miniature template, in slot order:
// title, first paragraph, publication date.
func (m PostMetadata) Slots() []string {
	return []string{m.Title, m.FirstParagraph, m.Publication.Format(DateLayout)}
}

// Post is a metadata record together with the file it was read from.
type Post struct {
	PostMetadata
	File string
}

// Page is the file name the post is published under: the source name with its
// extension replaced by ".html". Non-ASCII names are kept as they are.
func (p Post) Page() string {
	return trimExt(p.File) + ".html"
}

// Mode selects how Apply wraps a content file.
type Mode string

const (
	ModePost        Mode = "post"
	ModeEmpty       Mode = "empty"
	ModePostList    Mode = "post-list"
	ModeProjectList Mode = "project-list"
)
