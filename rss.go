package pubtools

import (
	"encoding/xml"
	"errors"
	"io"
	"time"
)

// ErrNoSiteURL is returned when a feed or sitemap is requested without a site URL.
var ErrNoSiteURL = errors.New("pubtools: url must be set in config")

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// WriteFeed writes an RSS 2.0 feed of posts to w.
func WriteFeed(w io.Writer, cfg *SiteConfig, posts []Post) error {
	if cfg.URL == "" {
		return ErrNoSiteURL
	}
	if err := checkPages(posts); err != nil {
		return err
	}
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		link := cfg.PostLink(p)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        link,
			Description: p.FirstParagraph,
			PubDate:     p.Publication.Format(time.RFC1123Z),
			GUID:        link,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       cfg.Name,
			Link:        BuildURL(cfg.URL),
			Description: cfg.Description,
			Items:       items,
		},
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(feed)
}
