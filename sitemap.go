package pubtools

import (
	"encoding/xml"
	"io"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// WriteSitemap writes a sitemap listing the site root and every post to w.
func WriteSitemap(w io.Writer, cfg *SiteConfig, posts []Post) error {
	if cfg.URL == "" {
		return ErrNoSiteURL
	}
	if err := checkPages(posts); err != nil {
		return err
	}
	urls := []sitemapURL{
		{Loc: BuildURL(cfg.URL)},
	}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:     cfg.PostLink(p),
			LastMod: p.Publication.Format(DateLayout),
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(sitemap)
}
