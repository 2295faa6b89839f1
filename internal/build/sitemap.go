package build

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/brockcataldi/deodar-docs/internal/model"
)

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

func writeSitemap(w io.Writer, s *model.SiteData) error {
	root := strings.TrimSuffix(s.Config.Routing.URL, "/")
	set := urlset{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	set.URLs = append(set.URLs, sitemapURL{Loc: root + s.Config.Routing.Path("/")})
	for _, d := range s.Docs {
		set.URLs = append(set.URLs, sitemapURL{Loc: root + d.Permalink})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return err
	}
	return enc.Close()
}
