// Package links finds internal links in generated HTML that point nowhere.
package links

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// ErrBrokenLinks is returned when the policy is to fail the build.
var ErrBrokenLinks = errors.New("broken links")

// Broken is one unresolved link.
type Broken struct {
	Page string // URL path of the page containing the link
	Href string
}

func (b Broken) String() string {
	return fmt.Sprintf("%s -> %s", b.Page, b.Href)
}

// Check scans every .html file under outputDir. basePath is the URL prefix
// the output dir is published under.
func Check(outputDir, basePath string) ([]Broken, error) {
	var broken []Broken
	err := filepath.WalkDir(outputDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}
		rel, err := filepath.Rel(outputDir, p)
		if err != nil {
			return err
		}
		page := pageURL(basePath, filepath.ToSlash(rel))

		hrefs, err := extract(p)
		if err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		for _, href := range hrefs {
			target, ok := internalPath(page, basePath, href)
			if !ok {
				continue
			}
			if target == "" || !exists(outputDir, target) {
				broken = append(broken, Broken{Page: page, Href: href})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(broken, func(i, j int) bool {
		if broken[i].Page != broken[j].Page {
			return broken[i].Page < broken[j].Page
		}
		return broken[i].Href < broken[j].Href
	})
	return broken, nil
}

// pageURL maps "docs/learn/index.html" to "/docs/learn/".
func pageURL(basePath, rel string) string {
	u := strings.TrimSuffix(basePath, "/") + "/" + rel
	if strings.HasSuffix(u, "/index.html") {
		u = strings.TrimSuffix(u, "index.html")
	}
	return u
}

func extract(file string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, err
	}
	var hrefs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key == "href" {
					hrefs = append(hrefs, a.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return hrefs, nil
}

// internalPath resolves href against page and returns the path below
// basePath. External and fragment-only links report false. A site path
// outside basePath reports "" since nothing in the output is served there.
func internalPath(page, basePath, href string) (string, bool) {
	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}
	p := u.Path
	if !strings.HasPrefix(p, "/") {
		p = path.Join(path.Dir(page+"x"), p)
		if strings.HasSuffix(u.Path, "/") {
			p += "/"
		}
	}
	base := strings.TrimSuffix(basePath, "/")
	if base != "" {
		if p != base && !strings.HasPrefix(p, base+"/") {
			return "", true
		}
		p = strings.TrimPrefix(p, base)
	}
	if p == "" {
		p = "/"
	}
	return p, true
}

func exists(outputDir, p string) bool {
	local := filepath.Join(outputDir, filepath.FromSlash(p))
	candidates := []string{filepath.Join(local, "index.html")}
	if !strings.HasSuffix(p, "/") {
		candidates = append(candidates, local, local+".html")
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}
