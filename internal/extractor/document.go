// Package extractor holds the field extraction rules for film pages.
//
// Every extractor is total: a lookup that finds nothing, or finds markup of
// an unexpected shape, yields entity.Missing. Only Parse can fail.
package extractor

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/user/filmdata-service/internal/entity"
)

// Document is one parsed HTML page.
type Document struct {
	doc *goquery.Document
}

func Parse(body []byte) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

func (d *Document) find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// text returns the trimmed text of the first node in sel.
func text(sel *goquery.Selection) entity.Field {
	if sel.Length() == 0 {
		return entity.Missing
	}
	s := strings.TrimSpace(sel.First().Text())
	if s == "" {
		return entity.Missing
	}
	return entity.Value(s)
}

// outerHTML serialises the first node in sel, or "" when sel is empty.
func outerHTML(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	s, err := goquery.OuterHtml(sel.First())
	if err != nil {
		return ""
	}
	return s
}

// submatch returns the first capture group of re in s.
func submatch(re *regexp.Regexp, s string) entity.Field {
	if s == "" {
		return entity.Missing
	}
	m := re.FindStringSubmatch(s)
	if len(m) < 2 || m[1] == "" {
		return entity.Missing
	}
	return entity.Value(m[1])
}

// nextInDocument returns the node following n in document order, descending
// into n's children first.
func nextInDocument(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}

// nextElement finds the first element named tag after n in document order.
func nextElement(n *html.Node, tag string) *html.Node {
	for c := nextInDocument(n); c != nil; c = nextInDocument(c) {
		if c.Type == html.ElementNode && c.Data == tag {
			return c
		}
	}
	return nil
}
