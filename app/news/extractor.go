package news

import (
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-shiori/go-readability"
)

// Page is a readable representation of a web page.
type Page struct {
	Title   string
	Excerpt string
}

// Extractor extracts the readable content from HTML pages.
type Extractor struct{}

var spaces = regexp.MustCompile(`\s+`)

// Extract extracts the page from HTML.
func (e Extractor) Extract(rd io.Reader, pageURL *url.URL) (Page, error) {
	doc, err := readability.FromReader(rd, pageURL)
	if err != nil {
		return Page{}, fmt.Errorf("parse html: %w", err)
	}

	return Page{
		Title:   e.sanitize(doc.Title),
		Excerpt: e.sanitize(doc.Excerpt),
	}, nil
}

func (e Extractor) sanitize(s string) string {
	// nbsp
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}
