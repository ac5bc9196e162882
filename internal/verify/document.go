// Package verify runs the tiered search strategies that turn a citation
// into a verification record with an append-only attempt trail.
package verify

import (
	"strings"

	"golang.org/x/net/html"
)

// Document is the searchable form of a fetched source: numbered pages
// of text lines. HTML sources have a single page; plain text splits
// pages on form feeds.
type Document struct {
	Pages []DocumentPage
}

// DocumentPage is one page of searchable lines. Numbers are 1-based.
type DocumentPage struct {
	Number int
	Lines  []string
}

// DocumentFromHTML builds a single-page document from HTML content,
// one line per visible text block.
func DocumentFromHTML(htmlContent string) (*Document, error) {
	node, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	var lines []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			// Skip non-visible content
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := collapseSpaces(n.Data)
			if text != "" {
				lines = append(lines, text)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(node)

	return &Document{Pages: []DocumentPage{{Number: 1, Lines: lines}}}, nil
}

// DocumentFromText builds a document from plain text. Form feeds
// delimit pages; newlines delimit lines.
func DocumentFromText(text string) *Document {
	doc := &Document{}

	for i, pageText := range strings.Split(text, "\f") {
		page := DocumentPage{Number: i + 1}
		for _, line := range strings.Split(pageText, "\n") {
			line = collapseSpaces(line)
			if line != "" {
				page.Lines = append(page.Lines, line)
			}
		}
		doc.Pages = append(doc.Pages, page)
	}

	return doc
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
