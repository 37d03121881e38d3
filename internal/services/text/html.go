package text

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	doctypePattern       = regexp.MustCompile(`(?i)^\s*<!doctype[^>]*>`)
	trailingSpacePattern = regexp.MustCompile(`[ \t]+\n`)
	newlineRunPattern    = regexp.MustCompile(`\n{3,}`)
	spaceRunPattern      = regexp.MustCompile(`[ \t]{2,}`)
)

// blockSelector lists elements that terminate a line during text extraction,
// so paragraphs, list items and headings survive as separate lines.
const blockSelector = "p, li, ul, ol, h1, h2, h3, h4, h5, section, article, div"

// HTMLToText converts raw HTML into clean plain text. Script, style, meta,
// nav, footer and header subtrees are dropped entirely; block-level elements
// become line breaks; whitespace is normalized.
func HTMLToText(html string) (string, error) {
	html = doctypePattern.ReplaceAllString(html, "")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, meta, nav, footer, header").Remove()

	// Surround block elements with newlines so their text content ends up on
	// its own lines once the tree is flattened.
	doc.Find(blockSelector).Each(func(i int, s *goquery.Selection) {
		s.BeforeHtml("\n")
		s.AfterHtml("\n")
	})

	text := doc.Text()
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = trailingSpacePattern.ReplaceAllString(text, "\n")
	text = newlineRunPattern.ReplaceAllString(text, "\n\n")
	text = spaceRunPattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text), nil
}
