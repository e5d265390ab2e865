// Poster seeding from a live web page: readability extraction feeds an
// initial layout with the article title, byline, lead image and a
// short excerpt placed on the canvas.
package main

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"

	readability "codeberg.org/readeck/go-readability"
	"github.com/JohannesKaufmann/dom"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// articleMeta holds attribution for a seeded poster.
type articleMeta struct {
	Title     string
	Byline    string
	SiteName  string
	Published *time.Time
}

var imgSelector = cascadia.MustCompile("img")

// seedPoster extracts the article from a fetched page and lays out an
// initial poster: heading, byline, lead image, excerpt.
func seedPoster(htmlBytes []byte, pageURL *url.URL) (document, articleMeta, error) {
	article, err := readability.FromReader(bytes.NewReader(htmlBytes), pageURL)
	if err != nil {
		return nil, articleMeta{}, fmt.Errorf("readability extraction failed: %w", err)
	}
	if article.Content == "" {
		return nil, articleMeta{}, fmt.Errorf("readability extracted no content from %s", pageURL)
	}

	meta := articleMeta{
		Title:     article.Title,
		Byline:    article.Byline,
		SiteName:  article.SiteName,
		Published: article.PublishedTime,
	}

	title := meta.Title
	if title == "" {
		title = "Untitled"
	}

	var doc document

	heading := element{
		ID:      newTextID(),
		Kind:    kindText,
		TagName: "h1",
		Content: title,
		Style:   resolveStyle(nil, 0),
	}
	heading.Style["left"] = "40px"
	heading.Style["top"] = "40px"
	heading.Style["fontSize"] = "36px"
	heading.Style["fontWeight"] = "bold"
	doc = append(doc, heading)

	if line := bylineText(meta); line != "" {
		byline := element{
			ID:      newTextID(),
			Kind:    kindText,
			TagName: "p",
			Content: line,
			Style:   resolveStyle(nil, 1),
		}
		byline.Style["left"] = "40px"
		byline.Style["top"] = "120px"
		byline.Style["fontSize"] = "14px"
		byline.Style["color"] = "#666666"
		doc = append(doc, byline)
	}

	if src := leadImageSrc(article.Content); src != "" {
		img := element{
			ID:      newImageID(),
			Kind:    kindImage,
			TagName: "img",
			Src:     src,
			Alt:     title,
			Style:   resolveStyle(nil, len(doc)),
		}
		img.Style["left"] = "40px"
		img.Style["top"] = "170px"
		img.Style["width"] = "320px"
		img.Style["height"] = "auto"
		doc = append(doc, img)
	}

	if excerpt := excerptText(article.Content, 240); excerpt != "" {
		para := element{
			ID:      newTextID(),
			Kind:    kindText,
			TagName: "p",
			Content: excerpt,
			Style:   resolveStyle(nil, len(doc)),
		}
		para.Style["left"] = "40px"
		para.Style["top"] = "520px"
		para.Style["width"] = "640px"
		doc = append(doc, para)
	}

	return doc, meta, nil
}

// bylineText joins the attribution parts into one display line.
func bylineText(meta articleMeta) string {
	var parts []string
	if meta.Published != nil {
		parts = append(parts, meta.Published.Format("January 2, 2006"))
	}
	if meta.Byline != "" {
		parts = append(parts, meta.Byline)
	}
	if meta.SiteName != "" {
		parts = append(parts, meta.SiteName)
	}
	return strings.Join(parts, " / ")
}

// leadImageSrc returns the src of the first image in the article HTML.
func leadImageSrc(content string) string {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return ""
	}
	img := imgSelector.MatchFirst(root)
	if img == nil {
		return ""
	}
	return dom.GetAttributeOr(img, "src", "")
}

// excerptText extracts the leading text of the article, cut at a word
// boundary near maxLen runes.
func excerptText(content string, maxLen int) string {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return ""
	}
	text := strings.Join(strings.Fields(textContent(root)), " ")
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	cut := string(runes[:maxLen])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}
