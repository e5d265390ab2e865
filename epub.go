// Epub export: packages one or more posters as an epub3 with a
// generated cover. Posters are rendered flowed (e-readers reflow
// content), with embedded data URI images registered as epub
// resources.
package main

import (
	"encoding/base64"
	"fmt"
	gohtml "html"
	"strings"

	epub "github.com/go-shiori/go-epub"
	"github.com/vincent-petithory/dataurl"
)

// epubPoster is one poster chapter.
type epubPoster struct {
	Doc   document
	Title string
}

// posterChapterXHTML renders a poster as XHTML for an epub section and
// registers its embedded images with the book, rewriting srcs to
// internal paths. Remote image URLs are dropped (epub disallows remote
// resources).
func posterChapterXHTML(e *epub.Epub, p epubPoster, chapterIdx int) string {
	var b strings.Builder
	if p.Title != "" {
		fmt.Fprintf(&b, "<h1>%s</h1>\n", gohtml.EscapeString(p.Title))
	}

	imgIdx := 0
	for _, el := range p.Doc {
		if el.Kind != kindImage {
			if strings.TrimSpace(el.Content) == "" {
				continue
			}
			tag := el.TagName
			if tag == "" || tag == "div" {
				tag = "p"
			}
			if tag == "h1" {
				tag = "h2" // chapter heading owns h1
			}
			fmt.Fprintf(&b, "<%s>%s</%s>\n", tag, gohtml.EscapeString(el.Content), tag)
			continue
		}

		if !strings.HasPrefix(el.Src, "data:") {
			continue
		}
		du, err := dataurl.DecodeString(el.Src)
		if err != nil {
			fmt.Fprintf(logOut, "Warning: broken data URI on element %s: %v\n", el.ID, err)
			continue
		}
		filename := fmt.Sprintf("ch%03d_img%03d%s", chapterIdx, imgIdx, extForMIME(du.ContentType()))
		imgIdx++
		internalPath, err := e.AddImage(el.Src, filename)
		if err != nil {
			fmt.Fprintf(logOut, "Warning: failed to add image %s: %v\n", filename, err)
			continue
		}
		fmt.Fprintf(&b, `<img src="%s" alt="%s"/>`+"\n",
			gohtml.EscapeString(internalPath), gohtml.EscapeString(el.Alt))
	}
	return b.String()
}

func extForMIME(mime string) string {
	switch {
	case strings.Contains(mime, "png"):
		return ".png"
	case strings.Contains(mime, "gif"):
		return ".gif"
	case strings.Contains(mime, "svg"):
		return ".svg"
	case strings.Contains(mime, "webp"):
		return ".webp"
	}
	return ".jpg"
}

// buildPosterEpub writes an epub3 containing the posters as chapters,
// with a deterministic generated cover.
func buildPosterEpub(posters []epubPoster, title string, outputPath string) error {
	if len(posters) == 0 {
		return fmt.Errorf("no posters to package")
	}

	e, err := epub.NewEpub(title)
	if err != nil {
		return fmt.Errorf("creating epub: %w", err)
	}
	e.SetLang("en")
	e.SetAuthor("plakat")

	css := `body { margin: 1em; line-height: 1.5; }
img { max-width: 100%; height: auto; }
h1, h2 { page-break-after: avoid; }`
	cssDataURI := "data:text/css;base64," + base64.StdEncoding.EncodeToString([]byte(css))
	cssPath, err := e.AddCSS(cssDataURI, "styles.css")
	if err != nil {
		fmt.Fprintf(logOut, "Warning: could not add CSS: %v\n", err)
		cssPath = ""
	}

	if coverPNG, err := generateCover(title, len(posters)); err == nil {
		coverURI := dataurl.New(coverPNG, "image/png").String()
		if coverPath, err := e.AddImage(coverURI, "cover.png"); err == nil {
			if err := e.SetCover(coverPath, ""); err != nil {
				fmt.Fprintf(logOut, "Warning: could not set cover: %v\n", err)
			}
		}
	} else {
		fmt.Fprintf(logOut, "Warning: could not generate cover: %v\n", err)
	}

	for i, p := range posters {
		chTitle := p.Title
		if chTitle == "" {
			chTitle = fmt.Sprintf("Poster %d", i+1)
		}
		body := posterChapterXHTML(e, p, i+1)
		filename := fmt.Sprintf("poster%03d.xhtml", i+1)
		if _, err := e.AddSection(body, chTitle, filename, cssPath); err != nil {
			fmt.Fprintf(logOut, "Warning: could not add section %q: %v\n", chTitle, err)
		}
	}

	if err := e.Write(outputPath); err != nil {
		return fmt.Errorf("writing epub: %w", err)
	}
	return nil
}
