// Poster export: serializes the element sequence into a standalone
// HTML document that the parser can reopen (round-trip compatible
// modulo id regeneration). Also provides the flowed rendering used by
// the markdown and epub exports.
package main

import (
	"fmt"
	"html"
	"strings"
)

// exportPoster renders a document as a complete self-contained HTML
// page. Elements become absolutely positioned children of a fixed
// 720x720 relatively positioned container carrying the poster marker
// class; order is preserved so z-order survives the round trip.
func exportPoster(doc document) string {
	var b strings.Builder
	for _, el := range doc {
		b.WriteString("    ")
		b.WriteString(renderElement(el))
		b.WriteByte('\n')
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>poster</title>
</head>
<body>
<div class="poster" style="position: relative; width: %dpx; height: %dpx; overflow: hidden; margin: 0 auto; background: #ffffff">
%s</div>
</body>
</html>
`, canvasSize, canvasSize, b.String())
}

// renderElement serializes one element with its inline style.
func renderElement(el element) string {
	style := renderStyle(el.Style)
	if el.Kind == kindImage {
		return fmt.Sprintf(`<img src="%s" alt="%s" style="%s" />`,
			html.EscapeString(el.Src), html.EscapeString(el.Alt), html.EscapeString(style))
	}
	tag := el.TagName
	if tag == "" {
		tag = "p"
	}
	return fmt.Sprintf(`<%s style="%s">%s</%s>`,
		tag, html.EscapeString(style), html.EscapeString(el.Content), tag)
}

// flowPoster renders the elements as plain flowing markup without
// positioning, for targets that reflow content (markdown, epub).
func flowPoster(doc document) string {
	var b strings.Builder
	for _, el := range doc {
		if el.Kind == kindImage {
			fmt.Fprintf(&b, `<img src="%s" alt="%s"/>`,
				html.EscapeString(el.Src), html.EscapeString(el.Alt))
			b.WriteByte('\n')
			continue
		}
		if strings.TrimSpace(el.Content) == "" {
			continue
		}
		tag := el.TagName
		if tag == "" || tag == "div" {
			tag = "p"
		}
		fmt.Fprintf(&b, "<%s>%s</%s>\n", tag, html.EscapeString(el.Content), tag)
	}
	return b.String()
}
