// HTML sanitization for untrusted poster input. Imported and pasted
// markup passes through here before parsing: entire subtrees rooted at
// active-content tags are removed, inline event handlers and
// javascript: URLs are stripped. Parsing is inert; nothing in the
// input is ever executed.
package main

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// strippedTags are removed along with their whole subtree.
var strippedTags = map[string]bool{
	"script": true,
	"iframe": true,
	"object": true,
	"embed":  true,
	"link":   true,
	"style":  true,
}

// urlAttrs are checked for javascript: payloads.
var urlAttrs = map[string]bool{
	"href":   true,
	"src":    true,
	"action": true,
}

// voidElements are HTML elements serialized self-closing.
var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Source: true, atom.Wbr: true,
}

// keepAttr decides whether an attribute survives sanitization.
func keepAttr(a html.Attribute) bool {
	key := strings.ToLower(a.Key)
	if strings.HasPrefix(key, "on") {
		return false
	}
	if urlAttrs[key] && strings.Contains(strings.ToLower(a.Val), "javascript:") {
		return false
	}
	return true
}

// sanitizePoster cleans untrusted HTML and returns the serialized
// markup of the surviving tree (body content only). Malformed input is
// tolerated via the permissive parser; this never fails.
func sanitizePoster(raw string) string {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		// html.Parse recovers from any malformed string; an error can
		// only come from the reader. Refuse rather than pass through
		// unsanitized markup.
		return ""
	}

	var clean func(*html.Node)
	clean = func(n *html.Node) {
		if n.Type == html.ElementNode && len(n.Attr) > 0 {
			var kept []html.Attribute
			for _, a := range n.Attr {
				if keepAttr(a) {
					kept = append(kept, a)
				}
			}
			n.Attr = kept
		}
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			if c.Type == html.ElementNode && strippedTags[c.Data] {
				n.RemoveChild(c)
			} else {
				clean(c)
			}
			c = next
		}
	}
	clean(doc)

	var buf bytes.Buffer
	renderMarkup(&buf, doc)

	// html.Parse wraps fragments in <html><head><body>; return just the
	// body content.
	return extractBodyContent(buf.String())
}

// extractBodyContent returns the markup between <body> and </body>,
// or the input unchanged when no body tag is present.
func extractBodyContent(markup string) string {
	lower := strings.ToLower(markup)
	start := strings.Index(lower, "<body")
	if start < 0 {
		return markup
	}
	gt := strings.Index(markup[start:], ">")
	if gt < 0 {
		return markup
	}
	start += gt + 1
	end := strings.Index(lower[start:], "</body>")
	if end < 0 {
		return markup[start:]
	}
	return markup[start : start+end]
}

// renderMarkup serializes a node tree, self-closing void elements.
func renderMarkup(buf *bytes.Buffer, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		buf.WriteString(html.EscapeString(n.Data))
	case html.ElementNode:
		buf.WriteByte('<')
		buf.WriteString(n.Data)
		for _, a := range n.Attr {
			buf.WriteByte(' ')
			buf.WriteString(a.Key)
			buf.WriteString(`="`)
			buf.WriteString(html.EscapeString(a.Val))
			buf.WriteByte('"')
		}
		if voidElements[n.DataAtom] && n.FirstChild == nil {
			buf.WriteString("/>")
			return
		}
		buf.WriteByte('>')
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderMarkup(buf, c)
		}
		buf.WriteString("</")
		buf.WriteString(n.Data)
		buf.WriteByte('>')
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderMarkup(buf, c)
		}
	case html.CommentNode:
		// dropped
	case html.RawNode:
		buf.WriteString(n.Data)
	}
}
