// Poster import: converts an HTML fragment or document into the
// in-memory element sequence. Input is sanitized first, then the
// direct children of the poster container are mapped to elements in
// document order.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	posterSelector = cascadia.MustCompile(".poster")
	bodySelector   = cascadia.MustCompile("body")
)

// parsePoster parses HTML into a document. The container is the first
// element with the "poster" class; when absent the whole body is
// treated as the container. Only direct element children are mapped;
// nested descendants are not flattened.
func parsePoster(raw string) document {
	cleaned := sanitizePoster(raw)
	root, err := html.Parse(strings.NewReader(cleaned))
	if err != nil {
		return nil
	}

	container := posterSelector.MatchFirst(root)
	if container == nil {
		container = bodySelector.MatchFirst(root)
	}
	if container == nil {
		return nil
	}

	var doc document
	i := 0
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		doc = append(doc, elementFromNode(c, i))
		i++
	}
	return doc
}

// elementFromNode maps the i-th direct child of the container to an
// element. Inline style wins per property; missing properties fall
// back to positional defaults (left/top stagger by 20px per index).
func elementFromNode(n *html.Node, i int) element {
	inline := parseInlineStyle(dom.GetAttributeOr(n, "style", ""))

	if n.DataAtom == atom.Img {
		el := element{
			ID:      newImageID(),
			Kind:    kindImage,
			TagName: "img",
			Src:     dom.GetAttributeOr(n, "src", ""),
			Alt:     dom.GetAttributeOr(n, "alt", ""),
			Style:   resolveStyle(inline, i),
		}
		// Dimension attributes count as explicitly set, inline style
		// still wins. Otherwise images get a workable default size.
		if _, ok := el.Style["width"]; !ok {
			el.Style["width"] = dimensionValue(dom.GetAttributeOr(n, "width", ""), "100px")
		}
		if _, ok := el.Style["height"]; !ok {
			el.Style["height"] = dimensionValue(dom.GetAttributeOr(n, "height", ""), "auto")
		}
		return el
	}

	return element{
		ID:      newTextID(),
		Kind:    kindText,
		TagName: strings.ToLower(n.Data),
		Content: textContent(n),
		Style:   resolveStyle(inline, i),
	}
}

// resolveStyle merges inline declarations over the positional defaults
// for index i. width, height and background are carried only when
// explicitly authored inline.
func resolveStyle(inline map[string]string, i int) map[string]string {
	style := map[string]string{
		"position":   "absolute",
		"left":       fmt.Sprintf("%dpx", 50+i*20),
		"top":        fmt.Sprintf("%dpx", 50+i*20),
		"fontSize":   "16px",
		"color":      "#000000",
		"fontWeight": "normal",
		"textAlign":  "left",
	}
	for k := range style {
		if v, ok := inline[k]; ok && v != "" {
			style[k] = v
		}
	}
	style["position"] = "absolute"
	for _, k := range []string{"width", "height", "background"} {
		if v, ok := inline[k]; ok && v != "" {
			style[k] = v
		}
	}
	return style
}

// parseInlineStyle parses a style attribute value into a camelCase
// property map. Unparseable declarations are ignored.
func parseInlineStyle(s string) map[string]string {
	m := map[string]string{}
	if strings.TrimSpace(s) == "" {
		return m
	}
	decls, err := parser.ParseDeclarations(s)
	if err != nil {
		return m
	}
	for _, d := range decls {
		prop := kebabToCamel(strings.ToLower(strings.TrimSpace(d.Property)))
		if prop == "" {
			continue
		}
		m[prop] = strings.TrimSpace(d.Value)
	}
	return m
}

// dimensionValue normalizes a width/height attribute: bare numbers get
// a px unit, empty values fall back to def.
func dimensionValue(attr, def string) string {
	attr = strings.TrimSpace(attr)
	if attr == "" {
		return def
	}
	if _, err := strconv.Atoi(attr); err == nil {
		return attr + "px"
	}
	return attr
}

// textContent concatenates all descendant text nodes, trimmed.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
