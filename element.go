// Poster data model: absolutely positioned text and image elements on a
// fixed 720x720 canvas. Element order is z-order; later elements paint
// on top.
package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gofrs/uuid/v5"
)

const (
	// canvasSize is the edge length of the square poster canvas.
	canvasSize = 720
	// maxPosition is the largest left/top value an element may take;
	// elements keep a 50-unit margin inside the canvas.
	maxPosition = canvasSize - 50
)

type elementKind int

const (
	kindText elementKind = iota
	kindImage
)

func (k elementKind) String() string {
	if k == kindImage {
		return "image"
	}
	return "text"
}

// element is one positioned node on the poster. Text elements carry
// Content and a source TagName (p, h1, ...); image elements carry
// Src and Alt with TagName fixed to "img".
type element struct {
	ID      string
	Kind    elementKind
	TagName string
	Style   map[string]string // camelCase CSS property -> value
	Content string            // text elements only
	Src     string            // image elements only
	Alt     string            // image elements only
}

// clone returns a deep copy. Style maps are never shared between
// copies, so history snapshots stay independent of the live document.
func (el element) clone() element {
	out := el
	out.Style = make(map[string]string, len(el.Style))
	for k, v := range el.Style {
		out.Style[k] = v
	}
	return out
}

// document is the ordered element sequence being edited.
type document []element

func (d document) clone() document {
	if d == nil {
		return nil
	}
	out := make(document, len(d))
	for i, el := range d {
		out[i] = el.clone()
	}
	return out
}

// indexOf returns the position of the element with the given id, or -1.
func (d document) indexOf(id string) int {
	for i, el := range d {
		if el.ID == id {
			return i
		}
	}
	return -1
}

// newTextID and newImageID synthesize unique element ids. The prefixes
// keep text and image ids distinguishable.
func newTextID() string { return "txt-" + uuid.Must(uuid.NewV4()).String() }

func newImageID() string { return "img-" + uuid.Must(uuid.NewV4()).String() }

// styleOrder fixes the rendering order of known style properties so
// exported declarations are deterministic.
var styleOrder = []string{
	"position", "left", "top", "width", "height",
	"fontSize", "color", "fontWeight", "textAlign", "background",
}

// renderStyle turns a camelCase style map into a CSS declaration list,
// kebab-cased and joined with "; ". Known properties come first in
// canonical order, unknown ones follow sorted by name.
func renderStyle(style map[string]string) string {
	var decls []string
	seen := make(map[string]bool, len(style))
	for _, k := range styleOrder {
		if v, ok := style[k]; ok {
			decls = append(decls, camelToKebab(k)+": "+v)
			seen[k] = true
		}
	}
	var rest []string
	for k := range style {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		decls = append(decls, camelToKebab(k)+": "+style[k])
	}
	return strings.Join(decls, "; ")
}

// camelToKebab converts fontSize -> font-size.
func camelToKebab(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// kebabToCamel converts font-size -> fontSize.
func kebabToCamel(s string) string {
	parts := strings.Split(s, "-")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// parsePx extracts the numeric part of a "123px" style value.
func parsePx(v string) (float64, bool) {
	v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// formatPx renders a pixel value, dropping fractional noise for whole
// numbers so "70" round-trips as "70px" rather than "70.000000px".
func formatPx(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%dpx", int64(v))
	}
	return fmt.Sprintf("%.2fpx", v)
}

// clampPosition bounds a coordinate to the draggable canvas range.
func clampPosition(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > maxPosition {
		return maxPosition
	}
	return v
}
