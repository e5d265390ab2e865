// Edit scripts: a line-based command stream driving the editor, the
// batch equivalent of the original direct-manipulation surface. Blank
// lines and # comments are skipped.
package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// applyScript reads commands from r and applies them to the editor in
// order. Unknown commands and malformed arguments fail with the line
// number; commands that target a missing selection follow the
// controller's no-op rules silently.
func applyScript(e *editor, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := applyCommand(e, line); err != nil {
			return fmt.Errorf("script line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}

func applyCommand(e *editor, line string) error {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "select":
		// By position or by element id.
		if i, err := strconv.Atoi(rest); err == nil {
			if i < 0 || i >= len(e.doc) {
				return fmt.Errorf("select: index %d out of range (%d elements)", i, len(e.doc))
			}
			e.selectElement(e.doc[i].ID)
			return nil
		}
		if rest == "" {
			return fmt.Errorf("select: missing index or id")
		}
		e.selectElement(rest)
		return nil

	case "deselect":
		e.deselect()
		return nil

	case "add-text":
		if rest == "" {
			return fmt.Errorf("add-text: missing content")
		}
		// Optional leading tag: "add-text h1 Big title"
		tag, content, ok := strings.Cut(rest, " ")
		if ok && isHeadingOrPara(tag) {
			e.addText(strings.TrimSpace(content), tag)
		} else {
			e.addText(rest, "p")
		}
		return nil

	case "add-image":
		if rest == "" {
			return fmt.Errorf("add-image: missing src")
		}
		e.addImage(rest, "")
		return nil

	case "image":
		if rest == "" {
			return fmt.Errorf("image: missing file path")
		}
		uri, err := attachImage(rest)
		if err != nil {
			return fmt.Errorf("image: %w", err)
		}
		e.setImageSrc(uri)
		return nil

	case "move":
		x, y, err := parseCoords(rest)
		if err != nil {
			return fmt.Errorf("move: %w", err)
		}
		e.moveSelected(x, y)
		return nil

	case "drag":
		f := strings.Fields(rest)
		if len(f) != 4 {
			return fmt.Errorf("drag: want 4 coordinates, got %d", len(f))
		}
		coords := make([]float64, 4)
		for i, s := range f {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("drag: bad coordinate %q", s)
			}
			coords[i] = v
		}
		if e.selectedID == "" {
			return nil
		}
		e.pointerDown(e.selectedID, coords[0], coords[1])
		e.pointerMove(coords[2], coords[3])
		e.pointerUp()
		return nil

	case "set":
		prop, value, ok := strings.Cut(rest, " ")
		if !ok || strings.TrimSpace(value) == "" {
			return fmt.Errorf("set: want property and value")
		}
		e.updateProperty(kebabToCamel(prop), strings.TrimSpace(value))
		return nil

	case "text":
		if e.selectedID == "" {
			return nil
		}
		e.doubleClick(e.selectedID)
		e.commitText(rest)
		return nil

	case "delete":
		e.deleteSelected()
		return nil

	case "undo":
		e.undo()
		return nil

	case "redo":
		e.redo()
		return nil
	}

	return fmt.Errorf("unknown command %q", cmd)
}

func parseCoords(s string) (float64, float64, error) {
	f := strings.Fields(s)
	if len(f) != 2 {
		return 0, 0, fmt.Errorf("want 2 coordinates, got %d", len(f))
	}
	x, err := strconv.ParseFloat(f[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad coordinate %q", f[0])
	}
	y, err := strconv.ParseFloat(f[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad coordinate %q", f[1])
	}
	return x, y, nil
}

func isHeadingOrPara(tag string) bool {
	switch tag {
	case "p", "h1", "h2", "h3", "h4", "h5", "h6", "span", "div":
		return true
	}
	return false
}
