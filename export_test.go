package main

import (
	"strings"
	"testing"
)

func testDoc() document {
	return document{
		{
			ID: "txt-1", Kind: kindText, TagName: "h1", Content: "Sale & Savings",
			Style: map[string]string{
				"position": "absolute", "left": "50px", "top": "50px",
				"fontSize": "32px", "color": "#ff0000", "fontWeight": "bold", "textAlign": "center",
			},
		},
		{
			ID: "txt-2", Kind: kindText, TagName: "p", Content: "Everything must go",
			Style: map[string]string{
				"position": "absolute", "left": "70px", "top": "120px",
				"fontSize": "16px", "color": "#000000", "fontWeight": "normal", "textAlign": "left",
			},
		},
		{
			ID: "img-1", Kind: kindImage, TagName: "img", Src: "promo.png", Alt: "promo",
			Style: map[string]string{
				"position": "absolute", "left": "90px", "top": "200px",
				"fontSize": "16px", "color": "#000000", "fontWeight": "normal", "textAlign": "left",
				"width": "100px", "height": "auto",
			},
		},
	}
}

func TestExportPoster_Structure(t *testing.T) {
	out := exportPoster(testDoc())

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<div class="poster"`,
		"width: 720px",
		"height: 720px",
		"overflow: hidden",
		`<h1 style="`,
		"Sale &amp; Savings",
		`<img src="promo.png" alt="promo"`,
		"font-size: 32px",
		"left: 50px",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %q", want)
		}
	}
}

func TestExportPoster_OrderPreserved(t *testing.T) {
	out := exportPoster(testDoc())
	first := strings.Index(out, "Sale &amp; Savings")
	second := strings.Index(out, "Everything must go")
	third := strings.Index(out, "promo.png")
	if !(first < second && second < third) {
		t.Errorf("element order not preserved: %d, %d, %d", first, second, third)
	}
}

func TestExportPoster_Empty(t *testing.T) {
	out := exportPoster(nil)
	if !strings.Contains(out, `class="poster"`) {
		t.Error("empty poster still needs the container")
	}
}

func TestRenderElement_KebabCaseStyle(t *testing.T) {
	el := element{
		ID: "txt-1", Kind: kindText, TagName: "p", Content: "x",
		Style: map[string]string{"fontSize": "16px", "textAlign": "right"},
	}
	got := renderElement(el)
	if !strings.Contains(got, "font-size: 16px") || !strings.Contains(got, "text-align: right") {
		t.Errorf("style not kebab-cased: %q", got)
	}
	if strings.Contains(got, "fontSize") {
		t.Errorf("camelCase leaked into output: %q", got)
	}
}

// Exporting then reimporting must reproduce the same ordered
// (kind, content-or-src) pairs; ids may differ.
func TestRoundTrip_ExportThenParse(t *testing.T) {
	orig := testDoc()
	parsed := parsePoster(exportPoster(orig))

	if len(parsed) != len(orig) {
		t.Fatalf("round trip length = %d, want %d", len(parsed), len(orig))
	}
	for i := range orig {
		if parsed[i].Kind != orig[i].Kind {
			t.Errorf("element %d kind = %v, want %v", i, parsed[i].Kind, orig[i].Kind)
		}
		if orig[i].Kind == kindText {
			if parsed[i].Content != orig[i].Content {
				t.Errorf("element %d content = %q, want %q", i, parsed[i].Content, orig[i].Content)
			}
			if parsed[i].TagName != orig[i].TagName {
				t.Errorf("element %d tag = %q, want %q", i, parsed[i].TagName, orig[i].TagName)
			}
		} else {
			if parsed[i].Src != orig[i].Src {
				t.Errorf("element %d src = %q, want %q", i, parsed[i].Src, orig[i].Src)
			}
		}
		if parsed[i].ID == orig[i].ID {
			t.Errorf("element %d id not regenerated", i)
		}
	}
}

func TestRoundTrip_StylesSurvive(t *testing.T) {
	orig := testDoc()
	parsed := parsePoster(exportPoster(orig))
	if len(parsed) != len(orig) {
		t.Fatalf("round trip length = %d, want %d", len(parsed), len(orig))
	}
	for i := range orig {
		for _, prop := range []string{"left", "top", "fontSize", "color", "fontWeight", "textAlign"} {
			if parsed[i].Style[prop] != orig[i].Style[prop] {
				t.Errorf("element %d style[%s] = %q, want %q",
					i, prop, parsed[i].Style[prop], orig[i].Style[prop])
			}
		}
	}
}

func TestFlowPoster(t *testing.T) {
	out := flowPoster(testDoc())
	if !strings.Contains(out, "<h1>Sale &amp; Savings</h1>") {
		t.Errorf("flow output missing heading: %q", out)
	}
	if strings.Contains(out, "position") {
		t.Errorf("flow output must not carry positioning: %q", out)
	}
	if !strings.Contains(out, `<img src="promo.png" alt="promo"/>`) {
		t.Errorf("flow output missing image: %q", out)
	}
}
