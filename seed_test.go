package main

import (
	"strings"
	"testing"
	"time"
)

const articlePage = `<!DOCTYPE html>
<html>
<head><title>The Quiet Rise of the Neighborhood Print Shop</title></head>
<body>
<article>
<h1>The Quiet Rise of the Neighborhood Print Shop</h1>
<p class="byline">By Jordan Ellis</p>
<img src="https://example.com/press.jpg" alt="a letterpress machine">
<p>For decades the neighborhood print shop was written off as a relic, a
casualty of home printers and cheap online services. But in cities across
the country, small shops are reopening with restored presses and waiting
lists for workshop slots that stretch into next season.</p>
<p>The owners tell a consistent story. Customers come in for a poster or a
set of invitations and stay for the process itself, the smell of ink and
the weight of paper stock chosen by hand. What the shops sell is not
printing so much as attention.</p>
<p>Industry figures back up the anecdotes. Independent print shops grew
for the fifth straight year, and suppliers of traditional equipment report
backorders measured in months rather than weeks. The trend shows no sign
of slowing, even as digital alternatives get cheaper every year.</p>
<p>None of this was supposed to happen. The obituaries were written long
ago, and yet the presses keep running, one carefully set line of type at
a time.</p>
</article>
</body>
</html>`

func TestSeedPoster(t *testing.T) {
	doc, meta, err := seedPoster([]byte(articlePage), mustParseURL(t, "https://example.com/print-shops"))
	if err != nil {
		t.Fatalf("seedPoster: %v", err)
	}

	if !strings.Contains(meta.Title, "Print Shop") {
		t.Errorf("title = %q", meta.Title)
	}
	if len(doc) < 2 {
		t.Fatalf("seeded %d elements, want at least heading and excerpt", len(doc))
	}

	heading := doc[0]
	if heading.Kind != kindText || heading.TagName != "h1" {
		t.Errorf("first element = %+v, want an h1", heading)
	}
	if !strings.Contains(heading.Content, "Print Shop") {
		t.Errorf("heading content = %q", heading.Content)
	}
	if heading.Style["fontSize"] != "36px" || heading.Style["fontWeight"] != "bold" {
		t.Errorf("heading style = %v", heading.Style)
	}
	if heading.Style["left"] != "40px" || heading.Style["top"] != "40px" {
		t.Errorf("heading position = (%s, %s)", heading.Style["left"], heading.Style["top"])
	}

	var excerpt *element
	for i := range doc {
		if doc[i].Kind == kindText && doc[i].TagName == "p" && doc[i].Style["top"] == "520px" {
			excerpt = &doc[i]
		}
	}
	if excerpt == nil {
		t.Fatal("no excerpt element seeded")
	}
	if len([]rune(excerpt.Content)) > 245 {
		t.Errorf("excerpt too long: %d runes", len([]rune(excerpt.Content)))
	}

	for _, el := range doc {
		if el.Style["position"] != "absolute" {
			t.Errorf("element %s not absolutely positioned", el.ID)
		}
	}
}

func TestSeedPoster_NoContent(t *testing.T) {
	_, _, err := seedPoster([]byte("<html><body></body></html>"), mustParseURL(t, "https://example.com/empty"))
	if err == nil {
		t.Error("empty page must fail to seed")
	}
}

func TestBylineText(t *testing.T) {
	when := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		meta articleMeta
		want string
	}{
		{"all parts", articleMeta{Byline: "Jordan Ellis", SiteName: "The Ledger", Published: &when},
			"March 15, 2024 / Jordan Ellis / The Ledger"},
		{"byline only", articleMeta{Byline: "Jordan Ellis"}, "Jordan Ellis"},
		{"site only", articleMeta{SiteName: "The Ledger"}, "The Ledger"},
		{"empty", articleMeta{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bylineText(tt.meta); got != tt.want {
				t.Errorf("bylineText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLeadImageSrc(t *testing.T) {
	if got := leadImageSrc(`<div><p>x</p><img src="first.jpg"><img src="second.jpg"></div>`); got != "first.jpg" {
		t.Errorf("leadImageSrc = %q, want first.jpg", got)
	}
	if got := leadImageSrc(`<div><p>no images</p></div>`); got != "" {
		t.Errorf("leadImageSrc = %q, want empty", got)
	}
}

func TestExcerptText(t *testing.T) {
	short := excerptText("<p>Just a few words.</p>", 240)
	if short != "Just a few words." {
		t.Errorf("short excerpt = %q", short)
	}

	long := excerptText("<p>"+strings.Repeat("word ", 100)+"</p>", 50)
	if !strings.HasSuffix(long, "…") {
		t.Errorf("long excerpt not truncated: %q", long)
	}
	if len([]rune(long)) > 51 {
		t.Errorf("excerpt length = %d runes", len([]rune(long)))
	}
	if strings.HasSuffix(strings.TrimSuffix(long, "…"), " ") {
		t.Errorf("excerpt cut mid-space: %q", long)
	}

	if got := excerptText("<p>  spaced   out \n text </p>", 240); got != "spaced out text" {
		t.Errorf("whitespace not collapsed: %q", got)
	}
}
