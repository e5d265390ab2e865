// Markdown export: flowed rendering of the poster converted to
// CommonMark. Data URI images are replaced by alt-text placeholders
// instead of embedding raw base64.
package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/JohannesKaufmann/dom"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"golang.org/x/net/html"
)

var (
	mdConverter     *converter.Converter
	mdConverterOnce sync.Once
)

func getMarkdownConverter() *converter.Converter {
	mdConverterOnce.Do(func() {
		mdConverter = converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		)
		// Override img rendering: data URIs become alt-text
		// placeholders, plain URLs fall through to the commonmark
		// handler. PriorityEarly runs before the standard plugin.
		mdConverter.Register.RendererFor("img", converter.TagTypeInline,
			func(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
				src := dom.GetAttributeOr(n, "src", "")
				if !strings.HasPrefix(src, "data:") {
					return converter.RenderTryNext
				}
				alt := strings.TrimSpace(dom.GetAttributeOr(n, "alt", ""))
				if alt != "" {
					w.WriteString("[Image: " + alt + "]")
				}
				return converter.RenderSuccess
			},
			converter.PriorityEarly,
		)
	})
	return mdConverter
}

// posterToMarkdown converts the poster's content, in element order, to
// CommonMark. Absolute positioning does not survive; markdown is a
// flowing-text target.
func posterToMarkdown(doc document) (string, error) {
	md, err := getMarkdownConverter().ConvertString(flowPoster(doc))
	if err != nil {
		return "", fmt.Errorf("markdown conversion: %w", err)
	}
	return strings.TrimSpace(md), nil
}
