// Progress output for the fetch/seed path. Kept separate from logOut
// so -silent mode can mute it independently of warnings.
package main

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
)

// progressOut receives progress lines; io.Discard unless the CLI
// enables it.
var progressOut io.Writer = io.Discard

// progressMu serialises writes so concurrent image fetches don't
// interleave output lines.
var progressMu sync.Mutex

func pprintf(format string, args ...any) {
	progressMu.Lock()
	defer progressMu.Unlock()
	fmt.Fprintf(progressOut, format, args...)
}

// shortURL returns a compact display form of a URL: host + trimmed
// path, no scheme, truncated to 60 characters.
func shortURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	display := strings.TrimSuffix(u.Host+u.Path, "/")
	if len(display) > 60 {
		display = display[:57] + "..."
	}
	return display
}
