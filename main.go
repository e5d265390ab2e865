// plakat: compose and export fixed-size HTML posters.
//
// Import a poster (or seed one from a live article URL), apply an edit
// script, and export standalone HTML, Markdown, or epub:
//
//	plakat [options] <input.html | URL>
//	plakat [options] -paste < fragment.html
//	plakat -script edits.txt -o poster.html input.html
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// logOut is the writer for warnings and informational output. Silent
// mode swaps it for io.Discard so only errors reach the user.
var logOut io.Writer = os.Stderr

// cliConfig holds parsed command-line options.
type cliConfig struct {
	input    string
	output   string
	title    string
	script   string
	paste    bool
	markdown bool
	epubMode bool
	optimize bool
	opts     optimizeOpts
	fetch    fetchConfig
	stdin    io.Reader
}

// loadPoster builds the initial editor state from the input source:
// pasted stdin, a fetched-and-seeded URL, or a local HTML file.
// Returns the editor and the poster title (empty when none derivable).
func loadPoster(cfg cliConfig) (*editor, string, error) {
	ed := newEditor()

	if cfg.paste {
		raw, err := io.ReadAll(cfg.stdin)
		if err != nil {
			return nil, "", fmt.Errorf("reading stdin: %w", err)
		}
		ed.importHTML(string(raw))
		return ed, "", nil
	}

	if strings.HasPrefix(cfg.input, "http://") || strings.HasPrefix(cfg.input, "https://") {
		body, pageURL, err := fetchHTML(cfg.input, cfg.fetch)
		if err != nil {
			return nil, "", err
		}
		doc, meta, err := seedPoster(body, pageURL)
		if err != nil {
			return nil, "", err
		}
		fmt.Fprintf(logOut, "Seeded poster from %q (%d elements)\n", meta.Title, len(doc))
		ed.completeImport(ed.beginImport(), doc)
		return ed, meta.Title, nil
	}

	raw, err := os.ReadFile(cfg.input)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", cfg.input, err)
	}
	ed.importHTML(string(raw))
	return ed, "", nil
}

// posterTitle picks the display title: explicit override, seeded
// article title, first text element, fixed fallback.
func posterTitle(cfg cliConfig, seeded string, doc document) string {
	if cfg.title != "" {
		return cfg.title
	}
	if seeded != "" {
		return seeded
	}
	for _, el := range doc {
		if el.Kind == kindText && strings.TrimSpace(el.Content) != "" {
			return strings.TrimSpace(el.Content)
		}
	}
	return "poster"
}

// run executes the pipeline: load, edit, optimize, export.
func run(cfg cliConfig) error {
	if !cfg.paste && cfg.input == "" {
		return fmt.Errorf("an input file or URL is required (or -paste)")
	}

	ed, seededTitle, err := loadPoster(cfg)
	if err != nil {
		return err
	}

	if cfg.script != "" {
		f, err := os.Open(cfg.script)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		err = applyScript(ed, f)
		f.Close()
		if err != nil {
			return err
		}
	}

	if cfg.optimize {
		ed.doc = optimizeDocImages(ed.doc, cfg.opts, cfg.fetch)
	}

	title := posterTitle(cfg, seededTitle, ed.doc)

	if cfg.epubMode {
		if cfg.output == "" {
			return fmt.Errorf("-epub requires -o output.epub")
		}
		if err := buildPosterEpub([]epubPoster{{Doc: ed.doc, Title: title}}, title, cfg.output); err != nil {
			return err
		}
		fmt.Fprintf(logOut, "✓ %s\n", cfg.output)
		return nil
	}

	var out string
	if cfg.markdown {
		out, err = posterToMarkdown(ed.doc)
		if err != nil {
			return err
		}
		out += "\n"
	} else {
		out = exportPoster(ed.doc)
	}

	if cfg.output != "" {
		if err := os.WriteFile(cfg.output, []byte(out), 0644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}
	os.Stdout.WriteString(out)
	return nil
}

func main() {
	output := flag.String("o", "", "Output file (default: stdout; poster.html is the conventional name)")
	title := flag.String("title", "", "Override poster title")
	script := flag.String("script", "", "Edit script to apply before export")
	paste := flag.Bool("paste", false, "Read pasted HTML from stdin instead of a file")
	markdown := flag.Bool("markdown", false, "Export Markdown instead of HTML")
	epubMode := flag.Bool("epub", false, "Export epub (requires -o)")
	optimize := flag.Bool("optimize", false, "Fetch and optimize poster images as embedded JPEG data URIs")
	maxWidth := flag.Int("max-width", canvasSize, "Max pixel width for optimized images")
	quality := flag.Int("quality", 80, "JPEG quality 1-95 for optimized images")
	grayscale := flag.Bool("grayscale", false, "Convert optimized images to grayscale")
	timeout := flag.Duration("timeout", 30*time.Second, "HTTP fetch timeout")
	userAgent := flag.String("user-agent", defaultUA, "HTTP User-Agent header")
	proxy := flag.String("proxy", "", "HTTP proxy URL for outgoing requests")
	maxResponse := flag.Int64("max-response-size", maxResponseBytes, "Max bytes to read from any HTTP response (0 = unlimited)")
	silent := flag.Bool("silent", false, "Suppress all output except errors (for pipeline use)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: plakat [options] <input.html|URL>\n")
		fmt.Fprintf(os.Stderr, "       plakat [options] -paste < fragment.html\n\n")
		fmt.Fprintf(os.Stderr, "Compose and export fixed-size HTML posters.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *silent {
		logOut = io.Discard
	} else if *output != "" {
		// Stdout is free for progress when content goes to a file.
		progressOut = os.Stdout
	}
	maxResponseBytes = *maxResponse

	cfg := cliConfig{
		output:   *output,
		title:    *title,
		script:   *script,
		paste:    *paste,
		markdown: *markdown,
		epubMode: *epubMode,
		optimize: *optimize,
		opts: optimizeOpts{
			maxWidth:  *maxWidth,
			quality:   *quality,
			grayscale: *grayscale,
		},
		fetch: fetchConfig{
			timeout:   *timeout,
			userAgent: *userAgent,
			proxy:     *proxy,
		},
		stdin: os.Stdin,
	}
	if args := flag.Args(); len(args) == 1 {
		cfg.input = args[0]
	} else if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "Error: expected one input, got %d\n", len(args))
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
