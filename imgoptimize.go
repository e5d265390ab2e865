// Image handling for poster elements: attaching local files as data
// URIs, embedding remote images, and optimizing embedded images for
// export (downscale, optional grayscale, JPEG re-encode).
package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	_ "image/png"
	"math"
	"net/http"
	"os"
	"strings"

	"github.com/vincent-petithory/dataurl"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

type optimizeOpts struct {
	maxWidth  int
	quality   int
	grayscale bool
}

func humanSize(n int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB"}
	f := float64(n)
	for _, u := range units {
		if math.Abs(f) < 1024 {
			return fmt.Sprintf("%.1f%s", f, u)
		}
		f /= 1024
	}
	return fmt.Sprintf("%.1f%s", f, units[len(units)-1])
}

// sniffMIME normalizes a Content-Type header, sniffing the payload
// when the header is missing or generic.
func sniffMIME(header string, data []byte) string {
	m := header
	if i := strings.Index(m, ";"); i >= 0 {
		m = m[:i]
	}
	m = strings.TrimSpace(m)
	if m == "" || m == "application/octet-stream" {
		m = http.DetectContentType(data)
		if i := strings.Index(m, ";"); i >= 0 {
			m = m[:i]
		}
	}
	return m
}

// attachImage reads a local image file and returns it encoded as a
// data URI, the upload path for image elements.
func attachImage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	mime := sniffMIME("", data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%s is not an image (%s)", path, mime)
	}
	return dataurl.New(data, mime).String(), nil
}

// resizeTo downscales an image using BiLinear resampling.
func resizeTo(src image.Image, dstW, dstH int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, dstW, dstH))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}

func toGrayscale(src image.Image) *image.Gray {
	b := src.Bounds()
	gray := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(src.At(x, y)))
		}
	}
	return gray
}

// flattenAlpha composites src onto a white background for JPEG output.
func flattenAlpha(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, b, src, b.Min, draw.Over)
	return dst
}

func isAnimatedGIF(data []byte) bool {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return false
	}
	return len(g.Image) > 1
}

// optimizeImage re-encodes raw image bytes as a JPEG data URI, scaled
// down to opts.maxWidth (never up). Returns "" to signal pass-through
// (SVG, AVIF, animated GIF, undecodable input).
func optimizeImage(data []byte, mime string, opts optimizeOpts) (string, int) {
	if strings.Contains(mime, "svg") || strings.Contains(mime, "avif") {
		return "", 0
	}
	if strings.Contains(mime, "gif") && isAnimatedGIF(data) {
		return "", 0
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		fmt.Fprintf(logOut, "Warning: could not decode image (%s): %v\n", mime, err)
		return "", 0
	}

	flat := flattenAlpha(img)

	b := flat.Bounds()
	w, h := b.Dx(), b.Dy()
	var scaled image.Image = flat
	if w > opts.maxWidth {
		ratio := float64(opts.maxWidth) / float64(w)
		newH := int(math.Round(float64(h) * ratio))
		if newH < 1 {
			newH = 1
		}
		scaled = resizeTo(flat, opts.maxWidth, newH)
	}

	if opts.grayscale {
		scaled = toGrayscale(scaled)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: opts.quality}); err != nil {
		fmt.Fprintf(logOut, "Warning: JPEG encode failed: %v\n", err)
		return "", 0
	}
	return dataurl.New(buf.Bytes(), "image/jpeg").String(), buf.Len()
}

// optimizeDocImages rewrites the image elements of a document so every
// src is an optimized data URI. Remote URLs are fetched and embedded;
// existing data URIs are re-encoded; anything that can't be handled is
// left untouched.
func optimizeDocImages(doc document, opts optimizeOpts, cfg fetchConfig) document {
	var count int
	var before, after int64

	for i := range doc {
		el := &doc[i]
		if el.Kind != kindImage || el.Src == "" {
			continue
		}

		var raw []byte
		var mime string
		switch {
		case strings.HasPrefix(el.Src, "data:"):
			du, err := dataurl.DecodeString(el.Src)
			if err != nil {
				fmt.Fprintf(logOut, "Warning: broken data URI on element %s: %v\n", el.ID, err)
				continue
			}
			raw = du.Data
			mime = du.ContentType()
		case strings.HasPrefix(el.Src, "http://"), strings.HasPrefix(el.Src, "https://"):
			var err error
			raw, mime, err = fetchImage(el.Src, cfg)
			if err != nil {
				fmt.Fprintf(logOut, "Warning: could not fetch %s: %v\n", shortURL(el.Src), err)
				continue
			}
		default:
			continue
		}

		uri, jpegLen := optimizeImage(raw, mime, opts)
		if uri == "" {
			// Pass-through formats still get embedded when fetched.
			if !strings.HasPrefix(el.Src, "data:") {
				el.Src = dataurl.New(raw, mime).String()
			}
			continue
		}
		el.Src = uri
		before += int64(len(raw))
		after += int64(jpegLen)
		count++
	}

	if count > 0 {
		fmt.Fprintf(logOut, "Optimized %d images: %s → %s\n", count, humanSize(before), humanSize(after))
	}
	return doc
}
