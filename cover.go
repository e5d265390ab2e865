// Cover image generation for epub output: a deterministic grid
// pattern seeded from the book title, with the title overlaid.
package main

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	coverWidth  = 1200
	coverHeight = 1800
)

// generateCover creates a PNG cover: title-hash-seeded square pattern
// with a central title band.
func generateCover(title string, posterCount int) ([]byte, error) {
	img := image.NewGray(image.Rect(0, 0, coverWidth, coverHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Gray{0xFF}), image.Point{}, draw.Src)

	hash := sha256.Sum256([]byte(title))
	drawPattern(img, hash)

	titleFace, err := loadFace(gobold.TTF, 64)
	if err != nil {
		return nil, fmt.Errorf("loading bold font: %w", err)
	}
	metaFace, err := loadFace(goregular.TTF, 32)
	if err != nil {
		return nil, fmt.Errorf("loading regular font: %w", err)
	}

	drawTitleBand(img, title, posterCount, titleFace, metaFace)

	label := "plakat"
	w := font.MeasureString(metaFace, label).Ceil()
	drawString(img, label, metaFace, coverWidth-40-w, coverHeight-40)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding cover PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// drawPattern tiles the cover with squares whose size and shade derive
// from the hash bytes, leaving the central band clear for the title.
func drawPattern(img *image.Gray, hash [32]byte) {
	const (
		cols          = 10
		rows          = 15
		cellW         = coverWidth / cols
		cellH         = coverHeight / rows
		titleRowStart = 6
		titleRowEnd   = 9
	)

	for row := 0; row < rows; row++ {
		if row >= titleRowStart && row <= titleRowEnd {
			continue
		}
		for col := 0; col < cols; col++ {
			b := hash[(row*cols+col)%len(hash)] ^ byte(row*19+col*37)
			// Shades that read well on e-ink.
			shade := uint8(0x30 + int(b)*(0xD0-0x30)/255)

			b2 := hash[(row*cols+col+11)%len(hash)] ^ byte(row*7+col*29)
			maxSide := float64(cellW) * 0.9
			side := int(maxSide*0.3 + (maxSide*0.7)*float64(b2)/255.0)

			cx := col*cellW + cellW/2
			cy := row*cellH + cellH/2
			fillSquare(img, cx, cy, side, color.Gray{shade})
		}
	}
}

func fillSquare(img *image.Gray, cx, cy, side int, c color.Gray) {
	half := side / 2
	for y := cy - half; y <= cy+half; y++ {
		for x := cx - half; x <= cx+half; x++ {
			if x >= 0 && x < coverWidth && y >= 0 && y < coverHeight {
				img.SetGray(x, y, c)
			}
		}
	}
}

// drawTitleBand renders the word-wrapped title and poster count in a
// white band across the middle of the cover.
func drawTitleBand(img *image.Gray, title string, posterCount int, titleFace, metaFace font.Face) {
	const (
		bandTop    = 720
		bandBottom = 1200
		padX       = 80
		maxWidth   = coverWidth - padX*2
	)

	draw.Draw(img, image.Rect(0, bandTop, coverWidth, bandBottom),
		image.NewUniform(color.Gray{0xFF}), image.Point{}, draw.Src)
	for x := padX; x < coverWidth-padX; x++ {
		img.SetGray(x, bandTop+20, color.Gray{0x99})
		img.SetGray(x, bandBottom-20, color.Gray{0x99})
	}

	lines := wrapText(title, titleFace, maxWidth)
	lineHeight := titleFace.Metrics().Height.Ceil() + 8
	metaHeight := metaFace.Metrics().Height.Ceil() + 16
	totalHeight := len(lines)*lineHeight + metaHeight
	y := bandTop + (bandBottom-bandTop-totalHeight)/2 + titleFace.Metrics().Ascent.Ceil()

	for _, line := range lines {
		lineW := font.MeasureString(titleFace, line).Ceil()
		drawString(img, line, titleFace, (coverWidth-lineW)/2, y)
		y += lineHeight
	}

	y += 16
	meta := fmt.Sprintf("%d posters", posterCount)
	if posterCount == 1 {
		meta = "1 poster"
	}
	metaW := font.MeasureString(metaFace, meta).Ceil()
	drawString(img, meta, metaFace, (coverWidth-metaW)/2, y)
}

func drawString(img *image.Gray, s string, face font.Face, x, y int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Gray{0x00}),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// wrapText splits text into lines that fit within maxWidth pixels.
func wrapText(text string, face font.Face, maxWidth int) []string {
	words := splitWords(text)
	if len(words) == 0 {
		return []string{text}
	}
	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		trial := current + " " + word
		if font.MeasureString(face, trial).Ceil() <= maxWidth {
			current = trial
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	return append(lines, current)
}

func splitWords(s string) []string {
	var words []string
	word := ""
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' {
			if word != "" {
				words = append(words, word)
				word = ""
			}
		} else {
			word += string(r)
		}
	}
	if word != "" {
		words = append(words, word)
	}
	return words
}

// loadFace parses an OpenType font at the given point size.
func loadFace(ttf []byte, sizePt float64) (font.Face, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    sizePt,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
