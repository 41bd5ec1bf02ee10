// Package fonts provides the embedded label font and text measurement.
//
// Labels use Go Bold, shipped inside golang.org/x/image, so every surface
// measures text with the same metrics without depending on system fonts.
// The SVG surface names the same family in CSS so viewers with the font
// installed match the raster output.
package fonts

import (
	"encoding/base64"
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontFamily is the CSS font-family name of the embedded font.
const FontFamily = "Go"

// FallbackFontFamily lists CSS fallbacks for systems without the Go font.
const FallbackFontFamily = `'Go', Helvetica, Arial, sans-serif`

// DPI is the resolution faces are created at; at 72 DPI one point is one pixel.
const DPI = 72

var (
	parsed    *opentype.Font
	parseErr  error
	parseOnce sync.Once

	facesMu sync.Mutex
	faces   = map[float64]font.Face{}
)

// BoldTTF returns the raw TrueType data of the label font.
func BoldTTF() []byte {
	return gobold.TTF
}

// Cache for the base64-encoded font (computed once on first access).
var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// BoldTTFBase64 returns the label font as a base64 string for CSS embedding.
// The result is cached after first computation.
func BoldTTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(gobold.TTF)
	})
	return ttfBase64
}

func boldFont() (*opentype.Font, error) {
	parseOnce.Do(func() {
		parsed, parseErr = opentype.Parse(gobold.TTF)
	})
	return parsed, parseErr
}

// Face returns a shared bold face of the given pixel size, cached per size.
// Shared faces are only used under the package lock; code that draws glyphs
// should own its face from [NewFace].
func Face(size float64) (font.Face, error) {
	facesMu.Lock()
	defer facesMu.Unlock()
	return sharedFace(size)
}

func sharedFace(size float64) (font.Face, error) {
	if f, ok := faces[size]; ok {
		return f, nil
	}
	face, err := NewFace(size)
	if err != nil {
		return nil, err
	}
	faces[size] = face
	return face, nil
}

// NewFace returns a new bold face of the given pixel size.
// The size must be positive and finite.
func NewFace(size float64) (font.Face, error) {
	if !(size > 0) || math.IsInf(size, 1) {
		return nil, fmt.Errorf("invalid font size %g", size)
	}
	f, err := boldFont()
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: DPI, Hinting: font.HintingNone})
}

// MeasureText returns the advance width of s in pixels at the given size.
// It falls back to an average glyph width if the face cannot be built.
func MeasureText(s string, size float64) float64 {
	facesMu.Lock()
	defer facesMu.Unlock()
	face, err := sharedFace(size)
	if err != nil {
		return float64(len(s)) * size * 0.6
	}
	return fixedToFloat(font.MeasureString(face, s))
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
