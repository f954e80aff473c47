package layout

import (
	"strings"
)

// Imported text placements use real-world units at a fixed reference
// resolution: millimeters for position, points for size, 300 DPI.
const referenceDPI = 300.0

// MmToPx converts millimeters to pixels at the reference resolution
// (1 mm ~= 11.811 px).
func MmToPx(mm float64) float64 {
	return mm * referenceDPI / 25.4
}

// PtToPx converts points to pixels at the reference resolution
// (1 pt ~= 4.167 px).
func PtToPx(pt float64) float64 {
	return pt * referenceDPI / 72.0
}

// FontMetrics are the vertical metrics of a font family expressed as
// fractions of em.
type FontMetrics struct {
	Ascent    float64
	Descent   float64
	CapHeight float64
}

// fallbackMetrics is used for families without a known entry. The triple
// approximates a generic latin text face and keeps imported text within a
// few pixels of its authored position.
var fallbackMetrics = FontMetrics{Ascent: 0.80, Descent: 0.20, CapHeight: 0.70}

var familyMetrics = map[string]FontMetrics{
	"roboto":           {Ascent: 0.927, Descent: 0.244, CapHeight: 0.711},
	"open sans":        {Ascent: 1.069, Descent: 0.293, CapHeight: 0.714},
	"lato":             {Ascent: 0.987, Descent: 0.213, CapHeight: 0.718},
	"montserrat":       {Ascent: 0.968, Descent: 0.251, CapHeight: 0.700},
	"oswald":           {Ascent: 1.193, Descent: 0.289, CapHeight: 0.731},
	"playfair display": {Ascent: 1.082, Descent: 0.268, CapHeight: 0.708},
	"merriweather":     {Ascent: 0.984, Descent: 0.273, CapHeight: 0.728},
}

// MetricsFor looks up the metrics of a font family, falling back to a
// generic triple for unknown families.
func MetricsFor(family string) FontMetrics {
	if m, ok := familyMetrics[strings.ToLower(strings.TrimSpace(family))]; ok {
		return m
	}
	return fallbackMetrics
}

// CapHeightOffset is the pixel distance between the top of a rendered line
// box and the visual top of capital letters:
//
//	halfLeading + (ascent - capHeight) * fontSizePx
//
// where halfLeading = (lineHeight - ascent - descent) * fontSizePx / 2.
// Source coordinate systems anchor text at the cap top; the target markup
// anchors the line box at its own top, so imported positions must be
// shifted up by this amount.
func CapHeightOffset(m FontMetrics, fontSizePx, lineHeight float64) float64 {
	halfLeading := (lineHeight - m.Ascent - m.Descent) * fontSizePx / 2
	return halfLeading + (m.Ascent-m.CapHeight)*fontSizePx
}

// TextPlacement describes one externally authored text position in
// real-world units.
type TextPlacement struct {
	Family     string
	XMm        float64
	YMm        float64
	SizePt     float64
	LineHeight float64
}

// PixelPlacement is the corrected pixel-space result of an import.
type PixelPlacement struct {
	LeftPx     float64
	TopPx      float64
	FontSizePx float64
}

// Import converts a real-world placement to pixels, applying the
// cap-height baseline correction to the vertical position. A zero
// LineHeight defaults to 1.2 em.
func Import(p TextPlacement) PixelPlacement {
	lineHeight := p.LineHeight
	if lineHeight == 0 {
		lineHeight = 1.2
	}

	fontSizePx := PtToPx(p.SizePt)
	offset := CapHeightOffset(MetricsFor(p.Family), fontSizePx, lineHeight)

	return PixelPlacement{
		LeftPx:     MmToPx(p.XMm),
		TopPx:      MmToPx(p.YMm) - offset,
		FontSizePx: fontSizePx,
	}
}
