package scene

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

// Palette capacity bounds. Exceeding either is a hard error at insertion
// time; palettes are never silently truncated.
const (
	MaxColors = 16
	MaxFonts  = 8
)

// Color is one entry of a theme's color palette. The ID is the key style
// properties reference.
type Color struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	R    uint8   `json:"r"`
	G    uint8   `json:"g"`
	B    uint8   `json:"b"`
	A    float64 `json:"a"`
}

// Font is one entry of a theme's font palette. FontURL is either a hosted
// stylesheet URL or a local-path placeholder of the form fonts/<name>.otf.
type Font struct {
	FontID   string `json:"font_id"`
	FontName string `json:"font_name"`
	FontURL  string `json:"font_url"`
}

// Theme owns the ordered color and font palettes of a scene. Insertion
// order is rendering order.
type Theme struct {
	ThemeID      string  `json:"theme_id"`
	ThemeName    string  `json:"theme_name"`
	ColorPalette []Color `json:"color_palette"`
	FontPalette  []Font  `json:"font_palette"`
}

// FontResolver turns a font family name into a usable font URL. The
// production implementation consults a remote catalog; tests supply fakes.
type FontResolver interface {
	ResolveFont(ctx context.Context, family string) (string, error)
}

// ParseHexColor parses a 6 or 8 digit hex literal, with or without a
// leading '#'. The trailing byte of the 8-digit form is alpha/255.
func ParseHexColor(spec string) (r, g, b uint8, a float64, err error) {
	hex := strings.TrimPrefix(strings.TrimSpace(spec), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return 0, 0, 0, 0, scenefolderrors.NewValidationError("color", fmt.Sprintf("invalid hex color %q", spec), nil)
	}

	value, parseErr := strconv.ParseUint(hex, 16, 64)
	if parseErr != nil {
		return 0, 0, 0, 0, scenefolderrors.NewValidationError("color", fmt.Sprintf("invalid hex color %q", spec), parseErr)
	}

	a = 1.0
	if len(hex) == 8 {
		a = float64(value&0xff) / 255.0
		value >>= 8
	}

	r = uint8(value >> 16 & 0xff)
	g = uint8(value >> 8 & 0xff)
	b = uint8(value & 0xff)
	return r, g, b, a, nil
}

// EnsureColor registers a literal hex color in the theme's palette and
// returns its palette ID. Colors are deduplicated by exact r/g/b/a value,
// never by name, so repeated identical literals collapse to one slot. A
// full palette rejects new values without partial mutation.
func EnsureColor(theme *Theme, colorSpec string) (string, error) {
	r, g, b, a, err := ParseHexColor(colorSpec)
	if err != nil {
		return "", err
	}

	for _, c := range theme.ColorPalette {
		if c.R == r && c.G == g && c.B == b && c.A == a {
			return c.ID, nil
		}
	}

	if len(theme.ColorPalette) >= MaxColors {
		return "", scenefolderrors.NewValidationError("color", fmt.Sprintf("color palette is full (max %d entries)", MaxColors), nil)
	}

	name := fmt.Sprintf("color_%d", len(theme.ColorPalette)+1)
	color := Color{ID: newID("color"), Name: name, R: r, G: g, B: b, A: a}
	theme.ColorPalette = append(theme.ColorPalette, color)
	return color.ID, nil
}

// EnsureFont registers a font family in the theme's palette and returns
// its palette ID. Families are matched case-insensitively. The resolver
// is only consulted for families not already present, and a failed lookup
// leaves the palette untouched.
func EnsureFont(ctx context.Context, theme *Theme, resolver FontResolver, family string) (string, error) {
	family = strings.TrimSpace(family)
	if family == "" {
		return "", scenefolderrors.NewValidationError("font", "font family is required", nil)
	}

	for _, f := range theme.FontPalette {
		if strings.EqualFold(f.FontName, family) {
			return f.FontID, nil
		}
	}

	if len(theme.FontPalette) >= MaxFonts {
		return "", scenefolderrors.NewValidationError("font", fmt.Sprintf("font palette is full (max %d entries)", MaxFonts), nil)
	}

	if resolver == nil {
		return "", scenefolderrors.NewValidationError("font", "no font resolver configured", nil)
	}

	url, err := resolver.ResolveFont(ctx, family)
	if err != nil {
		return "", err
	}

	font := Font{FontID: newID("font"), FontName: family, FontURL: url}
	theme.FontPalette = append(theme.FontPalette, font)
	return font.FontID, nil
}

// ColorByID returns the palette entry with the given ID, or nil.
func (t *Theme) ColorByID(id string) *Color {
	for i := range t.ColorPalette {
		if t.ColorPalette[i].ID == id {
			return &t.ColorPalette[i]
		}
	}
	return nil
}

// FontByID returns the palette entry with the given ID, or nil.
func (t *Theme) FontByID(id string) *Font {
	for i := range t.FontPalette {
		if t.FontPalette[i].FontID == id {
			return &t.FontPalette[i]
		}
	}
	return nil
}
