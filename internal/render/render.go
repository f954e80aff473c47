// Package render turns a complete scene into markup and stylesheet text.
// Rendering is a pure transform: no I/O, no randomness, output depends
// only on the scene's content and its palettes' insertion order.
package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/scenefold/scenefold/internal/logger"
	"github.com/scenefold/scenefold/internal/scene"
	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

// Style property names whose values may reference the theme's color
// palette by ID.
var colorProperties = map[string]struct{}{
	"color":            {},
	"fill":             {},
	"background_color": {},
	"border_color":     {},
}

// Renderer renders scenes. The logger is only used for the lenient paths
// (dangling data item references); a nil logger is fine.
type Renderer struct {
	log *logger.Logger
}

// New creates a Renderer.
func New(log *logger.Logger) *Renderer {
	return &Renderer{log: log}
}

type lookups struct {
	items  map[string]*scene.DataItem
	colors map[string]*scene.Color
	fonts  map[string]*scene.Font
}

// Render produces the markup and stylesheet text for a scene.
func (r *Renderer) Render(s *scene.Scene) (string, string, error) {
	if s == nil || s.Data == nil || s.Template == nil || s.Theme == nil {
		return "", "", scenefolderrors.NewValidationError("scene", "scene is incomplete", nil)
	}

	tables := buildLookups(s)

	var markup strings.Builder
	markup.WriteString(`<div class="canvas">` + "\n")
	r.renderElements(&markup, s.Template.Elements, tables, 1)
	markup.WriteString("</div>\n")

	return markup.String(), r.renderStylesheet(s, tables), nil
}

func buildLookups(s *scene.Scene) *lookups {
	tables := &lookups{
		items:  make(map[string]*scene.DataItem, len(s.Data.DataItems)),
		colors: make(map[string]*scene.Color, len(s.Theme.ColorPalette)),
		fonts:  make(map[string]*scene.Font, len(s.Theme.FontPalette)),
	}
	for i := range s.Data.DataItems {
		tables.items[s.Data.DataItems[i].ID] = &s.Data.DataItems[i]
	}
	for i := range s.Theme.ColorPalette {
		tables.colors[s.Theme.ColorPalette[i].ID] = &s.Theme.ColorPalette[i]
	}
	for i := range s.Theme.FontPalette {
		tables.fonts[s.Theme.FontPalette[i].FontID] = &s.Theme.FontPalette[i]
	}
	return tables
}

func (r *Renderer) renderStylesheet(s *scene.Scene, tables *lookups) string {
	var css strings.Builder

	for _, font := range s.Theme.FontPalette {
		fmt.Fprintf(&css, "@import url('%s');\n", font.FontURL)
	}

	fmt.Fprintf(&css, ".canvas {\n  position: relative;\n  width: %dpx;\n  height: %dpx;\n  overflow: hidden;\n}\n",
		s.Template.Canvas.Width, s.Template.Canvas.Height)
	css.WriteString("* {\n  box-sizing: border-box;\n}\n")

	r.renderRules(&css, s.Template.Elements, []string{"canvas"}, tables)
	return css.String()
}

func (r *Renderer) renderRules(css *strings.Builder, elements []*scene.Element, ancestors []string, tables *lookups) {
	for _, el := range elements {
		if len(el.Style) > 0 {
			chain := append(append([]string{}, ancestors...), el.ID)
			fmt.Fprintf(css, ".%s {\n", strings.Join(chain, " ."))
			r.writeDeclarations(css, el.Style, tables)
			css.WriteString("}\n")
		}
		if el.Type == scene.ElementContainer && el.Container != nil {
			r.renderRules(css, el.Container.Children, append(ancestors, el.ID), tables)
		}
	}
}

func (r *Renderer) writeDeclarations(css *strings.Builder, style map[string]string, tables *lookups) {
	keys := make([]string, 0, len(style))
	for key := range style {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		name, value := resolveProperty(key, style[key], tables)
		fmt.Fprintf(css, "  %s: %s;\n", name, value)
	}

	// Layering heuristic: elements that do not position themselves are
	// stacked by document order above full-size background layers.
	if _, positioned := style["position"]; !positioned {
		if style["width"] == "100%" && style["height"] == "100%" {
			css.WriteString("  position: absolute;\n  top: 0;\n  left: 0;\n  z-index: 0;\n")
		} else {
			css.WriteString("  position: relative;\n  z-index: 1;\n")
		}
	}
}

func resolveProperty(key, value string, tables *lookups) (string, string) {
	if key == "font" {
		if font, ok := tables.fonts[value]; ok {
			return "font-family", fmt.Sprintf("'%s', serif", font.FontName)
		}
		return "font-family", "serif"
	}

	name := strings.ReplaceAll(key, "_", "-")
	if _, isColorProp := colorProperties[key]; isColorProp {
		// fill has no meaning outside vector contexts; re-map it.
		if key == "fill" {
			name = "background-color"
		}
		if color, ok := tables.colors[value]; ok {
			value = rgba(color)
		}
	}
	return name, value
}

func rgba(c *scene.Color) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'g', -1, 64))
}

func (r *Renderer) renderElements(markup *strings.Builder, elements []*scene.Element, tables *lookups, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, el := range elements {
		switch el.Type {
		case scene.ElementDataItem:
			r.renderDataItem(markup, el, tables, indent)
		case scene.ElementShape:
			fmt.Fprintf(markup, "%s<div class=\"%s\"></div>\n", indent, el.ID)
		case scene.ElementSVG:
			// Raw markup is injected verbatim; callers own sanitization.
			fmt.Fprintf(markup, "%s<div class=\"%s\">%s</div>\n", indent, el.ID, el.SVG.Markup)
		case scene.ElementImage:
			fmt.Fprintf(markup, "%s<img class=\"%s\" src=\"%s\" alt=\"\"/>\n", indent, el.ID, el.Image.URL)
		case scene.ElementContainer:
			fmt.Fprintf(markup, "%s<div class=\"%s\">\n", indent, el.ID)
			if el.Container != nil {
				r.renderElements(markup, el.Container.Children, tables, depth+1)
			}
			fmt.Fprintf(markup, "%s</div>\n", indent)
		}
	}
}

// renderDataItem emits a text div or an img depending on the referenced
// item's own type. A dangling reference renders nothing; this leniency is
// deliberate and distinct from the pipeline's strict final validation.
func (r *Renderer) renderDataItem(markup *strings.Builder, el *scene.Element, tables *lookups, indent string) {
	if el.DataItem == nil {
		return
	}
	item, ok := tables.items[el.DataItem.ItemID]
	if !ok {
		r.log.WithFields(map[string]any{
			"element_id": el.ID,
			"item_id":    el.DataItem.ItemID,
		}).Warn("skipping element with missing data item")
		return
	}

	switch item.Type {
	case scene.DataItemText:
		// Content is injected as-is; callers pre-sanitize.
		fmt.Fprintf(markup, "%s<div class=\"%s\">%s</div>\n", indent, el.ID, item.Content)
	case scene.DataItemImage:
		fmt.Fprintf(markup, "%s<img class=\"%s\" src=\"%s\" alt=\"%s\"/>\n", indent, el.ID, item.ImageURL, item.DisplayName)
	}
}
