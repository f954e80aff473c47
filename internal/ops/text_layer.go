package ops

import (
	"context"
	"fmt"

	"github.com/scenefold/scenefold/internal/layout"
	"github.com/scenefold/scenefold/internal/op"
	"github.com/scenefold/scenefold/internal/scene"
)

// ShadowParams describes an optional drop shadow on a text layer.
type ShadowParams struct {
	Color   string   `json:"color,omitempty"`
	OffsetX int      `json:"offset_x,omitempty"`
	OffsetY int      `json:"offset_y,omitempty"`
	Blur    int      `json:"blur,omitempty"`
	Opacity *float64 `json:"opacity,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// AddTextLayerParams configures the add_text_layer operation. Position is
// resolved with priority anchor > explicit x/y > full centering.
type AddTextLayerParams struct {
	LayerName string        `json:"layer_name" validate:"required"`
	Text      string        `json:"text" validate:"required"`
	Font      string        `json:"font,omitempty"`
	FontSize  int           `json:"font_size,omitempty" validate:"omitempty,gt=0"`
	Color     string        `json:"color,omitempty"`
	Bold      bool          `json:"bold,omitempty"`
	Italic    bool          `json:"italic,omitempty"`
	Anchor    string        `json:"anchor,omitempty"`
	X         *int          `json:"x,omitempty"`
	Y         *int          `json:"y,omitempty"`
	Shadow    *ShadowParams `json:"shadow,omitempty"`
}

type addTextLayerHandler struct{}

// NewAddTextLayer returns the add_text_layer handler.
func NewAddTextLayer() op.Handler {
	return &addTextLayerHandler{}
}

func (h *addTextLayerHandler) Name() string { return "add_text_layer" }

func (h *addTextLayerHandler) Params() any { return &AddTextLayerParams{} }

func (h *addTextLayerHandler) Apply(ctx context.Context, bc *op.BuildContext, params any) (*op.Result, error) {
	p := params.(*AddTextLayerParams)

	if err := requireUnusedLayerName(bc, p.LayerName); err != nil {
		return nil, err
	}

	item := scene.DataItem{
		ID:          bc.SceneID + "-" + p.LayerName,
		Type:        scene.DataItemText,
		DisplayName: p.LayerName,
		Content:     p.Text,
	}

	el := scene.NewElement(scene.ElementDataItem)
	el.DataItem.ItemID = item.ID

	fontSize := p.FontSize
	if fontSize == 0 {
		fontSize = 16
	}
	el.Style["font_size"] = px(fontSize)

	if p.Font != "" {
		fontID, err := scene.EnsureFont(ctx, bc.Theme, bc.Fonts, p.Font)
		if err != nil {
			return nil, err
		}
		el.Style["font"] = fontID
	}
	if p.Color != "" {
		colorID, err := scene.EnsureColor(bc.Theme, p.Color)
		if err != nil {
			return nil, err
		}
		el.Style["color"] = colorID
	}
	if p.Bold {
		el.Style["font_weight"] = "bold"
	}
	if p.Italic {
		el.Style["font_style"] = "italic"
	}

	if p.Shadow != nil {
		shadow, err := shadowCSS(p.Shadow)
		if err != nil {
			return nil, err
		}
		el.Style["text_shadow"] = shadow
	}

	if err := positionTextElement(el, p); err != nil {
		return nil, err
	}

	bc.Data.DataItems = append(bc.Data.DataItems, item)
	bc.Template.Elements = append(bc.Template.Elements, el)
	bc.Layers[p.LayerName] = el.ID

	return &op.Result{}, nil
}

func positionTextElement(el *scene.Element, p *AddTextLayerParams) error {
	switch {
	case p.Anchor != "":
		anchor, err := layout.ParseAnchor(p.Anchor)
		if err != nil {
			return err
		}
		style, err := anchor.CSS()
		if err != nil {
			return err
		}
		for k, v := range style {
			el.Style[k] = v
		}
	case p.X != nil || p.Y != nil:
		x, y := 0, 0
		if p.X != nil {
			x = *p.X
		}
		if p.Y != nil {
			y = *p.Y
		}
		el.Style["position"] = "absolute"
		el.Style["left"] = px(x)
		el.Style["top"] = px(y)
	default:
		style, err := layout.AnchorCenter.CSS()
		if err != nil {
			return err
		}
		for k, v := range style {
			el.Style[k] = v
		}
	}
	return nil
}

// shadowCSS composes the text-shadow value. An opacity below 1 expands the
// shadow color to an rgba literal computed from the hex color's bytes.
func shadowCSS(p *ShadowParams) (string, error) {
	colorSpec := p.Color
	if colorSpec == "" {
		colorSpec = "#000000"
	}

	opacity := 1.0
	if p.Opacity != nil {
		opacity = *p.Opacity
	}

	colorValue := colorSpec
	if opacity < 1 {
		r, g, b, _, err := scene.ParseHexColor(colorSpec)
		if err != nil {
			return "", err
		}
		colorValue = fmt.Sprintf("rgba(%d, %d, %d, %g)", r, g, b, opacity)
	}

	return fmt.Sprintf("%dpx %dpx %dpx %s", p.OffsetX, p.OffsetY, p.Blur, colorValue), nil
}
