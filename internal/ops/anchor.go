package ops

import (
	"context"

	"github.com/scenefold/scenefold/internal/layout"
	"github.com/scenefold/scenefold/internal/op"
)

// SetLayerAnchorParams configures the set_layer_anchor operation. The
// element is repositioned relative to the canvas, or to another named
// layer's current box when relative_to is given.
type SetLayerAnchorParams struct {
	LayerName  string  `json:"layer_name" validate:"required"`
	Anchor     string  `json:"anchor" validate:"required"`
	RelativeTo string  `json:"relative_to,omitempty"`
	OffsetX    float64 `json:"offset_x,omitempty"`
	OffsetY    float64 `json:"offset_y,omitempty"`
}

type setLayerAnchorHandler struct{}

// NewSetLayerAnchor returns the set_layer_anchor handler.
func NewSetLayerAnchor() op.Handler {
	return &setLayerAnchorHandler{}
}

func (h *setLayerAnchorHandler) Name() string { return "set_layer_anchor" }

func (h *setLayerAnchorHandler) Params() any { return &SetLayerAnchorParams{} }

func (h *setLayerAnchorHandler) Apply(ctx context.Context, bc *op.BuildContext, params any) (*op.Result, error) {
	p := params.(*SetLayerAnchorParams)

	anchor, err := layout.ParseAnchor(p.Anchor)
	if err != nil {
		return nil, err
	}

	el, err := layerElement(bc, p.LayerName)
	if err != nil {
		return nil, err
	}

	boxX, boxY := 0.0, 0.0
	boxW := float64(bc.Template.Canvas.Width)
	boxH := float64(bc.Template.Canvas.Height)
	if p.RelativeTo != "" {
		ref, err := layerElement(bc, p.RelativeTo)
		if err != nil {
			return nil, err
		}
		boxX = stylePx(ref.Style, "left")
		boxY = stylePx(ref.Style, "top")
		// A reference without pixel dimensions collapses to a point at
		// its origin; it never inherits the canvas box.
		boxW = stylePx(ref.Style, "width")
		boxH = stylePx(ref.Style, "height")
	}

	w := stylePx(el.Style, "width")
	height := stylePx(el.Style, "height")

	x, y, err := layout.Position(boxW, boxH, w, height, anchor, p.OffsetX, p.OffsetY)
	if err != nil {
		return nil, err
	}

	el.Style["position"] = "absolute"
	el.Style["left"] = pxf(boxX + x)
	el.Style["top"] = pxf(boxY + y)
	// Percent-based anchoring from an earlier step no longer applies.
	delete(el.Style, "transform")

	return &op.Result{}, nil
}
