package ops

import (
	"context"

	"github.com/scenefold/scenefold/internal/op"
	"github.com/scenefold/scenefold/internal/scene"
)

// EditTextLayerParams configures the edit_text_layer operation. Only the
// supplied fields are patched.
type EditTextLayerParams struct {
	LayerName string  `json:"layer_name" validate:"required"`
	Text      *string `json:"text,omitempty"`
	Font      *string `json:"font,omitempty"`
	FontSize  *int    `json:"font_size,omitempty" validate:"omitempty,gt=0"`
	Color     *string `json:"color,omitempty"`
	Alignment *string `json:"alignment,omitempty" validate:"omitempty,oneof=left center right justify"`
}

type editTextLayerHandler struct{}

// NewEditTextLayer returns the edit_text_layer handler.
func NewEditTextLayer() op.Handler {
	return &editTextLayerHandler{}
}

func (h *editTextLayerHandler) Name() string { return "edit_text_layer" }

func (h *editTextLayerHandler) Params() any { return &EditTextLayerParams{} }

func (h *editTextLayerHandler) Apply(ctx context.Context, bc *op.BuildContext, params any) (*op.Result, error) {
	p := params.(*EditTextLayerParams)

	el, err := layerElement(bc, p.LayerName)
	if err != nil {
		return nil, err
	}

	item, err := textItemForElement(bc, el, p.LayerName)
	if err != nil {
		return nil, err
	}

	if p.Text != nil {
		item.Content = *p.Text
	}
	if p.Font != nil {
		fontID, err := scene.EnsureFont(ctx, bc.Theme, bc.Fonts, *p.Font)
		if err != nil {
			return nil, err
		}
		el.Style["font"] = fontID
	}
	if p.FontSize != nil {
		el.Style["font_size"] = px(*p.FontSize)
	}
	if p.Color != nil {
		colorID, err := scene.EnsureColor(bc.Theme, *p.Color)
		if err != nil {
			return nil, err
		}
		el.Style["color"] = colorID
	}
	if p.Alignment != nil {
		el.Style["text_align"] = *p.Alignment
	}

	return &op.Result{}, nil
}
