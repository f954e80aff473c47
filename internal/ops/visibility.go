package ops

import (
	"context"

	"github.com/scenefold/scenefold/internal/op"
	"github.com/scenefold/scenefold/internal/scene"
)

// SetLayerVisibilityParams configures the set_layer_visibility operation.
type SetLayerVisibilityParams struct {
	LayerName string `json:"layer_name" validate:"required"`
	Visible   *bool  `json:"visible" validate:"required"`
}

type setLayerVisibilityHandler struct{}

// NewSetLayerVisibility returns the set_layer_visibility handler.
func NewSetLayerVisibility() op.Handler {
	return &setLayerVisibilityHandler{}
}

func (h *setLayerVisibilityHandler) Name() string { return "set_layer_visibility" }

func (h *setLayerVisibilityHandler) Params() any { return &SetLayerVisibilityParams{} }

func (h *setLayerVisibilityHandler) Apply(ctx context.Context, bc *op.BuildContext, params any) (*op.Result, error) {
	p := params.(*SetLayerVisibilityParams)

	el, err := layerElement(bc, p.LayerName)
	if err != nil {
		return nil, err
	}

	// Toggle a display style only; the element stays in the tree.
	if *p.Visible {
		delete(el.Style, "display")
	} else {
		el.Style["display"] = "none"
	}

	return &op.Result{}, nil
}

// DeleteLayerParams configures the delete_layer operation.
type DeleteLayerParams struct {
	LayerName string `json:"layer_name" validate:"required"`
}

type deleteLayerHandler struct{}

// NewDeleteLayer returns the delete_layer handler.
func NewDeleteLayer() op.Handler {
	return &deleteLayerHandler{}
}

func (h *deleteLayerHandler) Name() string { return "delete_layer" }

func (h *deleteLayerHandler) Params() any { return &DeleteLayerParams{} }

func (h *deleteLayerHandler) Apply(ctx context.Context, bc *op.BuildContext, params any) (*op.Result, error) {
	p := params.(*DeleteLayerParams)

	el, err := layerElement(bc, p.LayerName)
	if err != nil {
		return nil, err
	}

	removed := scene.RemoveElement(bc.Template, el.ID)
	if removed != nil && removed.Type == scene.ElementDataItem && removed.DataItem != nil {
		bc.Data.RemoveItem(removed.DataItem.ItemID)
	}
	delete(bc.Layers, p.LayerName)

	return &op.Result{}, nil
}
