package ops

import (
	"context"

	"github.com/scenefold/scenefold/internal/op"
	"github.com/scenefold/scenefold/internal/scene"
)

// AddImageLayerParams configures the add_image_layer operation.
type AddImageLayerParams struct {
	LayerName  string `json:"layer_name" validate:"required"`
	InputImage string `json:"input_image" validate:"required"`
	X          int    `json:"x,omitempty"`
	Y          int    `json:"y,omitempty"`
	Width      int    `json:"width,omitempty" validate:"omitempty,gt=0"`
	Height     int    `json:"height,omitempty" validate:"omitempty,gt=0"`
}

type addImageLayerHandler struct{}

// NewAddImageLayer returns the add_image_layer handler.
func NewAddImageLayer() op.Handler {
	return &addImageLayerHandler{}
}

func (h *addImageLayerHandler) Name() string { return "add_image_layer" }

func (h *addImageLayerHandler) Params() any { return &AddImageLayerParams{} }

func (h *addImageLayerHandler) Apply(ctx context.Context, bc *op.BuildContext, params any) (*op.Result, error) {
	p := params.(*AddImageLayerParams)

	if err := requireUnusedLayerName(bc, p.LayerName); err != nil {
		return nil, err
	}

	item := scene.DataItem{
		ID:          bc.SceneID + "-" + p.LayerName,
		Type:        scene.DataItemImage,
		DisplayName: p.LayerName,
		ImageURL:    p.InputImage,
	}
	bc.Data.DataItems = append(bc.Data.DataItems, item)

	el := scene.NewElement(scene.ElementDataItem)
	el.DataItem.ItemID = item.ID
	el.Style["position"] = "absolute"
	el.Style["left"] = px(p.X)
	el.Style["top"] = px(p.Y)
	if p.Width > 0 {
		el.Style["width"] = px(p.Width)
	}
	if p.Height > 0 {
		el.Style["height"] = px(p.Height)
	}

	bc.Template.Elements = append(bc.Template.Elements, el)
	bc.Layers[p.LayerName] = el.ID

	return &op.Result{}, nil
}
