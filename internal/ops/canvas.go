package ops

import (
	"context"

	"github.com/scenefold/scenefold/internal/op"
	"github.com/scenefold/scenefold/internal/scene"
)

// CreateCanvasParams configures the create_canvas operation.
type CreateCanvasParams struct {
	Width           int    `json:"width" validate:"required,gt=0"`
	Height          int    `json:"height" validate:"required,gt=0"`
	BackgroundColor string `json:"background_color,omitempty"`
}

type createCanvasHandler struct{}

// NewCreateCanvas returns the create_canvas handler.
func NewCreateCanvas() op.Handler {
	return &createCanvasHandler{}
}

func (h *createCanvasHandler) Name() string { return "create_canvas" }

func (h *createCanvasHandler) Params() any { return &CreateCanvasParams{} }

func (h *createCanvasHandler) Apply(ctx context.Context, bc *op.BuildContext, params any) (*op.Result, error) {
	p := params.(*CreateCanvasParams)

	bc.Template.Canvas = scene.Canvas{Width: p.Width, Height: p.Height}

	if p.BackgroundColor != "" {
		colorID, err := scene.EnsureColor(bc.Theme, p.BackgroundColor)
		if err != nil {
			return nil, err
		}

		background := scene.NewElement(scene.ElementShape)
		background.Shape.Kind = "rectangle"
		background.Style["width"] = "100%"
		background.Style["height"] = "100%"
		background.Style["background_color"] = colorID
		bc.Template.Elements = append([]*scene.Element{background}, bc.Template.Elements...)
	}

	return &op.Result{}, nil
}
