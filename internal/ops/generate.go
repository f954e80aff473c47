package ops

import (
	"context"
	"errors"

	"github.com/scenefold/scenefold/internal/imagegen"
	"github.com/scenefold/scenefold/internal/op"
	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

var errNoService = errors.New("no image service configured")

// GenerateImageParams configures the generate_image operation.
type GenerateImageParams struct {
	Prompt       string `json:"prompt" validate:"required"`
	AspectRatio  string `json:"aspect_ratio,omitempty"`
	OutputFormat string `json:"output_format,omitempty"`
}

type generateImageHandler struct{}

// NewGenerateImage returns the generate_image handler. The resulting image
// URL becomes the step's recorded output; composing it into the scene is a
// separate operation.
func NewGenerateImage() op.Handler {
	return &generateImageHandler{}
}

func (h *generateImageHandler) Name() string { return "generate_image" }

func (h *generateImageHandler) Params() any { return &GenerateImageParams{} }

func (h *generateImageHandler) Apply(ctx context.Context, bc *op.BuildContext, params any) (*op.Result, error) {
	p := params.(*GenerateImageParams)

	if bc.Images == nil {
		return nil, scenefolderrors.NewAPIError("imagegen", errNoService)
	}

	url, err := bc.Images.Generate(ctx, imagegen.Request{
		Prompt:       p.Prompt,
		AspectRatio:  p.AspectRatio,
		OutputFormat: p.OutputFormat,
	})
	if err != nil {
		return nil, err
	}

	return &op.Result{Output: url}, nil
}

// EditImageParams configures the edit_image operation.
type EditImageParams struct {
	Prompt       string   `json:"prompt" validate:"required"`
	InputImages  []string `json:"input_images" validate:"required,min=1"`
	OutputFormat string   `json:"output_format,omitempty"`
}

type editImageHandler struct{}

// NewEditImage returns the edit_image handler.
func NewEditImage() op.Handler {
	return &editImageHandler{}
}

func (h *editImageHandler) Name() string { return "edit_image" }

func (h *editImageHandler) Params() any { return &EditImageParams{} }

func (h *editImageHandler) Apply(ctx context.Context, bc *op.BuildContext, params any) (*op.Result, error) {
	p := params.(*EditImageParams)

	if bc.Images == nil {
		return nil, scenefolderrors.NewAPIError("imagegen", errNoService)
	}

	url, err := bc.Images.Edit(ctx, imagegen.Request{
		Prompt:       p.Prompt,
		InputImages:  p.InputImages,
		OutputFormat: p.OutputFormat,
	})
	if err != nil {
		return nil, err
	}

	return &op.Result{Output: url}, nil
}
