package ops

import (
	"github.com/scenefold/scenefold/internal/op"
)

// DefaultRegistry wires the full closed set of operation handlers.
func DefaultRegistry() *op.Registry {
	registry := op.NewRegistry()
	registry.MustRegister(
		NewCreateCanvas(),
		NewAddImageLayer(),
		NewAddTextLayer(),
		NewEditTextLayer(),
		NewSetLayerVisibility(),
		NewDeleteLayer(),
		NewGenerateImage(),
		NewEditImage(),
		NewSetLayerAnchor(),
		NewCreateFlexContainer(),
		NewAddLayerToContainer(),
		NewSetFlexLayout(),
		NewNotImplemented("resize_image"),
		NewNotImplemented("crop_image"),
		NewNotImplemented("remove_background"),
		NewNotImplemented("upscale"),
		NewNotImplemented("segment"),
	)
	return registry
}
