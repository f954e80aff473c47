package ops

import (
	"context"
	"fmt"

	"github.com/scenefold/scenefold/internal/op"
	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

// notImplementedHandler rejects operations that are part of the registry
// vocabulary but have no implementation yet: resize_image, crop_image,
// remove_background, upscale and segment. Callers must treat these as
// permanently unsupported until a real handler is registered.
type notImplementedHandler struct {
	name string
}

// NewNotImplemented returns a handler that always fails with a
// not-implemented error.
func NewNotImplemented(name string) op.Handler {
	return &notImplementedHandler{name: name}
}

func (h *notImplementedHandler) Name() string { return h.name }

func (h *notImplementedHandler) Params() any { return &struct{}{} }

func (h *notImplementedHandler) Apply(ctx context.Context, bc *op.BuildContext, params any) (*op.Result, error) {
	return nil, scenefolderrors.NewValidationError("operation", fmt.Sprintf("operation %q is not implemented", h.name), nil)
}
