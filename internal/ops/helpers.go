// Package ops implements the closed set of scene-building operations
// dispatched by the pipeline. Each handler declares a typed parameter
// struct; the pipeline validates it before Apply is invoked.
package ops

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scenefold/scenefold/internal/op"
	"github.com/scenefold/scenefold/internal/scene"
	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

func px(n int) string {
	return fmt.Sprintf("%dpx", n)
}

func pxf(v float64) string {
	return fmt.Sprintf("%gpx", v)
}

// stylePx reads a pixel-valued style property, returning 0 for absent or
// non-pixel values.
func stylePx(style map[string]string, key string) float64 {
	raw, ok := style[key]
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(raw, "px"), 64)
	if err != nil {
		return 0
	}
	return v
}

// layerElement resolves a caller-assigned layer name to its element.
func layerElement(bc *op.BuildContext, name string) (*scene.Element, error) {
	id, ok := bc.Layers[name]
	if !ok {
		return nil, scenefolderrors.NewReferenceError("layer", name)
	}
	el := scene.FindElement(bc.Template.Elements, id)
	if el == nil {
		return nil, scenefolderrors.NewReferenceError("element", id)
	}
	return el, nil
}

func requireUnusedLayerName(bc *op.BuildContext, name string) error {
	if _, exists := bc.Layers[name]; exists {
		return scenefolderrors.NewValidationError("layer_name", fmt.Sprintf("layer name %q is already in use", name), nil)
	}
	return nil
}

// textItemForElement returns the text data item backing a data_item
// element, or a validation error when the layer is not a text layer.
func textItemForElement(bc *op.BuildContext, el *scene.Element, layerName string) (*scene.DataItem, error) {
	if el.Type != scene.ElementDataItem || el.DataItem == nil {
		return nil, scenefolderrors.NewValidationError("layer_name", fmt.Sprintf("layer %q is not a text layer", layerName), nil)
	}
	item := bc.Data.ItemByID(el.DataItem.ItemID)
	if item == nil {
		return nil, scenefolderrors.NewReferenceError("data item", el.DataItem.ItemID)
	}
	if item.Type != scene.DataItemText {
		return nil, scenefolderrors.NewValidationError("layer_name", fmt.Sprintf("layer %q is not a text layer", layerName), nil)
	}
	return item, nil
}
