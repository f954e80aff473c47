// Package scene holds the composition data model: scene data, layout
// template, theme palettes and the element tree operations that the
// operation pipeline and the renderer both build on.
package scene

import (
	"fmt"

	"github.com/google/uuid"

	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

// DataItemType discriminates the two kinds of scene content.
type DataItemType string

const (
	DataItemText  DataItemType = "text"
	DataItemImage DataItemType = "image"
)

// DataItem is a named piece of content referenced by elements: inline text
// or an image URL.
type DataItem struct {
	ID          string       `json:"id"`
	Type        DataItemType `json:"type"`
	DisplayName string       `json:"display_name"`
	Content     string       `json:"content,omitempty"`
	ImageURL    string       `json:"image_url,omitempty"`
}

// SceneData is the ordered collection of data items belonging to a scene.
type SceneData struct {
	SceneID   string     `json:"scene_id"`
	DataItems []DataItem `json:"data_items"`
}

// ItemByID returns the data item with the given ID, or nil.
func (d *SceneData) ItemByID(id string) *DataItem {
	for i := range d.DataItems {
		if d.DataItems[i].ID == id {
			return &d.DataItems[i]
		}
	}
	return nil
}

// RemoveItem deletes the data item with the given ID, preserving the order
// of the remaining items. A miss is a no-op.
func (d *SceneData) RemoveItem(id string) {
	for i := range d.DataItems {
		if d.DataItems[i].ID == id {
			d.DataItems = append(d.DataItems[:i], d.DataItems[i+1:]...)
			return
		}
	}
}

// Scene is the triple of data, template and theme treated as one logical
// unit for rendering. The three parts are independently loadable but must
// be reconciled before render.
type Scene struct {
	Data     *SceneData
	Template *Template
	Theme    *Theme
}

// NewScene creates an empty scene with the given ID.
func NewScene(id string) *Scene {
	return &Scene{
		Data:     &SceneData{SceneID: id, DataItems: []DataItem{}},
		Template: &Template{TemplateID: id, TemplateName: id, Elements: []*Element{}},
		Theme:    &Theme{ThemeID: id, ThemeName: id, ColorPalette: []Color{}, FontPalette: []Font{}},
	}
}

// Validate performs whole-scene structural validation: the canvas must
// have positive dimensions, palettes must be within bounds, and every
// data_item element anywhere in the tree must reference an existing data
// item.
func (s *Scene) Validate() error {
	if s.Template == nil || s.Data == nil || s.Theme == nil {
		return scenefolderrors.NewValidationError("scene", "scene is incomplete", nil)
	}
	if s.Template.Canvas.Width <= 0 || s.Template.Canvas.Height <= 0 {
		return scenefolderrors.NewValidationError("canvas", "canvas dimensions must be positive", nil)
	}
	if len(s.Theme.ColorPalette) > MaxColors {
		return scenefolderrors.NewValidationError("theme", fmt.Sprintf("color palette exceeds %d entries", MaxColors), nil)
	}
	if len(s.Theme.FontPalette) > MaxFonts {
		return scenefolderrors.NewValidationError("theme", fmt.Sprintf("font palette exceeds %d entries", MaxFonts), nil)
	}

	return validateDataRefs(s.Template.Elements, s.Data)
}

func validateDataRefs(elements []*Element, data *SceneData) error {
	for _, el := range elements {
		switch el.Type {
		case ElementDataItem:
			if el.DataItem == nil || data.ItemByID(el.DataItem.ItemID) == nil {
				itemID := ""
				if el.DataItem != nil {
					itemID = el.DataItem.ItemID
				}
				return scenefolderrors.NewValidationError("template", fmt.Sprintf("element %q references missing data item %q", el.ID, itemID), nil)
			}
		case ElementContainer:
			if el.Container != nil {
				if err := validateDataRefs(el.Container.Children, data); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// newID synthesizes a unique id with a type prefix. Element ids end up as
// CSS class names, which must not start with a digit, so the alphabetic
// prefix is load-bearing.
func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
