package scene

import (
	"encoding/json"
	"fmt"
)

// ElementType discriminates the five element variants.
type ElementType string

const (
	ElementDataItem  ElementType = "data_item"
	ElementShape     ElementType = "shape"
	ElementSVG       ElementType = "svg"
	ElementImage     ElementType = "image"
	ElementContainer ElementType = "container"
)

// Canvas is the pixel size of the template's drawing surface.
type Canvas struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Template owns the canvas dimensions and the root element list.
type Template struct {
	TemplateID   string     `json:"template_id"`
	TemplateName string     `json:"template_name"`
	Canvas       Canvas     `json:"canvas"`
	Elements     []*Element `json:"elements"`
}

// Element is a node in the layout tree, tagged by a closed variant. Each
// variant carries only the fields relevant to it; exactly one of the
// variant pointers is set, matching Type. Only containers hold children.
type Element struct {
	ID    string
	Type  ElementType
	Style map[string]string

	DataItem  *DataItemRef
	Shape     *ShapeElement
	SVG       *SVGElement
	Image     *ImageElement
	Container *ContainerElement
}

// DataItemRef points an element at a data item by ID.
type DataItemRef struct {
	ItemID string `json:"item_id"`
}

// ShapeElement carries a shape kind, e.g. "rectangle".
type ShapeElement struct {
	Kind string `json:"shape"`
}

// SVGElement carries raw embeddable markup, injected verbatim at render.
type SVGElement struct {
	Markup string `json:"svg"`
}

// ImageElement carries its own URL, independent of any data item.
type ImageElement struct {
	URL string `json:"image_url"`
}

// ContainerElement owns an ordered list of child elements.
type ContainerElement struct {
	Children []*Element `json:"children"`
}

// NewElement creates an element of the given type with a fresh ID and an
// empty style map.
func NewElement(elementType ElementType) *Element {
	el := &Element{ID: newID("el"), Type: elementType, Style: map[string]string{}}
	switch elementType {
	case ElementContainer:
		el.Container = &ContainerElement{Children: []*Element{}}
	case ElementShape:
		el.Shape = &ShapeElement{}
	case ElementSVG:
		el.SVG = &SVGElement{}
	case ElementImage:
		el.Image = &ImageElement{}
	case ElementDataItem:
		el.DataItem = &DataItemRef{}
	}
	return el
}

type elementJSON struct {
	ID          string            `json:"id"`
	ElementType ElementType       `json:"element_type"`
	Style       map[string]string `json:"style,omitempty"`
	ItemID      string            `json:"item_id,omitempty"`
	Shape       string            `json:"shape,omitempty"`
	SVG         string            `json:"svg,omitempty"`
	ImageURL    string            `json:"image_url,omitempty"`
	Children    []*Element        `json:"children,omitempty"`
}

// MarshalJSON flattens the tagged union into a single object keyed by
// element_type.
func (e *Element) MarshalJSON() ([]byte, error) {
	out := elementJSON{ID: e.ID, ElementType: e.Type, Style: e.Style}
	switch e.Type {
	case ElementDataItem:
		if e.DataItem != nil {
			out.ItemID = e.DataItem.ItemID
		}
	case ElementShape:
		if e.Shape != nil {
			out.Shape = e.Shape.Kind
		}
	case ElementSVG:
		if e.SVG != nil {
			out.SVG = e.SVG.Markup
		}
	case ElementImage:
		if e.Image != nil {
			out.ImageURL = e.Image.URL
		}
	case ElementContainer:
		out.Children = []*Element{}
		if e.Container != nil {
			out.Children = e.Container.Children
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the flat object form back into the variant that
// matches element_type, rejecting unknown tags.
func (e *Element) UnmarshalJSON(data []byte) error {
	var raw elementJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.ID = raw.ID
	e.Type = raw.ElementType
	e.Style = raw.Style
	if e.Style == nil {
		e.Style = map[string]string{}
	}
	e.DataItem = nil
	e.Shape = nil
	e.SVG = nil
	e.Image = nil
	e.Container = nil

	switch raw.ElementType {
	case ElementDataItem:
		e.DataItem = &DataItemRef{ItemID: raw.ItemID}
	case ElementShape:
		e.Shape = &ShapeElement{Kind: raw.Shape}
	case ElementSVG:
		e.SVG = &SVGElement{Markup: raw.SVG}
	case ElementImage:
		e.Image = &ImageElement{URL: raw.ImageURL}
	case ElementContainer:
		children := raw.Children
		if children == nil {
			children = []*Element{}
		}
		e.Container = &ContainerElement{Children: children}
	default:
		return fmt.Errorf("unknown element_type %q", raw.ElementType)
	}

	return nil
}
