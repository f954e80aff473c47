package ops

import (
	"context"

	"github.com/scenefold/scenefold/internal/op"
	"github.com/scenefold/scenefold/internal/scene"
	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

// CreateFlexContainerParams configures the create_flex_container
// operation. Defaults are row / flex-start / flex-start / 0.
type CreateFlexContainerParams struct {
	ContainerName string `json:"container_name" validate:"required"`
	Direction     string `json:"direction,omitempty" validate:"omitempty,oneof=row row-reverse column column-reverse"`
	Justify       string `json:"justify,omitempty" validate:"omitempty,oneof=flex-start flex-end center space-between space-around space-evenly"`
	Align         string `json:"align,omitempty" validate:"omitempty,oneof=flex-start flex-end center stretch baseline"`
	Gap           int    `json:"gap,omitempty" validate:"omitempty,gte=0"`
}

type createFlexContainerHandler struct{}

// NewCreateFlexContainer returns the create_flex_container handler.
func NewCreateFlexContainer() op.Handler {
	return &createFlexContainerHandler{}
}

func (h *createFlexContainerHandler) Name() string { return "create_flex_container" }

func (h *createFlexContainerHandler) Params() any { return &CreateFlexContainerParams{} }

func (h *createFlexContainerHandler) Apply(ctx context.Context, bc *op.BuildContext, params any) (*op.Result, error) {
	p := params.(*CreateFlexContainerParams)

	if err := requireUnusedLayerName(bc, p.ContainerName); err != nil {
		return nil, err
	}

	direction := p.Direction
	if direction == "" {
		direction = "row"
	}
	justify := p.Justify
	if justify == "" {
		justify = "flex-start"
	}
	align := p.Align
	if align == "" {
		align = "flex-start"
	}

	el := scene.NewElement(scene.ElementContainer)
	el.Style["display"] = "flex"
	el.Style["flex_direction"] = direction
	el.Style["justify_content"] = justify
	el.Style["align_items"] = align
	el.Style["gap"] = px(p.Gap)

	bc.Template.Elements = append(bc.Template.Elements, el)
	bc.Layers[p.ContainerName] = el.ID

	return &op.Result{}, nil
}

// AddLayerToContainerParams configures the add_layer_to_container
// operation.
type AddLayerToContainerParams struct {
	LayerName     string `json:"layer_name" validate:"required"`
	ContainerName string `json:"container_name" validate:"required"`
}

type addLayerToContainerHandler struct{}

// NewAddLayerToContainer returns the add_layer_to_container handler.
func NewAddLayerToContainer() op.Handler {
	return &addLayerToContainerHandler{}
}

func (h *addLayerToContainerHandler) Name() string { return "add_layer_to_container" }

func (h *addLayerToContainerHandler) Params() any { return &AddLayerToContainerParams{} }

func (h *addLayerToContainerHandler) Apply(ctx context.Context, bc *op.BuildContext, params any) (*op.Result, error) {
	p := params.(*AddLayerToContainerParams)

	layerID, ok := bc.Layers[p.LayerName]
	if !ok {
		return nil, scenefolderrors.NewReferenceError("layer", p.LayerName)
	}
	containerID, ok := bc.Layers[p.ContainerName]
	if !ok {
		return nil, scenefolderrors.NewReferenceError("container", p.ContainerName)
	}

	if err := scene.MoveToContainer(bc.Template, layerID, containerID); err != nil {
		return nil, err
	}

	return &op.Result{}, nil
}

// SetFlexLayoutParams configures the set_flex_layout operation. Only the
// supplied properties are patched.
type SetFlexLayoutParams struct {
	ContainerName string  `json:"container_name" validate:"required"`
	Direction     *string `json:"direction,omitempty" validate:"omitempty,oneof=row row-reverse column column-reverse"`
	Justify       *string `json:"justify,omitempty" validate:"omitempty,oneof=flex-start flex-end center space-between space-around space-evenly"`
	Align         *string `json:"align,omitempty" validate:"omitempty,oneof=flex-start flex-end center stretch baseline"`
	Gap           *int    `json:"gap,omitempty" validate:"omitempty,gte=0"`
}

type setFlexLayoutHandler struct{}

// NewSetFlexLayout returns the set_flex_layout handler.
func NewSetFlexLayout() op.Handler {
	return &setFlexLayoutHandler{}
}

func (h *setFlexLayoutHandler) Name() string { return "set_flex_layout" }

func (h *setFlexLayoutHandler) Params() any { return &SetFlexLayoutParams{} }

func (h *setFlexLayoutHandler) Apply(ctx context.Context, bc *op.BuildContext, params any) (*op.Result, error) {
	p := params.(*SetFlexLayoutParams)

	el, err := layerElement(bc, p.ContainerName)
	if err != nil {
		return nil, err
	}
	if el.Type != scene.ElementContainer {
		return nil, scenefolderrors.NewValidationError("container_name", "element is not a container", nil)
	}

	if p.Direction != nil {
		el.Style["flex_direction"] = *p.Direction
	}
	if p.Justify != nil {
		el.Style["justify_content"] = *p.Justify
	}
	if p.Align != nil {
		el.Style["align_items"] = *p.Align
	}
	if p.Gap != nil {
		el.Style["gap"] = px(*p.Gap)
	}

	return &op.Result{}, nil
}
