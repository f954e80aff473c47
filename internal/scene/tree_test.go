package scene

import (
	"testing"

	"github.com/stretchr/testify/require"

	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

func buildTree(t *testing.T) (*Template, *Element, *Element, *Element) {
	t.Helper()

	outer := NewElement(ElementContainer)
	inner := NewElement(ElementContainer)
	leaf := NewElement(ElementShape)
	leaf.Shape.Kind = "rectangle"

	inner.Container.Children = append(inner.Container.Children, leaf)
	outer.Container.Children = append(outer.Container.Children, inner)

	tmpl := &Template{Canvas: Canvas{Width: 100, Height: 100}, Elements: []*Element{outer}}
	return tmpl, outer, inner, leaf
}

func TestFindElementDescendsContainers(t *testing.T) {
	t.Parallel()

	tmpl, _, inner, leaf := buildTree(t)

	require.Same(t, leaf, FindElement(tmpl.Elements, leaf.ID))
	require.Same(t, inner, FindElement(tmpl.Elements, inner.ID))
	require.Nil(t, FindElement(tmpl.Elements, "missing"))
}

func TestRemoveElementPreservesSiblingOrder(t *testing.T) {
	t.Parallel()

	a := NewElement(ElementShape)
	b := NewElement(ElementShape)
	c := NewElement(ElementShape)
	tmpl := &Template{Elements: []*Element{a, b, c}}

	removed := RemoveElement(tmpl, b.ID)
	require.Same(t, b, removed)
	require.Equal(t, []*Element{a, c}, tmpl.Elements)

	require.Nil(t, RemoveElement(tmpl, "missing"))
}

func TestMoveToContainer(t *testing.T) {
	t.Parallel()

	tmpl, outer, _, leaf := buildTree(t)
	sibling := NewElement(ElementImage)
	tmpl.Elements = append(tmpl.Elements, sibling)

	require.NoError(t, MoveToContainer(tmpl, sibling.ID, outer.ID))
	require.Len(t, tmpl.Elements, 1)
	require.Same(t, sibling, outer.Container.Children[len(outer.Container.Children)-1])

	// Moving again relocates rather than duplicating.
	require.NoError(t, MoveToContainer(tmpl, sibling.ID, outer.ID))
	count := 0
	var walk func([]*Element)
	walk = func(elements []*Element) {
		for _, el := range elements {
			if el.ID == sibling.ID {
				count++
			}
			if el.Type == ElementContainer {
				walk(el.Container.Children)
			}
		}
	}
	walk(tmpl.Elements)
	require.Equal(t, 1, count)

	err := MoveToContainer(tmpl, leaf.ID, "missing")
	var refErr *scenefolderrors.ReferenceError
	require.ErrorAs(t, err, &refErr)

	err = MoveToContainer(tmpl, "missing", outer.ID)
	require.ErrorAs(t, err, &refErr)

	err = MoveToContainer(tmpl, sibling.ID, leaf.ID)
	var vErr *scenefolderrors.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestMoveToContainerRejectsCycles(t *testing.T) {
	t.Parallel()

	tmpl, outer, inner, _ := buildTree(t)

	err := MoveToContainer(tmpl, outer.ID, inner.ID)
	var vErr *scenefolderrors.ValidationError
	require.ErrorAs(t, err, &vErr)

	err = MoveToContainer(tmpl, outer.ID, outer.ID)
	require.ErrorAs(t, err, &vErr)

	// The failed moves must not have mutated the tree.
	require.Len(t, tmpl.Elements, 1)
	require.Same(t, outer, tmpl.Elements[0])
	require.Same(t, inner, outer.Container.Children[0])
}

func TestSceneValidate(t *testing.T) {
	t.Parallel()

	s := NewScene("s1")
	s.Template.Canvas = Canvas{Width: 800, Height: 600}

	el := NewElement(ElementDataItem)
	el.DataItem.ItemID = "item-1"
	container := NewElement(ElementContainer)
	container.Container.Children = append(container.Container.Children, el)
	s.Template.Elements = append(s.Template.Elements, container)

	err := s.Validate()
	var vErr *scenefolderrors.ValidationError
	require.ErrorAs(t, err, &vErr)

	s.Data.DataItems = append(s.Data.DataItems, DataItem{ID: "item-1", Type: DataItemText, Content: "hi"})
	require.NoError(t, s.Validate())

	s.Template.Canvas.Width = 0
	require.ErrorAs(t, s.Validate(), &vErr)
}
