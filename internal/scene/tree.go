package scene

import (
	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

// FindElement searches the element forest depth-first, descending only
// into container children, and returns the first ID match or nil.
func FindElement(elements []*Element, id string) *Element {
	for _, el := range elements {
		if el.ID == id {
			return el
		}
		if el.Type == ElementContainer && el.Container != nil {
			if found := FindElement(el.Container.Children, id); found != nil {
				return found
			}
		}
	}
	return nil
}

// RemoveElement detaches and returns the element with the given ID from
// anywhere in the template, leaving sibling order intact. A miss returns
// nil; callers decide whether that is fatal.
func RemoveElement(t *Template, id string) *Element {
	return removeFromList(&t.Elements, id)
}

func removeFromList(elements *[]*Element, id string) *Element {
	for i, el := range *elements {
		if el.ID == id {
			*elements = append((*elements)[:i], (*elements)[i+1:]...)
			return el
		}
		if el.Type == ElementContainer && el.Container != nil {
			if removed := removeFromList(&el.Container.Children, id); removed != nil {
				return removed
			}
		}
	}
	return nil
}

// MoveToContainer detaches the element with elementID from wherever it
// currently sits and re-appends it to the children of containerID. This is
// a move, never a copy. Moving a container into its own subtree is
// rejected before any mutation.
func MoveToContainer(t *Template, elementID, containerID string) error {
	moved := FindElement(t.Elements, elementID)
	if moved == nil {
		return scenefolderrors.NewReferenceError("element", elementID)
	}

	dest := FindElement(t.Elements, containerID)
	if dest == nil {
		return scenefolderrors.NewReferenceError("container", containerID)
	}
	if dest.Type != ElementContainer || dest.Container == nil {
		return scenefolderrors.NewValidationError("container", "destination element is not a container", nil)
	}

	if elementID == containerID {
		return scenefolderrors.NewValidationError("container", "cannot move an element into itself", nil)
	}
	if moved.Type == ElementContainer && moved.Container != nil {
		if FindElement(moved.Container.Children, containerID) != nil {
			return scenefolderrors.NewValidationError("container", "cannot move a container into its own descendant", nil)
		}
	}

	detached := RemoveElement(t, elementID)
	dest.Container.Children = append(dest.Container.Children, detached)
	return nil
}
