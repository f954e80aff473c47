// Package layout holds the numeric subsystems of the composition engine:
// nine-point anchor positioning and the unit conversions and cap-height
// baseline correction used when importing real-world text placements.
package layout

import (
	"fmt"

	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

// Anchor names one of the nine reference points of a bounding box.
type Anchor string

const (
	AnchorTopLeft      Anchor = "top-left"
	AnchorTopCenter    Anchor = "top-center"
	AnchorTopRight     Anchor = "top-right"
	AnchorCenterLeft   Anchor = "center-left"
	AnchorCenter       Anchor = "center"
	AnchorCenterRight  Anchor = "center-right"
	AnchorBottomLeft   Anchor = "bottom-left"
	AnchorBottomCenter Anchor = "bottom-center"
	AnchorBottomRight  Anchor = "bottom-right"
)

type axisAlign int

const (
	alignStart axisAlign = iota
	alignCenter
	alignEnd
)

var anchorAxes = map[Anchor][2]axisAlign{
	AnchorTopLeft:      {alignStart, alignStart},
	AnchorTopCenter:    {alignCenter, alignStart},
	AnchorTopRight:     {alignEnd, alignStart},
	AnchorCenterLeft:   {alignStart, alignCenter},
	AnchorCenter:       {alignCenter, alignCenter},
	AnchorCenterRight:  {alignEnd, alignCenter},
	AnchorBottomLeft:   {alignStart, alignEnd},
	AnchorBottomCenter: {alignCenter, alignEnd},
	AnchorBottomRight:  {alignEnd, alignEnd},
}

// ParseAnchor validates an anchor name. Unknown names are a hard
// validation error.
func ParseAnchor(name string) (Anchor, error) {
	anchor := Anchor(name)
	if _, ok := anchorAxes[anchor]; !ok {
		return "", scenefolderrors.NewValidationError("anchor", fmt.Sprintf("unknown anchor %q", name), nil)
	}
	return anchor, nil
}

// Position computes the top-left corner of an element of size (w, h)
// placed at the given anchor of a bounding box of size (boxW, boxH), then
// shifted by (offsetX, offsetY).
func Position(boxW, boxH, w, h float64, anchor Anchor, offsetX, offsetY float64) (float64, float64, error) {
	axes, ok := anchorAxes[anchor]
	if !ok {
		return 0, 0, scenefolderrors.NewValidationError("anchor", fmt.Sprintf("unknown anchor %q", anchor), nil)
	}

	x := alignOnAxis(axes[0], boxW, w)
	y := alignOnAxis(axes[1], boxH, h)
	return x + offsetX, y + offsetY, nil
}

func alignOnAxis(align axisAlign, box, size float64) float64 {
	switch align {
	case alignCenter:
		return (box - size) / 2
	case alignEnd:
		return box - size
	default:
		return 0
	}
}

// CSS returns the percentage-based style properties that pin an element to
// the anchor without knowing its rendered size: left/top percentages plus
// a translate transform compensating for the element's own extent. The
// caller merges them into the element's style map.
func (a Anchor) CSS() (map[string]string, error) {
	axes, ok := anchorAxes[a]
	if !ok {
		return nil, scenefolderrors.NewValidationError("anchor", fmt.Sprintf("unknown anchor %q", a), nil)
	}

	percents := map[axisAlign]string{alignStart: "0%", alignCenter: "50%", alignEnd: "100%"}
	shifts := map[axisAlign]string{alignStart: "0%", alignCenter: "-50%", alignEnd: "-100%"}

	style := map[string]string{
		"position": "absolute",
		"left":     percents[axes[0]],
		"top":      percents[axes[1]],
	}
	if axes[0] != alignStart || axes[1] != alignStart {
		style["transform"] = fmt.Sprintf("translate(%s, %s)", shifts[axes[0]], shifts[axes[1]])
	}
	return style, nil
}
