package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

func TestPositionAllAnchors(t *testing.T) {
	t.Parallel()

	// Canvas 1000x1000, element 100x50.
	cases := []struct {
		anchor Anchor
		x, y   float64
	}{
		{AnchorTopLeft, 0, 0},
		{AnchorTopCenter, 450, 0},
		{AnchorTopRight, 900, 0},
		{AnchorCenterLeft, 0, 475},
		{AnchorCenter, 450, 475},
		{AnchorCenterRight, 900, 475},
		{AnchorBottomLeft, 0, 950},
		{AnchorBottomCenter, 450, 950},
		{AnchorBottomRight, 900, 950},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(string(tc.anchor), func(t *testing.T) {
			t.Parallel()

			x, y, err := Position(1000, 1000, 100, 50, tc.anchor, 0, 0)
			require.NoError(t, err)
			require.Equal(t, tc.x, x)
			require.Equal(t, tc.y, y)
		})
	}
}

func TestPositionAppliesOffsets(t *testing.T) {
	t.Parallel()

	x, y, err := Position(1000, 1000, 100, 50, AnchorBottomRight, 10, -10)
	require.NoError(t, err)
	require.Equal(t, 910.0, x)
	require.Equal(t, 940.0, y)
}

func TestParseAnchorRejectsUnknownNames(t *testing.T) {
	t.Parallel()

	_, err := ParseAnchor("middle")
	var vErr *scenefolderrors.ValidationError
	require.ErrorAs(t, err, &vErr)

	_, _, err = Position(100, 100, 10, 10, Anchor("upper-left"), 0, 0)
	require.ErrorAs(t, err, &vErr)
}

func TestAnchorCSS(t *testing.T) {
	t.Parallel()

	style, err := AnchorCenter.CSS()
	require.NoError(t, err)
	require.Equal(t, "absolute", style["position"])
	require.Equal(t, "50%", style["left"])
	require.Equal(t, "50%", style["top"])
	require.Equal(t, "translate(-50%, -50%)", style["transform"])

	style, err = AnchorTopLeft.CSS()
	require.NoError(t, err)
	require.Equal(t, "0%", style["left"])
	require.NotContains(t, style, "transform")

	style, err = AnchorBottomCenter.CSS()
	require.NoError(t, err)
	require.Equal(t, "50%", style["left"])
	require.Equal(t, "100%", style["top"])
	require.Equal(t, "translate(-50%, -100%)", style["transform"])
}
