package scene

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

type staticResolver struct {
	url string
	err error
}

func (r staticResolver) ResolveFont(ctx context.Context, family string) (string, error) {
	return r.url, r.err
}

func TestParseHexColor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		spec    string
		r, g, b uint8
		a       float64
		wantErr bool
	}{
		{name: "six digits with hash", spec: "#FFFF00", r: 255, g: 255, b: 0, a: 1},
		{name: "six digits bare", spec: "336699", r: 0x33, g: 0x66, b: 0x99, a: 1},
		{name: "eight digits carries alpha", spec: "#00000080", r: 0, g: 0, b: 0, a: 128.0 / 255.0},
		{name: "wrong length", spec: "#FFF", wantErr: true},
		{name: "non hex digits", spec: "#GGGGGG", wantErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r, g, b, a, err := ParseHexColor(tc.spec)
			if tc.wantErr {
				var vErr *scenefolderrors.ValidationError
				require.ErrorAs(t, err, &vErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.r, r)
			require.Equal(t, tc.g, g)
			require.Equal(t, tc.b, b)
			require.InDelta(t, tc.a, a, 1e-9)
		})
	}
}

func TestEnsureColorDeduplicatesByValue(t *testing.T) {
	t.Parallel()

	theme := &Theme{}

	first, err := EnsureColor(theme, "#FFFF00")
	require.NoError(t, err)

	second, err := EnsureColor(theme, "ffff00")
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Len(t, theme.ColorPalette, 1)
	require.Equal(t, "color_1", theme.ColorPalette[0].Name)
}

func TestEnsureColorCapacity(t *testing.T) {
	t.Parallel()

	theme := &Theme{}
	for i := 0; i < MaxColors; i++ {
		_, err := EnsureColor(theme, fmt.Sprintf("#0000%02x", i))
		require.NoError(t, err)
	}

	_, err := EnsureColor(theme, "#FF00FF")
	var vErr *scenefolderrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, theme.ColorPalette, MaxColors)

	// An already-registered value still resolves on a full palette.
	id, err := EnsureColor(theme, "#000000")
	require.NoError(t, err)
	require.Equal(t, theme.ColorPalette[0].ID, id)
}

func TestEnsureFontMatchesCaseInsensitively(t *testing.T) {
	t.Parallel()

	theme := &Theme{}
	resolver := staticResolver{url: "https://fonts.example/css2?family=Roboto"}

	first, err := EnsureFont(context.Background(), theme, resolver, "Roboto")
	require.NoError(t, err)

	second, err := EnsureFont(context.Background(), theme, resolver, "roboto")
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Len(t, theme.FontPalette, 1)
	require.Equal(t, "Roboto", theme.FontPalette[0].FontName)
}

func TestEnsureFontCapacity(t *testing.T) {
	t.Parallel()

	theme := &Theme{}
	resolver := staticResolver{url: "fonts/stub.otf"}
	for i := 0; i < MaxFonts; i++ {
		_, err := EnsureFont(context.Background(), theme, resolver, fmt.Sprintf("Family %d", i))
		require.NoError(t, err)
	}

	_, err := EnsureFont(context.Background(), theme, resolver, "One Too Many")
	var vErr *scenefolderrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, theme.FontPalette, MaxFonts)
}

func TestEnsureFontFailedLookupLeavesPaletteUntouched(t *testing.T) {
	t.Parallel()

	theme := &Theme{}
	resolver := staticResolver{err: scenefolderrors.NewAPIError("fontcat", fmt.Errorf("status 502"))}

	_, err := EnsureFont(context.Background(), theme, resolver, "Lato")
	var apiErr *scenefolderrors.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Empty(t, theme.FontPalette)
}
