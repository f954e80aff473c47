package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnitConversions(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 11.811, MmToPx(1), 0.001)
	require.InDelta(t, 4.167, PtToPx(1), 0.001)
	require.InDelta(t, 118.11, MmToPx(10), 0.01)
}

func TestMetricsForFallsBack(t *testing.T) {
	t.Parallel()

	require.Equal(t, familyMetrics["roboto"], MetricsFor("Roboto"))
	require.Equal(t, familyMetrics["open sans"], MetricsFor("  open sans "))
	require.Equal(t, fallbackMetrics, MetricsFor("Comic Serif Neue"))
}

func TestCapHeightOffset(t *testing.T) {
	t.Parallel()

	m := FontMetrics{Ascent: 0.9, Descent: 0.2, CapHeight: 0.7}

	// halfLeading = (1.2 - 0.9 - 0.2) * 100 / 2 = 5
	// offset = 5 + (0.9 - 0.7) * 100 = 25
	require.InDelta(t, 25.0, CapHeightOffset(m, 100, 1.2), 1e-9)
}

func TestImportCorrectsTopPosition(t *testing.T) {
	t.Parallel()

	p := Import(TextPlacement{Family: "Unknown Family", XMm: 10, YMm: 20, SizePt: 24})

	fontSizePx := PtToPx(24)
	offset := CapHeightOffset(fallbackMetrics, fontSizePx, 1.2)

	require.InDelta(t, MmToPx(10), p.LeftPx, 1e-9)
	require.InDelta(t, MmToPx(20)-offset, p.TopPx, 1e-9)
	require.InDelta(t, fontSizePx, p.FontSizePx, 1e-9)

	// Omitting the correction visibly shifts imported text.
	require.Greater(t, MmToPx(20)-p.TopPx, 1.0)
}
