package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/scenefold/scenefold/internal/layout"
	"github.com/scenefold/scenefold/internal/pipeline"
	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

// textPlacement is one entry of an externally authored layout file. Positions
// are millimeters from the canvas origin to the cap top, sizes are points.
type textPlacement struct {
	LayerName  string  `json:"layer_name"`
	Text       string  `json:"text"`
	Font       string  `json:"font,omitempty"`
	XMm        float64 `json:"x_mm"`
	YMm        float64 `json:"y_mm"`
	SizePt     float64 `json:"size_pt"`
	LineHeight float64 `json:"line_height,omitempty"`
}

func newImportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "import <placements.json>",
		Short: "Convert real-world text placements into an operation list",
		Long: "Import reads text placements expressed in millimeters and points, " +
			"converts them to pixel positions at the reference resolution and " +
			"emits an add_text_layer operation per placement. The vertical " +
			"position is corrected for the font's cap height so imported text " +
			"lands where it was authored.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return scenefolderrors.NewFileSystemError(args[0], err)
			}

			var placements []textPlacement
			if err := json.Unmarshal(data, &placements); err != nil {
				return scenefolderrors.NewValidationError(args[0], fmt.Sprintf("malformed placement list: %v", err), err)
			}

			operations := make([]pipeline.Operation, 0, len(placements))
			for i, p := range placements {
				if p.LayerName == "" || p.Text == "" {
					return scenefolderrors.NewValidationError(args[0], fmt.Sprintf("placement %d is missing layer_name or text", i+1), nil)
				}
				operations = append(operations, placementOperation(i+1, p))
			}

			encoded, err := json.MarshalIndent(operations, "", "  ")
			if err != nil {
				return err
			}
			encoded = append(encoded, '\n')

			if outPath == "" {
				_, err := cmd.OutOrStdout().Write(encoded)
				return err
			}
			if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
				return scenefolderrors.NewFileSystemError(outPath, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "File the operation list is written to (stdout when omitted)")

	return cmd
}

func placementOperation(step int, p textPlacement) pipeline.Operation {
	placed := layout.Import(layout.TextPlacement{
		Family:     p.Font,
		XMm:        p.XMm,
		YMm:        p.YMm,
		SizePt:     p.SizePt,
		LineHeight: p.LineHeight,
	})

	parameters := map[string]any{
		"layer_name": p.LayerName,
		"text":       p.Text,
		"font_size":  int(math.Round(placed.FontSizePx)),
		"x":          int(math.Round(placed.LeftPx)),
		"y":          int(math.Round(placed.TopPx)),
	}
	if p.Font != "" {
		parameters["font"] = p.Font
	}

	return pipeline.Operation{
		Step:       step,
		Operation:  "add_text_layer",
		Parameters: parameters,
	}
}
