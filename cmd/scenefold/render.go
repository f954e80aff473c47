package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/scenefold/scenefold/internal/render"
	"github.com/scenefold/scenefold/internal/store"
	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

type renderFlags struct {
	storageDir string
	outDir     string
}

func newRenderCmd(root *rootFlags) *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render <scene-id>",
		Short: "Render a persisted scene to markup and stylesheet files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := root.newLogger()
			if err != nil {
				return err
			}

			s, err := store.NewFileStore(flags.storageDir).LoadScene(args[0])
			if err != nil {
				return err
			}

			markup, stylesheet, err := render.New(log).Render(s)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(flags.outDir, 0o755); err != nil {
				return scenefolderrors.NewFileSystemError(flags.outDir, err)
			}

			markupPath := filepath.Join(flags.outDir, "scene.html")
			if err := os.WriteFile(markupPath, []byte(markup), 0o644); err != nil {
				return scenefolderrors.NewFileSystemError(markupPath, err)
			}

			stylePath := filepath.Join(flags.outDir, "scene.css")
			if err := os.WriteFile(stylePath, []byte(stylesheet), 0o644); err != nil {
				return scenefolderrors.NewFileSystemError(stylePath, err)
			}

			log.WithFields(map[string]any{
				"scene_id": args[0],
				"markup":   markupPath,
				"style":    stylePath,
			}).Info("scene rendered")
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.storageDir, "storage-dir", "scenes", "Directory scenes are persisted under")
	cmd.Flags().StringVarP(&flags.outDir, "out", "o", ".", "Directory the rendered files are written to")

	return cmd
}
