package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/scenefold/scenefold/internal/fontcat"
	"github.com/scenefold/scenefold/internal/imagegen"
	"github.com/scenefold/scenefold/internal/notify"
	"github.com/scenefold/scenefold/internal/ops"
	"github.com/scenefold/scenefold/internal/pipeline"
	"github.com/scenefold/scenefold/internal/render"
	"github.com/scenefold/scenefold/internal/store"
	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

type runFlags struct {
	sceneID       string
	storageDir    string
	fontService   string
	imageEndpoint string
	imageKey      string
}

func newRunCmd(root *rootFlags) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run <operations.json>",
		Short: "Execute an operation list and persist the resulting scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := root.newLogger()
			if err != nil {
				return err
			}

			operations, err := readOperations(args[0])
			if err != nil {
				return err
			}

			sceneID := flags.sceneID
			if sceneID == "" {
				sceneID = uuid.NewString()
			}

			var images imagegen.Generator
			if flags.imageEndpoint != "" {
				images = imagegen.NewClient(flags.imageEndpoint, flags.imageKey)
			}

			runner := pipeline.NewRunner(
				ops.DefaultRegistry(),
				store.NewFileStore(flags.storageDir),
				notify.NewWriter(cmd.OutOrStdout()),
				fontcat.New(flags.fontService),
				images,
				render.New(log).Render,
				log,
			)

			report, err := runner.Run(cmd.Context(), sceneID, operations)
			if err != nil {
				return err
			}

			log.WithFields(map[string]any{
				"scene_id": report.SceneID,
				"location": report.Location,
			}).Info("scene saved")
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.sceneID, "scene-id", "", "Scene identifier (generated when omitted)")
	cmd.Flags().StringVar(&flags.storageDir, "storage-dir", "scenes", "Directory scenes are persisted under")
	cmd.Flags().StringVar(&flags.fontService, "font-service", "https://fonts.googleapis.com", "Base URL of the hosted font service")
	cmd.Flags().StringVar(&flags.imageEndpoint, "image-endpoint", "", "Base URL of the generative image service")
	cmd.Flags().StringVar(&flags.imageKey, "image-key", "", "API key for the generative image service")

	return cmd
}

func readOperations(path string) ([]pipeline.Operation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, scenefolderrors.NewFileSystemError(path, err)
	}

	var operations []pipeline.Operation
	if err := json.Unmarshal(data, &operations); err != nil {
		return nil, scenefolderrors.NewValidationError(path, fmt.Sprintf("malformed operation list: %v", err), err)
	}
	return operations, nil
}
