package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/scenefold/scenefold/internal/api"
	"github.com/scenefold/scenefold/internal/config"
	"github.com/scenefold/scenefold/internal/fontcat"
	"github.com/scenefold/scenefold/internal/imagegen"
	"github.com/scenefold/scenefold/internal/logger"
	"github.com/scenefold/scenefold/internal/ops"
	"github.com/scenefold/scenefold/internal/render"
	"github.com/scenefold/scenefold/internal/store"
)

func newServeCmd(root *rootFlags) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scene build API over WebSocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = *loaded
			}

			level := cfg.Log.Level
			if root.verbose {
				level = "debug"
			}
			log, err := logger.New(logger.Options{Level: level, HumanReadable: cfg.Log.HumanReadable})
			if err != nil {
				return err
			}

			var images imagegen.Generator
			if cfg.ImageService.Endpoint != "" {
				images = imagegen.NewClient(cfg.ImageService.Endpoint, cfg.ImageService.APIKey)
			}

			srv := api.NewServer(
				ops.DefaultRegistry(),
				store.NewFileStore(cfg.StorageDir),
				fontcat.New(cfg.FontServiceURL),
				images,
				render.New(log).Render,
				log,
			)

			mux := http.NewServeMux()
			srv.Register(mux)

			log.WithFields(map[string]any{"listen": cfg.Listen}).Info("serving scene build API")
			return newHTTPServer(cfg.Listen, mux).ListenAndServe()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the service configuration file")

	return cmd
}

// newHTTPServer configures the listener. Build sessions hold the WebSocket
// open for the whole run, so only the pre-upgrade phases get timeouts.
func newHTTPServer(listen string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
