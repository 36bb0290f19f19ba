// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/davetashner/csvwidgets/internal/config"
	cwlog "github.com/davetashner/csvwidgets/internal/log"
	"github.com/davetashner/csvwidgets/internal/page"
	"github.com/davetashner/csvwidgets/internal/redact"
	"github.com/davetashner/csvwidgets/internal/server"
)

// shutdownGrace bounds how long in-flight requests get on shutdown.
const shutdownGrace = 10 * time.Second

// Serve-specific flag values.
var (
	serveConfig   string
	serveAddr     string
	servePagesDir string
	serveLogJSON  bool
)

// serveCmd runs the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve rendered pages over HTTP",
	Long: `Serve the pages of a directory over HTTP:
  GET /healthz                    liveness
  GET /widgets                    widget types and their parameters
  GET /widgets/:type/icon         widget icon (SVG)
  GET /pages                      page names
  GET /pages/:page                rendered HTML document
  GET /pages/:page/widgets/:id    one widget's HTML fragment

Settings come from --config (YAML) and the environment; flags win.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "server config file (YAML)")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address, e.g. :8080")
	serveCmd.Flags().StringVar(&servePagesDir, "pages-dir", "", "directory holding page files")
	serveCmd.Flags().BoolVar(&serveLogJSON, "log-json", false, "log as JSON")
	serveCmd.SetUsageTemplate(serveCmd.UsageTemplate() + "\nEnvironment:\n" + config.Usage())
}

// loadServerSettings reads the server config and applies flag overrides.
func loadServerSettings() (*config.ServerConfig, *page.Catalog, error) {
	cfg, err := config.LoadServer(serveConfig)
	if err != nil {
		return nil, nil, exitError(ExitInvalidArgs, "csvwidgets: %v", err)
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if servePagesDir != "" {
		cfg.PagesDir = servePagesDir
	}
	creds := cfg.Credentials()
	redact.Add(creds.GitHubToken, creds.S3AccessKey, creds.S3SecretKey)

	var defaults *config.Page
	if cfg.UseDefaults {
		if defaults, err = config.LoadDefaults(); err != nil {
			return nil, nil, exitError(ExitInvalidArgs, "csvwidgets: %v", err)
		}
	}
	if info, err := os.Stat(cfg.PagesDir); err != nil || !info.IsDir() {
		return nil, nil, exitError(ExitInvalidArgs, "csvwidgets: pages dir %q is not a directory", cfg.PagesDir)
	}
	catalog := &page.Catalog{
		Dir:      cfg.PagesDir,
		Defaults: defaults,
		Options:  page.Options{Concurrency: cfg.RenderConcurrency, Credentials: creds},
	}
	return cfg, catalog, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	if serveLogJSON {
		cwlog.Configure(cwlog.Options{Verbose: verbose, Quiet: quiet, JSON: true})
	}
	cfg, catalog, err := loadServerSettings()
	if err != nil {
		return err
	}

	app := server.New(server.Options{
		Catalog:       catalog,
		RenderTimeout: cfg.RenderTimeout,
		ReadTimeout:   cfg.ReadTimeout,
		WriteTimeout:  cfg.WriteTimeout,
	})

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.ListenAndServe(ctx, app, cfg.Addr, shutdownGrace)
}

func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
