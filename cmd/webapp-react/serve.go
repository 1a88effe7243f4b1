// Copyright 2026 The roc-package-web-app-react Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/spf13/cobra"

	webapp "github.com/olekenneth/roc-package-web-app-react"
	"github.com/olekenneth/roc-package-web-app-react/config"
	"github.com/olekenneth/roc-package-web-app-react/devreload"
	"github.com/olekenneth/roc-package-web-app-react/internal/buildmode"
	"github.com/olekenneth/roc-package-web-app-react/internal/demo"
	"github.com/olekenneth/roc-package-web-app-react/page"
	"github.com/olekenneth/roc-package-web-app-react/server"
	"github.com/olekenneth/roc-package-web-app-react/store"
)

const shutdownTimeout = 10 * time.Second

var (
	servePort    int
	staticMarkup bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web application server",
	Long: `Serve renders the demo application on the server and serves the
built assets from the build output directory. Metrics are available at
/metrics. Development builds additionally notify browsers to reload
whenever the page templates change.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Runtime.Port = servePort
		}
		router, cleanup, err := newRouter(cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()
		return serve(cmd.Context(), cfg.Runtime.Port, router)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 3000, "HTTP server port")
	serveCmd.Flags().BoolVar(&staticMarkup, "static", false, "Render static markup without reuse attributes")
	rootCmd.AddCommand(serveCmd)
}

// newRouter returns the HTTP router serving metrics, reload notifications in
// development builds, and the demo application.
func newRouter(cfg *config.Config, logger zerolog.Logger) (http.Handler, func(), error) {
	var assets fs.FS = os.DirFS(cfg.Build.Output)
	manifest, err := page.LoadAssets(assets, cfg.Build.Stats)
	if err != nil {
		logger.Warn().Err(err).Str("output", cfg.Build.Output).Msg("no build assets manifest, serving without bundles")
	}
	pages, err := page.New(cfg, manifest, page.WithLogger(logger))
	if err != nil {
		return nil, nil, fmt.Errorf("cannot set up page template: %w", err)
	}
	renderer := server.New(cfg,
		server.WithLogger(logger),
		server.WithRegisterer(prometheus.DefaultRegisterer))

	opts := []webapp.HandlerOption{
		webapp.WithAssets(assets),
		webapp.WithStore(func(*http.Request) (store.Store, error) { return demo.NewStore(), nil }),
		webapp.WithLogger(logger),
	}
	if staticMarkup {
		opts = append(opts, webapp.WithStaticMarkup())
	}
	handler := webapp.NewHandler(renderer, demo.Routes, pages, opts...)

	router := chi.NewRouter()
	router.Use(hlog.NewHandler(logger))
	router.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	router.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	router.Use(middleware.Recoverer)
	router.Handle("/metrics", promhttp.Handler())

	cleanup := func() { _ = pages.Close() }
	if buildmode.Dev {
		hub := devreload.NewHub(devreload.WithLogger(logger))
		pages.OnReload(hub.NotifyReload)
		pages.OnReloadError(hub.NotifyError)
		router.Handle(cfg.Dev.Reload.Path, hub)
		cleanup = func() {
			hub.Close()
			_ = pages.Close()
		}
	}
	router.Handle("/*", handler)
	return router, cleanup, nil
}

// serve serves HTTP requests on the specified port until the context gets
// cancelled, then shuts down gracefully.
func serve(ctx context.Context, port int, handler http.Handler) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
	logger.Info().Int("port", port).Msg("starting HTTP server")

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
