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

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/olekenneth/roc-package-web-app-react/config"
	"github.com/olekenneth/roc-package-web-app-react/fetch"
	"github.com/olekenneth/roc-package-web-app-react/head"
	"github.com/olekenneth/roc-package-web-app-react/render"
	"github.com/olekenneth/roc-package-web-app-react/route"
	"github.com/olekenneth/roc-package-web-app-react/store"
)

const tracerName = "github.com/olekenneth/roc-package-web-app-react/server"

// PageRenderer renders the final HTML page around the rendered markup. A nil
// head and state render the page with the configured default head, no
// content, and empty state.
type PageRenderer interface {
	RenderPage(h *head.Head, content string, state any) (string, error)
}

// Renderer renders URLs on the server. A Renderer is safe for concurrent
// use; every Render call works on its own store and render context.
type Renderer struct {
	basename       string
	timeout        time.Duration
	logger         zerolog.Logger
	tracerProvider trace.TracerProvider
	tracer         trace.Tracer
	registerer     prometheus.Registerer
	metrics        *metrics
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger; it defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithRegisterer registers the render metrics with the specified Prometheus
// registerer. Without it the metrics are still maintained but not registered
// anywhere.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(r *Renderer) {
		r.registerer = reg
	}
}

// WithTracerProvider sets the tracer provider; it defaults to the global
// OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Renderer) {
		r.tracerProvider = tp
	}
}

// New returns a Renderer for the specified configuration, taking the base
// path and the prefetch timeout from it.
func New(cfg *config.Config, opts ...Option) *Renderer {
	if cfg == nil {
		cfg = config.Default()
	}
	r := &Renderer{
		basename: cfg.Runtime.Basename(),
		timeout:  cfg.Runtime.Fetch.Server.Timeout,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.tracerProvider == nil {
		r.tracerProvider = otel.GetTracerProvider()
	}
	r.tracer = r.tracerProvider.Tracer(tracerName)
	r.metrics = newMetrics(r.registerer)
	return r
}

// Basename returns the effective base path the Renderer matches URLs under.
func (r *Renderer) Basename() string { return r.basename }

// Render renders the specified URL (path and query, including the base path)
// using the route table built from routes for the store st. The store may
// be nil. The rendered content is handed to page for the final page markup.
// With staticOnly the content is rendered without any markup reuse
// attributes.
func (r *Renderer) Render(ctx context.Context, url string, routes route.Factory, st store.Store, page PageRenderer, staticOnly bool) (res Result) {
	start := time.Now()
	id := uuid.NewString()
	log := r.logger.With().Str("render", id).Str("url", url).Logger()

	ctx, span := r.tracer.Start(ctx, "render", trace.WithAttributes(
		attribute.String("render.id", id),
		attribute.String("render.url", url),
		attribute.Bool("render.static", staticOnly),
	))
	defer func() {
		outcome := res.Outcome()
		span.SetAttributes(attribute.String("render.outcome", outcome))
		if _, failed := res.(ErrorPage); failed {
			span.SetStatus(codes.Error, "error page")
		}
		span.End()
		r.metrics.renders.WithLabelValues(outcome).Inc()
		r.metrics.duration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	}()
	defer func() {
		if p := recover(); p != nil {
			err := fmt.Errorf("panic: %v", p)
			log.Error().Err(err).Msg("rendering error")
			span.RecordError(err)
			res = r.errorPage(page, log)
		}
	}()

	if routes == nil {
		log.Error().Msg("router error: no routes")
		return r.errorPage(page, log)
	}
	match, redirect, err := routes(st).Match(ctx, url, r.basename)
	switch {
	case err != nil:
		log.Error().Err(err).Msg("router error")
		span.RecordError(err)
		return r.errorPage(page, log)
	case redirect != nil:
		log.Debug().Str("location", redirect.String()).Msg("redirect request")
		return Redirect{Location: redirect.String()}
	case match == nil:
		log.Warn().Msg("no route matched, most likely the path does not exist")
		return r.errorPage(page, log)
	}
	span.SetAttributes(attribute.String("render.route", match.Pattern))

	locals := fetch.NewLocals(match.Location, match.Params, st)
	if err := r.prefetch(ctx, match, locals); err != nil {
		log.Error().Err(err).Msg("fetching error")
		span.RecordError(err)
		return r.errorPage(page, log)
	}

	if st != nil {
		if err := st.Dispatch(store.LocationChange(url)); err != nil {
			log.Error().Err(err).Msg("updating location")
			span.RecordError(err)
			return r.errorPage(page, log)
		}
	}

	rc := render.NewContext(ctx,
		render.WithLocation(match.Location),
		render.WithParams(match.Params),
		render.WithStore(st))
	tree := match.Render(rc)
	var markup string
	if staticOnly {
		markup, err = render.ToStaticMarkup(tree)
	} else {
		markup, err = render.ToString(tree)
	}
	if err != nil {
		log.Error().Err(err).Msg("rendering error")
		span.RecordError(err)
		return r.errorPage(page, log)
	}

	var state any = store.State{}
	if st != nil {
		state = st.GetState()
	}
	status := rc.Status()
	if status == 0 {
		status = http.StatusOK
	}
	body, err := page.RenderPage(rc.Head().Rewind(), markup, state)
	if err != nil {
		log.Error().Err(err).Msg("page rendering error")
		span.RecordError(err)
		return ErrorPage{Status: http.StatusInternalServerError, Body: FallbackBody}
	}
	return Rendered{Status: status, Body: body}
}

// prefetch runs the fetchers of the matched components in a child span,
// bounded by the configured timeout.
func (r *Renderer) prefetch(ctx context.Context, match *route.Match, locals fetch.Locals) error {
	ctx, span := r.tracer.Start(ctx, "prefetch")
	defer span.End()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	start := time.Now()
	err := fetch.Prefetch(ctx, match.Components(), locals, true)
	r.metrics.prefetch.Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "prefetch failed")
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("prefetching exceeded %s: %w", r.timeout, err)
		}
	}
	return err
}

// errorPage returns the generic error page, falling back to a plain body
// if even the page renderer fails.
func (r *Renderer) errorPage(page PageRenderer, log zerolog.Logger) Result {
	if page == nil {
		return ErrorPage{Status: http.StatusInternalServerError, Body: FallbackBody}
	}
	body, err := page.RenderPage(nil, "", nil)
	if err != nil {
		log.Error().Err(err).Msg("page rendering error")
		return ErrorPage{Status: http.StatusInternalServerError, Body: FallbackBody}
	}
	return ErrorPage{Status: http.StatusInternalServerError, Body: body}
}
