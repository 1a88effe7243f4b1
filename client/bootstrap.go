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

package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/olekenneth/roc-package-web-app-react/config"
	"github.com/olekenneth/roc-package-web-app-react/fetch"
	"github.com/olekenneth/roc-package-web-app-react/internal/buildmode"
	"github.com/olekenneth/roc-package-web-app-react/render"
	"github.com/olekenneth/roc-package-web-app-react/route"
	"github.com/olekenneth/roc-package-web-app-react/store"
	"github.com/olekenneth/roc-package-web-app-react/ui"
)

// maxRedirects limits the redirects followed when matching a location.
const maxRedirects = 10

var (
	ErrMissingRoutes     = errors.New("missing route table factory")
	ErrMissingMountNode  = errors.New("missing mount node id")
	ErrMountNodeNotFound = errors.New("mount node not found")
	ErrTooManyRedirects  = errors.New("too many redirects")
)

// Options are the mandatory and optional ingredients of an application.
type Options struct {
	// CreateRoutes creates the route table; it is mandatory.
	CreateRoutes route.Factory
	// CreateStore creates the state container from the state embedded by
	// the server; it is optional.
	CreateStore store.Factory
	// MountNode is the id of the element to mount the application into; it
	// is mandatory.
	MountNode string
}

// Option configures Bootstrap.
type Option func(*bootstrap)

// WithDevMode overrides whether the application behaves as in a
// development build.
func WithDevMode(dev bool) Option {
	return func(b *bootstrap) {
		b.dev = dev
	}
}

// WithLogger sets the logger; it defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *bootstrap) {
		b.logger = logger
	}
}

// WithInitialLoading renders the specified component as long as no route
// matched.
func WithInitialLoading(loading route.Component) Option {
	return func(b *bootstrap) {
		b.loading = loading
	}
}

// WithWrappers wraps the rendered application tree, such as into context
// providers. Wrappers apply right to left.
func WithWrappers(wrappers ...ui.Wrapper) Option {
	return func(b *bootstrap) {
		b.wrappers = append(b.wrappers, wrappers...)
	}
}

// WithA11yFilter replaces the components whose subtrees don't get audited.
func WithA11yFilter(components ...string) Option {
	return func(b *bootstrap) {
		b.a11yFilter = components
	}
}

type bootstrap struct {
	dev        bool
	logger     zerolog.Logger
	loading    route.Component
	wrappers   []ui.Wrapper
	a11yFilter []string
}

// App is a mounted application.
type App struct {
	History *History
	Store   store.Store // nil without a store factory.

	ctx      context.Context
	mounter  Mounter
	anchor   Element
	routes   route.Table
	parallel bool
	wrap     ui.Wrapper
	loading  route.Component
	logger   zerolog.Logger

	mu       sync.Mutex // serializes mounts.
	depth    atomic.Int32
	unsync   func()
	unrender func()
}

// Bootstrap mounts the application into the element with the id
// opts.MountNode and keeps it rendered whenever the location changes.
// Missing route table factory or mount node id are reported before the
// environment gets touched. The logger only logs at or above the configured
// client debug level.
func Bootstrap(ctx context.Context, env Env, mounter Mounter, cfg *config.Config, opts Options, options ...Option) (*App, error) {
	if opts.CreateRoutes == nil {
		return nil, ErrMissingRoutes
	}
	if opts.MountNode == "" {
		return nil, ErrMissingMountNode
	}
	if cfg == nil {
		cfg = config.Default()
	}
	b := bootstrap{
		dev:        buildmode.Dev,
		logger:     zerolog.Nop(),
		a11yFilter: DefaultA11yFilter,
	}
	for _, opt := range options {
		opt(&b)
	}
	if name := cfg.Runtime.Debug.Client; name != "" {
		level, err := zerolog.ParseLevel(name)
		if err != nil {
			return nil, fmt.Errorf("invalid client log level %q: %w", name, err)
		}
		b.logger = b.logger.Level(level)
	}

	history := NewHistory(env, cfg.Runtime.Basename())

	if b.dev && cfg.Dev.A11y {
		mounter = NewAuditor(mounter, b.logger, b.a11yFilter...)
		if cfg.Runtime.SSR {
			b.logger.Debug().Msg("accessibility audits are enabled with server-side rendering, " +
				"expect the markup checksum verification to fail")
		}
	}

	app := &App{
		History:  history,
		ctx:      ctx,
		mounter:  mounter,
		parallel: cfg.Runtime.Fetch.Client.Parallel,
		loading:  b.loading,
		logger:   b.logger,
	}

	var devWrappers []ui.Wrapper
	hydration := env.HydrationState()
	if opts.CreateStore != nil {
		initial, err := store.Decode(hydration)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("cannot decode server state: %w", err)
		}
		st, err := opts.CreateStore(initial)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("cannot create store: %w", err)
		}
		app.Store = st
		app.unsync = history.SyncWithStore(st, env.SupportsHistory(), b.logger)
		app.routes = opts.CreateRoutes(st)
		if b.dev && cfg.Dev.Redux.DevTools.Enabled {
			if env.HasDevToolsExtension() {
				b.logger.Info().Msg("using the store dev tools browser extension")
			} else {
				devWrappers = append(devWrappers, DevTools(st))
			}
		}
	} else {
		app.routes = opts.CreateRoutes(nil)
	}
	if b.dev && cfg.Dev.YellowBox.Enabled {
		devWrappers = append(devWrappers, YellowBox(cfg.Dev.YellowBox.Ignore))
	}
	app.wrap = ui.Compose(b.wrappers...)

	anchor := env.ElementByID(opts.MountNode)
	if anchor == nil {
		app.Close()
		return nil, fmt.Errorf("%w: %q", ErrMountNodeNotFound, opts.MountNode)
	}
	app.anchor = anchor

	app.unrender = history.Listen(func(location string) {
		if err := app.render(location, true); err != nil {
			app.logger.Error().Err(err).Str("location", location).Msg("cannot render")
		}
	})
	if err := app.render(history.Location(), hydration == nil); err != nil {
		app.Close()
		return nil, err
	}

	if b.dev {
		devNode := env.InsertSiblingAfter(anchor)
		if err := mounter.Mount(ui.Compose(devWrappers...)(nil), devNode); err != nil {
			app.Close()
			return nil, fmt.Errorf("cannot mount developer overlays: %w", err)
		}
	}
	return app, nil
}

// Navigate pushes the specified location, relative to the base path, and
// renders it.
func (a *App) Navigate(location string) {
	a.History.Push(location)
}

// Close stops rendering on location changes.
func (a *App) Close() {
	if a.unrender != nil {
		a.unrender()
	}
	if a.unsync != nil {
		a.unsync()
	}
	a.History.Close()
}

// render matches the location, optionally prefetches the matched routes'
// data, and mounts the rendered tree. Redirects replace the current
// location, which in turn renders the redirect target.
func (a *App) render(location string, prefetch bool) error {
	if a.depth.Inc() > maxRedirects {
		a.depth.Dec()
		return ErrTooManyRedirects
	}
	defer a.depth.Dec()

	basename := a.History.Basename()
	match, redirect, err := a.routes.Match(a.ctx, a.History.CreateHref(location), basename)
	if err != nil {
		return err
	}
	if redirect != nil {
		a.History.Replace(strings.TrimPrefix(redirect.Pathname, basename) + redirect.Search)
		return nil
	}

	var tree *ui.Node
	if match == nil {
		if a.loading != nil {
			tree = a.loading.Render(render.NewContext(a.ctx, render.WithStore(a.Store)), nil)
		}
	} else {
		if prefetch {
			locals := fetch.NewLocals(match.Location, match.Params, a.Store)
			if err := fetch.Prefetch(a.ctx, match.Components(), locals, a.parallel); err != nil {
				a.logger.Error().Err(err).Str("location", location).Msg("fetching error")
			}
		}
		rc := render.NewContext(a.ctx,
			render.WithLocation(match.Location),
			render.WithParams(match.Params),
			render.WithStore(a.Store))
		tree = match.Render(rc)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mounter.Mount(a.wrap(tree), a.anchor)
}
