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

package page

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	sprig "github.com/go-task/slim-sprig"
	"github.com/rs/zerolog"

	"github.com/olekenneth/roc-package-web-app-react/config"
	"github.com/olekenneth/roc-package-web-app-react/head"
	"github.com/olekenneth/roc-package-web-app-react/internal/buildmode"
	"github.com/olekenneth/roc-package-web-app-react/render"
	"github.com/olekenneth/roc-package-web-app-react/route"
	"github.com/olekenneth/roc-package-web-app-react/store"
	"github.com/olekenneth/roc-package-web-app-react/ui"
)

//go:embed views/*.html
var views embed.FS

// ErrTemplateNotFound is returned when the configured page template does not
// exist.
var ErrTemplateNotFound = errors.New("page template not found")

// Data is passed to page templates.
type Data struct {
	Head                *head.Head
	Content             template.HTML
	FluxState           template.JS
	BundleName          string
	StyleName           string
	Dist                bool
	SerializedRocConfig template.JS
	SerializedAppConfig template.JS
	MountNode           string
	// Base is the base path of the application, always ending in "/".
	Base string
	// ReloadPath is the path of the live-reload endpoint, only set in
	// development builds.
	ReloadPath string
}

// Renderer renders pages.
type Renderer struct {
	cfg        *config.Config
	dist       bool
	bundleName string
	styleName  string
	appConfig  any
	header     route.Component
	logger     zerolog.Logger
	fsys       fs.FS
	dir        string // template directory on the OS file system, if any.

	mu       sync.RWMutex
	tmpl     *template.Template
	hooks    []func()
	errHooks []func(error)
	watcher  *fsnotify.Watcher
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithDist overrides whether the renderer behaves as in a production build.
func WithDist(dist bool) Option {
	return func(r *Renderer) { r.dist = dist }
}

// WithAppConfig sets the application-specific configuration to be
// serialized into pages.
func WithAppConfig(appConfig any) Option {
	return func(r *Renderer) { r.appConfig = appConfig }
}

// WithHeader replaces the default header component.
func WithHeader(header route.Component) Option {
	return func(r *Renderer) { r.header = header }
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Renderer) { r.logger = logger }
}

// WithTemplates loads the page templates from the specified file system,
// regardless of the configured template path. Such templates are never
// watched.
func WithTemplates(fsys fs.FS) Option {
	return func(r *Renderer) {
		r.fsys = fsys
		r.dir = ""
	}
}

// New returns a new page renderer for the specified assets, where only the
// first script bundle and style sheet are used. A nil configuration means
// the default configuration.
func New(cfg *config.Config, assets Assets, opts ...Option) (*Renderer, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	r := &Renderer{
		cfg:    cfg,
		dist:   buildmode.Dist,
		header: DefaultHeader(cfg.Runtime.Head),
		logger: zerolog.Nop(),
	}
	if len(assets.Script) > 0 {
		r.bundleName = assets.Script[0]
	}
	if len(assets.CSS) > 0 {
		r.styleName = assets.CSS[0]
	}
	if path := cfg.Runtime.Template.Path; path != "" {
		r.fsys = os.DirFS(path)
		r.dir = path
	} else {
		r.fsys, _ = fs.Sub(views, "views")
	}
	for _, opt := range opts {
		opt(r)
	}
	tmpl, err := r.parse()
	if err != nil {
		return nil, err
	}
	r.tmpl = tmpl
	if !r.dist && r.dir != "" {
		if err := r.watch(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// parse parses all page templates.
func (r *Renderer) parse() (*template.Template, error) {
	tmpl, err := template.New("").
		Funcs(template.FuncMap(sprig.GenericFuncMap())).
		ParseFS(r.fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("cannot parse page templates: %w", err)
	}
	if tmpl.Lookup(r.cfg.Runtime.Template.Name) == nil {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, r.cfg.Runtime.Template.Name)
	}
	return tmpl, nil
}

// RenderPage renders a page with the specified head metadata, content, and
// state. A nil head renders the default header instead, and a nil state
// serializes as an empty state.
func (r *Renderer) RenderPage(h *head.Head, content string, state any) (string, error) {
	if h == nil {
		var err error
		if h, err = r.defaultHead(); err != nil {
			return "", err
		}
	}
	if state == nil {
		state = store.State{}
	}
	fluxState, err := Serialize(state)
	if err != nil {
		return "", fmt.Errorf("cannot serialize state: %w", err)
	}
	rocConfig, err := Serialize(r.cfg.ClientConfig(r.dist))
	if err != nil {
		return "", fmt.Errorf("cannot serialize configuration: %w", err)
	}
	appConfig := r.appConfig
	if appConfig == nil {
		appConfig = map[string]any{}
	}
	serializedAppConfig, err := Serialize(appConfig)
	if err != nil {
		return "", fmt.Errorf("cannot serialize application configuration: %w", err)
	}
	data := Data{
		Head:                h,
		Content:             template.HTML(content),
		FluxState:           fluxState,
		BundleName:          r.bundleName,
		StyleName:           r.styleName,
		Dist:                r.dist,
		SerializedRocConfig: rocConfig,
		SerializedAppConfig: serializedAppConfig,
		MountNode:           r.cfg.Runtime.MountNode,
		Base:                strings.TrimSuffix(r.cfg.Runtime.Path, "/") + "/",
	}
	if !r.dist {
		data.ReloadPath = r.cfg.Dev.Reload.Path
	}

	r.mu.RLock()
	tmpl := r.tmpl
	r.mu.RUnlock()
	var sb strings.Builder
	if err := tmpl.ExecuteTemplate(&sb, r.cfg.Runtime.Template.Name, data); err != nil {
		return "", fmt.Errorf("cannot render page template: %w", err)
	}
	return sb.String(), nil
}

// defaultHead renders the header component only for the sake of collecting
// its head metadata.
func (r *Renderer) defaultHead() (*head.Head, error) {
	rc := render.NewContext(context.Background())
	if _, err := render.ToStaticMarkup(r.header.Render(rc, nil)); err != nil {
		return nil, fmt.Errorf("cannot render header: %w", err)
	}
	return rc.Head().Rewind(), nil
}

// Serialize returns the JSON encoding of v that is safe for embedding into
// script elements: "<", ">", "&", U+2028, and U+2029 are escaped, so the
// encoding can neither terminate the script element nor break JavaScript
// string literals.
func Serialize(v any) (template.JS, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(raw), nil
}

// DefaultHeader returns the header component declaring the configured
// default head metadata; it renders nothing visible.
func DefaultHeader(defaults config.Head) route.Component {
	return route.ComponentFunc(func(rc *render.Context, child *ui.Node) *ui.Node {
		collector := rc.Head()
		if defaults.Title != "" {
			collector.SetTitle(defaults.Title)
		}
		for _, meta := range defaults.Meta {
			collector.AddMeta(attrs(meta)...)
		}
		for _, link := range defaults.Link {
			collector.AddLink(attrs(link)...)
		}
		return child
	})
}

// attrs returns the attributes of a map in a stable order.
func attrs(m map[string]string) []ui.Attr {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	as := make([]ui.Attr, 0, len(keys))
	for _, key := range keys {
		as = append(as, ui.A(key, m[key]))
	}
	return as
}
