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

package route

import (
	"context"
	"net/url"

	"github.com/olekenneth/roc-package-web-app-react/render"
	"github.com/olekenneth/roc-package-web-app-react/store"
	"github.com/olekenneth/roc-package-web-app-react/ui"
)

// Component renders a route. The child is the already rendered tree of the
// matched child route, or nil when the component's route is the innermost
// one matched.
type Component interface {
	Render(rc *render.Context, child *ui.Node) *ui.Node
}

// ComponentFunc adapts a function to the Component interface.
type ComponentFunc func(rc *render.Context, child *ui.Node) *ui.Node

// Render calls f(rc, child).
func (f ComponentFunc) Render(rc *render.Context, child *ui.Node) *ui.Node {
	return f(rc, child)
}

// EnterFunc is called when a route is about to be entered. It may return a
// redirect target (path with optional query, relative to the base path) or
// an error.
type EnterFunc func(ctx context.Context, location *url.URL, params map[string]string) (redirect string, err error)

// Route defines a route.
type Route struct {
	Path      string
	Name      string
	Component Component
	Children  []Route
	// RedirectTo redirects to another path; ":name" segments get replaced
	// by the corresponding route parameters.
	RedirectTo string
	OnEnter    EnterFunc
}

// Table is an ordered route table.
type Table []Route

// Factory creates a route table, optionally depending on the state container
// of the current render; the state container is nil when there is none.
type Factory func(st store.Store) Table

// Match is a successful route match.
type Match struct {
	// Location is the matched location, relative to the base path.
	Location *url.URL
	// Params are the route parameters.
	Params map[string]string
	// Routes is the chain of matched routes, outermost first.
	Routes []*Route
	// Pattern is the full path pattern of the innermost matched route.
	Pattern string
}

// Components returns the components of the matched routes, outermost first.
// Routes without component are skipped.
func (m *Match) Components() []Component {
	comps := make([]Component, 0, len(m.Routes))
	for _, r := range m.Routes {
		if r.Component != nil {
			comps = append(comps, r.Component)
		}
	}
	return comps
}

// Render renders the matched routes, starting with the innermost component
// and passing each rendered tree as child to the next outer component.
func (m *Match) Render(rc *render.Context) *ui.Node {
	var tree *ui.Node
	for idx := len(m.Routes) - 1; idx >= 0; idx-- {
		if comp := m.Routes[idx].Component; comp != nil {
			tree = comp.Render(rc, tree)
		}
	}
	return tree
}

// Redirect is the outcome of matching a redirecting route.
type Redirect struct {
	// Pathname is the absolute path to redirect to, including the base
	// path.
	Pathname string
	// Search is either empty or the query including the leading "?".
	Search string
}

// String returns pathname and search.
func (r *Redirect) String() string {
	return r.Pathname + r.Search
}
