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
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
)

// SplatParam is the name of the parameter holding the remainder of the path
// matched by a trailing "*" segment.
const SplatParam = "splat"

// Errors returned by Table.Match.
var (
	ErrMalformedURL = errors.New("malformed URL")
	ErrBadPattern   = errors.New("bad route pattern")
)

// entry is a flattened route: its full path pattern in chi syntax and the
// chain of routes leading to it.
type entry struct {
	pattern string
	chain   []*Route
}

// Match matches the URL (path and optional query) against the route table,
// under the specified base path, which must be either empty or start with
// "/" and have no trailing "/". If no route matches, Match returns
// (nil, nil, nil).
func (t Table) Match(ctx context.Context, rawurl string, basename string) (*Match, *Redirect, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrMalformedURL, err.Error())
	}
	if strings.ContainsAny(u.Path, "\\\x00") {
		return nil, nil, fmt.Errorf("%w: invalid characters in path", ErrMalformedURL)
	}
	reqPath, ok := stripBasename(path.Clean("/"+u.Path), basename)
	if !ok {
		return nil, nil, nil
	}

	mux, chains, err := t.mux()
	if err != nil {
		return nil, nil, err
	}
	rctx := chi.NewRouteContext()
	if !mux.Match(rctx, http.MethodGet, reqPath) || len(rctx.RoutePatterns) == 0 {
		return nil, nil, nil
	}
	pattern := rctx.RoutePatterns[len(rctx.RoutePatterns)-1]
	chain, ok := chains[pattern]
	if !ok {
		return nil, nil, nil
	}
	params := map[string]string{}
	for idx, key := range rctx.URLParams.Keys {
		if key == "*" {
			key = SplatParam
		}
		params[key] = rctx.URLParams.Values[idx]
	}
	location := &url.URL{Path: reqPath, RawQuery: u.RawQuery}

	for _, r := range chain {
		if r.OnEnter != nil {
			to, err := r.OnEnter(ctx, location, params)
			if err != nil {
				return nil, nil, fmt.Errorf("entering route %q: %w", routeName(r), err)
			}
			if to != "" {
				return nil, redirect(to, params, location, basename), nil
			}
		}
		if r.RedirectTo != "" {
			return nil, redirect(r.RedirectTo, params, location, basename), nil
		}
	}
	return &Match{
		Location: location,
		Params:   params,
		Routes:   chain,
		Pattern:  pattern,
	}, nil, nil
}

// mux returns a chi router with all routes of the table registered, as well
// as the route chains indexed by their registered patterns.
func (t Table) mux() (mux *chi.Mux, chains map[string][]*Route, err error) {
	entries, err := t.flatten()
	if err != nil {
		return nil, nil, err
	}
	// chi panics on patterns it doesn't like, such as duplicate parameter
	// names.
	defer func() {
		if p := recover(); p != nil {
			mux, chains, err = nil, nil, fmt.Errorf("%w: %v", ErrBadPattern, p)
		}
	}()
	mux = chi.NewMux()
	chains = map[string][]*Route{}
	for _, e := range entries {
		if _, ok := chains[e.pattern]; ok {
			continue
		}
		chains[e.pattern] = e.chain
		mux.Handle(e.pattern, http.NotFoundHandler())
	}
	return mux, chains, nil
}

// flatten returns the routes of the table in matching order: children come
// before their parents, so an index child wins over its parent.
func (t Table) flatten() ([]entry, error) {
	var entries []entry
	var walk func(routes []Route, parent string, chain []*Route) error
	walk = func(routes []Route, parent string, chain []*Route) error {
		for idx := range routes {
			r := &routes[idx]
			full := joinPath(parent, r.Path)
			c := make([]*Route, len(chain), len(chain)+1)
			copy(c, chain)
			c = append(c, r)
			if err := walk(r.Children, full, c); err != nil {
				return err
			}
			pattern, err := chiPattern(full)
			if err != nil {
				return fmt.Errorf("route %q: %w", routeName(r), err)
			}
			entries = append(entries, entry{pattern: pattern, chain: c})
		}
		return nil
	}
	if err := walk(t, "/", nil); err != nil {
		return nil, err
	}
	return entries, nil
}

// joinPath joins a relative route path to its parent path, or returns an
// absolute route path as is.
func joinPath(parent, p string) string {
	if strings.HasPrefix(p, "/") {
		return path.Clean(p)
	}
	return path.Join(parent, p)
}

// chiPattern converts ":name" parameter segments and a trailing "*" segment
// into chi's routing pattern syntax.
func chiPattern(p string) (string, error) {
	segments := strings.Split(p, "/")
	for idx, seg := range segments {
		switch {
		case strings.HasPrefix(seg, ":"):
			name := seg[1:]
			if name == "" || strings.ContainsAny(name, "{}*:") {
				return "", fmt.Errorf("%w: invalid parameter segment %q", ErrBadPattern, seg)
			}
			segments[idx] = "{" + name + "}"
		case seg == "*":
			if idx != len(segments)-1 {
				return "", fmt.Errorf("%w: splat must be the last segment in %q", ErrBadPattern, p)
			}
		case strings.ContainsAny(seg, "{}*"):
			return "", fmt.Errorf("%w: invalid segment %q", ErrBadPattern, seg)
		}
	}
	return strings.Join(segments, "/"), nil
}

// stripBasename returns the path relative to the base path, or false if the
// path lies outside the base path.
func stripBasename(p, basename string) (string, bool) {
	if basename == "" || basename == "/" {
		return p, true
	}
	if p == basename {
		return "/", true
	}
	if strings.HasPrefix(p, basename+"/") {
		return p[len(basename):], true
	}
	return "", false
}

// redirect returns the redirect to the specified target, substituting route
// parameters and keeping the current query unless the target has its own.
func redirect(to string, params map[string]string, location *url.URL, basename string) *Redirect {
	target, query, hasQuery := strings.Cut(to, "?")
	segments := strings.Split(target, "/")
	for idx, seg := range segments {
		if strings.HasPrefix(seg, ":") {
			segments[idx] = url.PathEscape(params[seg[1:]])
		} else if seg == "*" {
			segments[idx] = params[SplatParam]
		}
	}
	target = joinPath(path.Dir(location.Path), strings.Join(segments, "/"))
	r := &Redirect{Pathname: path.Clean(basename + target)}
	switch {
	case hasQuery && query != "":
		r.Search = "?" + query
	case !hasQuery && location.RawQuery != "":
		r.Search = "?" + location.RawQuery
	}
	return r
}

func routeName(r *Route) string {
	if r.Name != "" {
		return r.Name
	}
	return r.Path
}
