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

package render

import (
	"context"
	"net/url"
	"sync"

	"github.com/olekenneth/roc-package-web-app-react/head"
	"github.com/olekenneth/roc-package-web-app-react/store"
)

// Context is the context of a single render pass.
type Context struct {
	ctx      context.Context
	location *url.URL
	params   map[string]string
	store    store.Store
	head     *head.Collector

	mu     sync.Mutex
	status int
}

// ContextOption configures a new Context.
type ContextOption func(*Context)

// WithLocation sets the location being rendered.
func WithLocation(location *url.URL) ContextOption {
	return func(c *Context) { c.location = location }
}

// WithParams sets the route parameters.
func WithParams(params map[string]string) ContextOption {
	return func(c *Context) { c.params = params }
}

// WithStore makes the state container available to components.
func WithStore(st store.Store) ContextOption {
	return func(c *Context) { c.store = st }
}

// WithHead sets the head collector to use instead of a fresh one.
func WithHead(collector *head.Collector) ContextOption {
	return func(c *Context) { c.head = collector }
}

// NewContext returns a new render context.
func NewContext(ctx context.Context, opts ...ContextOption) *Context {
	c := &Context{ctx: ctx}
	for _, opt := range opts {
		opt(c)
	}
	if c.ctx == nil {
		c.ctx = context.Background()
	}
	if c.location == nil {
		c.location = &url.URL{Path: "/"}
	}
	if c.params == nil {
		c.params = map[string]string{}
	}
	if c.head == nil {
		c.head = head.NewCollector()
	}
	return c
}

// Context returns the context.Context of this render.
func (c *Context) Context() context.Context { return c.ctx }

// Location returns the location being rendered.
func (c *Context) Location() *url.URL { return c.location }

// Param returns the named route parameter, or "" if unknown.
func (c *Context) Param(name string) string { return c.params[name] }

// Params returns all route parameters.
func (c *Context) Params() map[string]string { return c.params }

// Store returns the state container, or nil if there is none.
func (c *Context) Store() store.Store { return c.store }

// Head returns the head collector.
func (c *Context) Head() *head.Collector { return c.head }

// SetStatus sets the HTTP status of the rendered page, such as 404 for a
// "not found" page component. The last call wins.
func (c *Context) SetStatus(code int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = code
}

// Status returns the HTTP status set by components, or 0 if none was set.
func (c *Context) Status() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}
