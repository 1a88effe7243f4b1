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

package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/olekenneth/roc-package-web-app-react/route"
	"github.com/olekenneth/roc-package-web-app-react/store"
)

// ErrPanicked wraps panics of fetchers.
var ErrPanicked = errors.New("fetcher panicked")

// Locals are passed to fetchers.
type Locals struct {
	Location *url.URL
	Params   map[string]string
	// Dispatch and GetState access the state container; both are nil when
	// there is no state container.
	Dispatch func(action store.Action) error
	GetState func() store.State
}

// NewLocals returns the locals for the specified location and route
// parameters, with accessors for the state container if st isn't nil.
func NewLocals(location *url.URL, params map[string]string, st store.Store) Locals {
	locals := Locals{
		Location: location,
		Params:   params,
	}
	if st != nil {
		locals.Dispatch = st.Dispatch
		locals.GetState = st.GetState
	}
	return locals
}

// Fetcher is implemented by route components needing data before they can be
// rendered. Fetchers usually dispatch the fetched data into the state
// container.
type Fetcher interface {
	Fetch(ctx context.Context, locals Locals) error
}

// Prefetch runs the fetchers among the specified components and waits for
// all of them to settle. Components not implementing Fetcher are skipped.
func Prefetch(ctx context.Context, components []route.Component, locals Locals, parallel bool) error {
	var fetchers []Fetcher
	for _, c := range components {
		if f, ok := c.(Fetcher); ok {
			fetchers = append(fetchers, f)
		}
	}
	if len(fetchers) == 0 {
		return ctx.Err()
	}
	if parallel {
		g, gctx := errgroup.WithContext(ctx)
		for _, f := range fetchers {
			f := f
			g.Go(func() error { return fetch(gctx, f, locals) })
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for _, f := range fetchers {
			if err := fetch(ctx, f, locals); err != nil {
				return err
			}
		}
	}
	// Fetchers ignoring their context must not sneak past a deadline.
	return ctx.Err()
}

func fetch(ctx context.Context, f Fetcher, locals Locals) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, p)
		}
	}()
	if err := f.Fetch(ctx, locals); err != nil {
		return fmt.Errorf("fetching %T: %w", f, err)
	}
	return nil
}
