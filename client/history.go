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
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/olekenneth/roc-package-web-app-react/store"
)

// History is the session history of the application, under a base path.
// Locations handed to and returned from History are relative to the base
// path; the environment sees them including the base path.
type History struct {
	env      Env
	basename string

	mu        sync.Mutex
	listeners []listener // in registration order.
	nextID    int
	unpop     func()
}

type listener struct {
	id int
	fn func(location string)
}

// NewHistory returns the session history of the environment under the
// specified base path, which is either empty or has a leading but no
// trailing "/".
func NewHistory(env Env, basename string) *History {
	h := &History{
		env:      env,
		basename: strings.TrimSuffix(basename, "/"),
	}
	h.unpop = env.OnPopState(func(location string) {
		h.notify(h.strip(location))
	})
	return h
}

// Basename returns the base path.
func (h *History) Basename() string { return h.basename }

// Location returns the current location relative to the base path.
func (h *History) Location() string {
	return h.strip(h.env.Location())
}

// CreateHref returns the absolute location for the specified location
// relative to the base path.
func (h *History) CreateHref(location string) string {
	if !strings.HasPrefix(location, "/") {
		location = "/" + location
	}
	return h.basename + location
}

// Push navigates to the specified location.
func (h *History) Push(location string) {
	h.env.PushState(h.CreateHref(location))
	h.notify(h.Location())
}

// Replace replaces the current location.
func (h *History) Replace(location string) {
	h.env.ReplaceState(h.CreateHref(location))
	h.notify(h.Location())
}

// Listen registers a listener for location changes; the returned function
// unregisters the listener again. Listeners are called in the order they
// were registered.
func (h *History) Listen(fn func(location string)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.listeners = append(h.listeners, listener{id: id, fn: fn})
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for idx, l := range h.listeners {
			if l.id == id {
				h.listeners = append(h.listeners[:idx:idx], h.listeners[idx+1:]...)
				return
			}
		}
	}
}

// Close stops listening to the environment.
func (h *History) Close() {
	if h.unpop != nil {
		h.unpop()
	}
}

func (h *History) notify(location string) {
	h.mu.Lock()
	listeners := append([]listener(nil), h.listeners...)
	h.mu.Unlock()
	for _, l := range listeners {
		l.fn(location)
	}
}

func (h *History) strip(location string) string {
	if h.basename == "" {
		return location
	}
	if location == h.basename {
		return "/"
	}
	if rest, ok := strings.CutPrefix(location, h.basename); ok && (rest[0] == '/' || rest[0] == '?') {
		if rest[0] == '?' {
			return "/" + rest
		}
		return rest
	}
	return location
}

// SyncWithStore keeps the routing state of the store in sync with the
// history: location changes get dispatched to the store, and when replaying
// store actions moves the stored location elsewhere the history follows,
// unless adjustURLOnReplay is false. The stored locations include the base
// path. A location the store rejects gets logged and dispatched again on the
// next location change. The returned function stops synchronizing.
func (h *History) SyncWithStore(st store.Store, adjustURLOnReplay bool, logger zerolog.Logger) func() {
	var mu sync.Mutex
	var last string // the location last dispatched or followed.

	dispatch := func(location string) {
		full := h.CreateHref(location)
		mu.Lock()
		if full == last {
			mu.Unlock()
			return
		}
		prev := last
		last = full
		mu.Unlock()
		if err := st.Dispatch(store.LocationChange(full)); err != nil {
			logger.Error().Err(err).Str("location", full).Msg("cannot update store location")
			mu.Lock()
			if last == full {
				last = prev
			}
			mu.Unlock()
		}
	}
	dispatch(h.Location())
	unlisten := h.Listen(dispatch)

	unsubscribe := st.Subscribe(func() {
		if !adjustURLOnReplay {
			return
		}
		stored, ok := store.Location(st)
		if !ok {
			return
		}
		mu.Lock()
		if stored == last {
			mu.Unlock()
			return
		}
		last = stored
		mu.Unlock()
		h.Replace(h.strip(stored))
	})
	return func() {
		unlisten()
		unsubscribe()
	}
}
