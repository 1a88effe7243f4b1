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

package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/atomic"
)

// RoutingKey is the state key holding the routing state.
const RoutingKey = "routing"

// LocationChangeType is the type of actions updating the current location.
const LocationChangeType = "@@router/LOCATION_CHANGE"

// State is the JSON-compatible application state.
type State = map[string]any

// Action describes a state change.
type Action struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// LocationChange returns the action updating the routing state to the
// specified location (path and query).
func LocationChange(location string) Action {
	return Action{Type: LocationChangeType, Payload: location}
}

// Reducer computes the next state from the current state and an action. It
// must not modify the passed state in place.
type Reducer func(state State, action Action) (State, error)

// Store is a state container.
type Store interface {
	// Dispatch applies the action and notifies subscribers.
	Dispatch(action Action) error
	// GetState returns the current state; callers must not modify it.
	GetState() State
	// Subscribe registers a listener called after each dispatch and returns
	// a function unregistering it again.
	Subscribe(listener func()) (unsubscribe func())
}

// Factory creates a new store seeded with the specified initial state, which
// might be nil.
type Factory func(initial State) (Store, error)

// ErrNilAction is returned when dispatching an action without type.
var ErrNilAction = errors.New("action without type")

// ReducerStore is a Store driven by a Reducer.
type ReducerStore struct {
	mu        sync.RWMutex
	reducer   Reducer
	state     State
	listeners map[uint64]func()
	nextID    uint64
	version   atomic.Uint64
}

var _ Store = (*ReducerStore)(nil)

// New returns a new store using the specified reducer (which might be nil
// if only the routing state is needed) and initial state.
func New(reducer Reducer, initial State) *ReducerStore {
	state := State{}
	for k, v := range initial {
		state[k] = v
	}
	if _, ok := state[RoutingKey]; !ok {
		state[RoutingKey] = map[string]any{"location": nil}
	}
	return &ReducerStore{
		reducer:   reducer,
		state:     state,
		listeners: map[uint64]func(){},
	}
}

// NewFactory returns a Factory creating stores with the specified reducer.
func NewFactory(reducer Reducer) Factory {
	return func(initial State) (Store, error) {
		return New(reducer, initial), nil
	}
}

// Dispatch applies the action and then notifies subscribers.
func (s *ReducerStore) Dispatch(action Action) error {
	if action.Type == "" {
		return ErrNilAction
	}
	s.mu.Lock()
	next, err := s.reduce(s.state, action)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("reducing action %q: %w", action.Type, err)
	}
	s.state = next
	s.version.Inc()
	listeners := make([]func(), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()
	for _, l := range listeners {
		l()
	}
	return nil
}

func (s *ReducerStore) reduce(state State, action Action) (State, error) {
	if action.Type == LocationChangeType {
		next := make(State, len(state))
		for k, v := range state {
			next[k] = v
		}
		next[RoutingKey] = map[string]any{"location": action.Payload}
		state = next
	}
	if s.reducer == nil {
		return state, nil
	}
	return s.reducer(state, action)
}

// GetState returns the current state.
func (s *ReducerStore) GetState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers a listener.
func (s *ReducerStore) Subscribe(listener func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Version returns the number of successful dispatches so far.
func (s *ReducerStore) Version() uint64 {
	return s.version.Load()
}

// Location returns the current location of the routing state, if any.
func Location(st Store) (string, bool) {
	routing, ok := st.GetState()[RoutingKey].(map[string]any)
	if !ok {
		return "", false
	}
	location, ok := routing["location"].(string)
	return location, ok
}

// Decode decodes serialized state. An empty or "null" input decodes into a
// nil state.
func Decode(raw []byte) (State, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("cannot decode state: %w", err)
	}
	return state, nil
}
