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

import "github.com/olekenneth/roc-package-web-app-react/ui"

// Element is an opaque handle to an element of the environment's document.
type Element any

// Env is the browser environment the application gets mounted in. All
// locations are absolute paths including the base path, with optional
// query.
type Env interface {
	// Location returns the current location.
	Location() string
	// SupportsHistory reports whether the environment supports changing the
	// location without reloading the page.
	SupportsHistory() bool
	// PushState adds a new location to the session history.
	PushState(location string)
	// ReplaceState replaces the current location in the session history.
	ReplaceState(location string)
	// OnPopState registers a listener for the user navigating the session
	// history; the returned function unregisters the listener again.
	OnPopState(listener func(location string)) func()
	// HydrationState returns the JSON-encoded state embedded by the server,
	// or nil if the server didn't render the page.
	HydrationState() []byte
	// HasDevToolsExtension reports whether a store dev tools browser
	// extension is installed.
	HasDevToolsExtension() bool
	// ElementByID returns the element with the specified id, or nil.
	ElementByID(id string) Element
	// InsertSiblingAfter creates a new element and inserts it right after
	// the specified element.
	InsertSiblingAfter(anchor Element) Element
}

// Mounter mounts trees into elements.
type Mounter interface {
	Mount(tree *ui.Node, into Element) error
}

// MounterFunc adapts an ordinary function to the Mounter interface.
type MounterFunc func(tree *ui.Node, into Element) error

// Mount calls f(tree, into).
func (f MounterFunc) Mount(tree *ui.Node, into Element) error { return f(tree, into) }
