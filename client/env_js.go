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

//go:build js && wasm

package client

import (
	"syscall/js"

	"github.com/olekenneth/roc-package-web-app-react/render"
	"github.com/olekenneth/roc-package-web-app-react/ui"
)

// BrowserEnv is the Env of the browser window the WebAssembly module runs
// in.
type BrowserEnv struct {
	window   js.Value
	document js.Value
}

var _ Env = (*BrowserEnv)(nil)

// NewBrowserEnv returns the environment of the current browser window.
func NewBrowserEnv() *BrowserEnv {
	window := js.Global()
	return &BrowserEnv{
		window:   window,
		document: window.Get("document"),
	}
}

func (e *BrowserEnv) Location() string {
	loc := e.window.Get("location")
	return loc.Get("pathname").String() + loc.Get("search").String()
}

func (e *BrowserEnv) SupportsHistory() bool {
	history := e.window.Get("history")
	return history.Truthy() && history.Get("pushState").Truthy()
}

func (e *BrowserEnv) PushState(location string) {
	if !e.SupportsHistory() {
		e.window.Get("location").Set("href", location)
		return
	}
	e.window.Get("history").Call("pushState", js.Null(), "", location)
}

func (e *BrowserEnv) ReplaceState(location string) {
	if !e.SupportsHistory() {
		e.window.Get("location").Call("replace", location)
		return
	}
	e.window.Get("history").Call("replaceState", js.Null(), "", location)
}

func (e *BrowserEnv) OnPopState(listener func(location string)) func() {
	fn := js.FuncOf(func(js.Value, []js.Value) any {
		listener(e.Location())
		return nil
	})
	e.window.Call("addEventListener", "popstate", fn)
	return func() {
		e.window.Call("removeEventListener", "popstate", fn)
		fn.Release()
	}
}

// HydrationState returns the JSON encoding of window.FLUX_STATE.
func (e *BrowserEnv) HydrationState() []byte {
	state := e.window.Get("FLUX_STATE")
	if state.IsUndefined() || state.IsNull() {
		return nil
	}
	return []byte(e.window.Get("JSON").Call("stringify", state).String())
}

func (e *BrowserEnv) HasDevToolsExtension() bool {
	return e.window.Get("devToolsExtension").Truthy()
}

func (e *BrowserEnv) ElementByID(id string) Element {
	el := e.document.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return nil
	}
	return el
}

func (e *BrowserEnv) InsertSiblingAfter(anchor Element) Element {
	a := anchor.(js.Value)
	el := e.document.Call("createElement", "div")
	a.Get("parentNode").Call("insertBefore", el, a.Get("nextSibling"))
	return el
}

// DOMMounter mounts trees by replacing the inner HTML of elements, unless
// the element already contains the very same markup as rendered by the
// server.
type DOMMounter struct{}

var _ Mounter = DOMMounter{}

// NewDOMMounter returns a Mounter for the browser document.
func NewDOMMounter() DOMMounter { return DOMMounter{} }

func (DOMMounter) Mount(tree *ui.Node, into Element) error {
	el := into.(js.Value)
	markup, err := render.ToString(tree)
	if err != nil {
		return err
	}
	// The browser serializes the server-rendered markup in its own way, so
	// only the checksums can tell whether the markup can be reused.
	if current := el.Get("innerHTML").String(); current != "" {
		have, ok := render.Checksum(current)
		want, _ := render.Checksum(markup)
		if ok && have == want {
			return nil
		}
	}
	el.Set("innerHTML", markup)
	return nil
}
