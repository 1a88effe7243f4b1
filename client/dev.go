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
	"maps"
	"slices"
	"strings"

	"github.com/olekenneth/roc-package-web-app-react/store"
	"github.com/olekenneth/roc-package-web-app-react/ui"
)

// Names of the developer overlay components.
const (
	DevToolsComponent  = "DevTools"
	YellowBoxComponent = "YellowBox"
)

// DevTools returns a wrapper adding the store dev tools panel, showing the
// current state of the store.
func DevTools(st store.Store) ui.Wrapper {
	return func(n *ui.Node) *ui.Node {
		panel := ui.El("aside",
			ui.A("class", "roc-devtools"),
			ui.A("aria-label", "Store dev tools"),
			ui.El("div", ui.A("class", "roc-devtools-state"), summary(st.GetState())),
		).Named(DevToolsComponent)
		return ui.Fragment(n, panel)
	}
}

// YellowBox returns a wrapper adding the warning overlay, which shows
// warnings unless they start with any of the ignored prefixes.
func YellowBox(ignore []string) ui.Wrapper {
	attrs := []ui.Attr{ui.A("class", "roc-yellowbox"), ui.A("role", "status")}
	if len(ignore) > 0 {
		attrs = append(attrs, ui.A("data-ignore", strings.Join(ignore, "|")))
	}
	return func(n *ui.Node) *ui.Node {
		return ui.Fragment(n, ui.El("div", attrs).Named(YellowBoxComponent))
	}
}

// summary lists the top-level keys of the state.
func summary(state store.State) *ui.Node {
	keys := make([]*ui.Node, 0, len(state))
	for _, key := range slices.Sorted(maps.Keys(state)) {
		keys = append(keys, ui.El("li", key))
	}
	return ui.El("ul", keys)
}
