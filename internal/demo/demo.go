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

// Package demo is a small example application served by the webapp-react
// command: a layout with a home page, an about page, user pages with their
// data prefetched into the store, a legacy redirect, and a not found page.
package demo

import (
	"context"
	"fmt"

	"github.com/olekenneth/roc-package-web-app-react/fetch"
	"github.com/olekenneth/roc-package-web-app-react/render"
	"github.com/olekenneth/roc-package-web-app-react/route"
	"github.com/olekenneth/roc-package-web-app-react/store"
	"github.com/olekenneth/roc-package-web-app-react/ui"
)

// Actions of the demo store.
const (
	UserLoadedType = "USER_LOADED"
	UsersKey       = "users"
)

// Users is the directory of known users, by id.
var Users = map[string]string{
	"1": "Ada Lovelace",
	"2": "Grace Hopper",
	"3": "Margaret Hamilton",
}

// Routes returns the route table of the demo application.
func Routes(store.Store) route.Table {
	return route.Table{{
		Path:      "/",
		Name:      "layout",
		Component: route.ComponentFunc(layout),
		Children: []route.Route{
			{Path: "", Name: "home", Component: route.ComponentFunc(home)},
			{Path: "about", Name: "about", Component: route.ComponentFunc(about)},
			{Path: "users/:id", Name: "user", Component: User{Directory: Users}},
			{Path: "profiles/:id", RedirectTo: "/users/:id"},
			{Path: "*", Name: "not-found", Component: route.ComponentFunc(notFound)},
		},
	}}
}

// NewStore returns a fresh demo store.
func NewStore() store.Store {
	return store.New(Reducer, nil)
}

// Reducer keeps the loaded users.
func Reducer(state store.State, action store.Action) (store.State, error) {
	if action.Type != UserLoadedType {
		return state, nil
	}
	user, ok := action.Payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid user payload %T", action.Payload)
	}
	id, _ := user["id"].(string)
	next := make(store.State, len(state)+1)
	for k, v := range state {
		next[k] = v
	}
	users := map[string]any{}
	if loaded, ok := state[UsersKey].(map[string]any); ok {
		for k, v := range loaded {
			users[k] = v
		}
	}
	users[id] = user["name"]
	next[UsersKey] = users
	return next, nil
}

func layout(rc *render.Context, child *ui.Node) *ui.Node {
	rc.Head().AddMeta(ui.A("name", "description"), ui.A("content", "Server-rendered demo application"))
	return ui.El("div", ui.A("class", "layout"),
		ui.El("nav",
			ui.El("a", ui.A("href", "./"), "Home"),
			ui.El("a", ui.A("href", "about"), "About"),
			ui.El("a", ui.A("href", "users/1"), "Ada"),
		),
		ui.El("main", child),
	).Named("Layout")
}

func home(rc *render.Context, _ *ui.Node) *ui.Node {
	rc.Head().SetTitle("Home")
	return ui.El("h1", "Welcome").Named("Home")
}

func about(rc *render.Context, _ *ui.Node) *ui.Node {
	rc.Head().SetTitle("About")
	return ui.El("p", "Rendered on the server, mounted in the browser.").Named("About")
}

func notFound(rc *render.Context, _ *ui.Node) *ui.Node {
	rc.SetStatus(404)
	rc.Head().SetTitle("Not Found")
	return ui.El("h1", "Not Found").Named("NotFound")
}

// User shows a user, prefetching it from the directory into the store.
type User struct {
	Directory map[string]string
}

var _ fetch.Fetcher = User{}

// Fetch loads the user into the store, if there is one.
func (u User) Fetch(ctx context.Context, locals fetch.Locals) error {
	id := locals.Params["id"]
	name, ok := u.Directory[id]
	if !ok || locals.Dispatch == nil {
		return nil
	}
	return locals.Dispatch(store.Action{
		Type:    UserLoadedType,
		Payload: map[string]any{"id": id, "name": name},
	})
}

func (u User) Render(rc *render.Context, _ *ui.Node) *ui.Node {
	id := rc.Param("id")
	var name string
	if st := rc.Store(); st != nil {
		if users, ok := st.GetState()[UsersKey].(map[string]any); ok {
			name, _ = users[id].(string)
		}
	}
	if name == "" {
		return notFound(rc, nil)
	}
	rc.Head().SetTitle(name)
	return ui.El("article", ui.A("class", "user"),
		ui.El("h1", name),
		ui.El("p", "User #"+id),
	).Named("User")
}
