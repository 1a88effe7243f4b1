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

/*
Package store provides the state container shared by the routed components of
a single render (on the server) or page load (in the browser).

A Store is driven by a Reducer: dispatching an Action computes the next state
from the current one. The routing state, that is, the current location, is
always kept under the RoutingKey, updated by LocationChange actions, so that
server and client agree on the location the state belongs to.

State is a JSON-compatible map: the server serializes the state snapshot into
the rendered page and the client decodes it again using Decode to rehydrate
its own store.
*/
package store
