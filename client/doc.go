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
Package client mounts server-rendered web applications in the browser.

[Bootstrap] builds the browser history under the configured base path,
creates the state container from the state embedded by the server, keeps
history and state container in sync, matches the current location against
the route table, and finally mounts the rendered tree into the anchor
element, reusing the server-rendered markup where possible.

In development builds Bootstrap additionally audits mounted trees for
accessibility issues and mounts developer overlays, such as the store dev
tools panel and the warning overlay, into a separate element right after the
anchor element.

The browser is accessed only through the [Env] and [Mounter] interfaces; in
js/wasm builds [NewBrowserEnv] and [NewDOMMounter] provide these for the
real browser.
*/
package client
