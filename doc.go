// Copyright 2024 Harald Albrecht.
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
Package webapp serves server-rendered web applications, supporting nested
client-side routes, per-route data prefetching, and varying base paths. And
all this without the need to rebuild the application when the deployment
changes.

The Handler type implements http.Handler to serve the application's built
static assets and to render all other requests on the server. Rendering
follows the route table of the application: the matching routes first
prefetch their data, then render into markup that the client later reuses
instead of rendering it again. The rendered markup finally gets embedded
into a page template that carries the state, the client configuration, and
the asset references.

The building blocks live in separate packages:

  - [github.com/olekenneth/roc-package-web-app-react/config] for the
    configuration,
  - [github.com/olekenneth/roc-package-web-app-react/route] for route
    tables and matching,
  - [github.com/olekenneth/roc-package-web-app-react/server] for rendering
    URLs,
  - [github.com/olekenneth/roc-package-web-app-react/page] for the page
    template,
  - [github.com/olekenneth/roc-package-web-app-react/client] for mounting
    the application in the browser.

When deployed behind reverse proxies that rewrite request paths, Handler
derives the original base path from the X-Forwarded-Prefix or
X-Forwarded-Uri request headers and adjusts the "<base href>" of rendered
pages as well as redirect locations accordingly.
*/
package webapp
