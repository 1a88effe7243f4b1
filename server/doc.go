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
Package server renders requested URLs on the server.

A Renderer matches a URL against the route table of the application,
prefetches the data of all matched route components, renders the matched
components, and finally hands the rendered markup, the collected head
metadata, and the state snapshot to a page renderer. The outcome always is
exactly one of:

  - Redirect, when the matched route redirects elsewhere;
  - ErrorPage, a generic status 500 page when the URL is malformed, no route
    matches, prefetching fails for whatever reason, or rendering fails;
  - Rendered, the rendered page with the status declared by the rendered
    components, defaulting to 200.

Render never fails in any other way: the details of failures only end up in
the log, never in the response.

Each render gets a render id for correlating log entries and trace spans.
Renders are counted and timed in Prometheus metrics, labelled with their
outcome.
*/
package server
