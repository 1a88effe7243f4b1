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
Package route defines route tables and matches URLs against them.

A route table is an ordered, possibly nested list of Route definitions. Route
paths use ":name" segments for parameters and a trailing "*" segment for
"splats" matching the remainder of a path (available as the "splat"
parameter). Relative child paths are joined with the path of their parent,
while child paths starting with "/" are absolute. A child with an empty path
acts as the index of its parent.

Matching a URL yields one of three outcomes:

  - a Match with the chain of routes from the outermost to the innermost
    matched route, the route parameters, and the location (relative to the
    base path);
  - a Redirect, when a matched route redirects elsewhere, either
    unconditionally (Route.RedirectTo) or from its enter hook;
  - an error, for malformed URLs, route tables with invalid patterns, and
    failing enter hooks.

When nothing matches at all, Table.Match returns neither of the above. The
actual path matching is delegated to chi's routing tree.
*/
package route
