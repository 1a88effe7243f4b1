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
Package ui provides the minimal component tree shared by server-side rendering
and the client bootstrap.

A tree is made of Node elements, text, and fragments. Components are plain
functions producing nodes; the name of the component producing an element can
be recorded using Node.Named, so that tooling such as accessibility audits can
attribute findings (or ignore them).

Wrapper functions take a tree and return a new tree wrapping it, such as a
store provider or a developer overlay. Compose combines wrappers right to
left:

	Compose(f, g, h)(n) == f(g(h(n)))
*/
package ui
