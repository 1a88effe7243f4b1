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
Package page renders complete HTML pages from a page template.

A Renderer is created once per set of built assets, that is, the names of the
script bundle and style sheet produced by the build pipeline. Its RenderPage
method then embeds the rendered content of a request together with the head
metadata, the serialized state of the state container, and the serialized
client configuration into the page template.

Calling RenderPage without head metadata renders the default header component
first, so that even pages without real content (such as error pages) get a
proper title and meta tags.

Only the runtime configuration section is handed to clients in production
("dist") builds; development builds additionally include the dev section. The
build section is never serialized into pages.

Page templates are html/template templates, with the slim-sprig functions
available. They are either the built-in ones, or are loaded from the directory
configured in runtime.template.path. In development builds, templates loaded
from a directory are watched and re-parsed on changes, notifying any reload
hooks registered with Renderer.OnReload.
*/
package page
