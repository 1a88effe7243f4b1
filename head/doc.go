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
Package head collects the document head metadata (title, meta, link, and
script tags) declared by components while a tree gets rendered.

Each render owns its own Collector. After rendering, Collector.Rewind takes a
snapshot as a Head and resets the collector, so the same collector can be used
for another render pass. Head renders its parts as HTML ready to be placed
into a page template.

Meta tags are keyed by their name, property, http-equiv, or charset attribute:
a later declaration with the same key replaces an earlier one. This way, a
page component rendered below the application's default header can override
the default description, for instance.
*/
package head
