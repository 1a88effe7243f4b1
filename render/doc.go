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
Package render turns component trees into HTML and carries the per-render
Context that components use to learn about the current location, route
parameters, and state container, and to declare head metadata and the HTTP
status of the page.

There are two ways of rendering a tree:

  - ToString renders markup that a client will take over ("rehydrate"): each
    element carries a data-reactid, the root element is marked with
    data-reactroot and a data-react-checksum holding the Adler-32 checksum of
    the markup. A client only reuses server markup when the checksum of the
    markup it would render itself matches.
  - ToStaticMarkup renders plain markup without any of these attributes, for
    pages that will never be taken over by a client, such as emails or a
    static export.
*/
package render
