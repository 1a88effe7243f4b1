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
Package buildmode tells whether the binary has been built as a production
("dist") binary or as a development binary. The decision is made at compile
time using the "dist" build tag, so development-only collaborators never need
to be looked up at run time.

	go build -tags dist ./cmd/webapp-react
*/
package buildmode

// Dev is the inverse of Dist: development builds enable developer overlays,
// template live reload, and ship the dev configuration subset to clients.
const Dev = !Dist
