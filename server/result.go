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

package server

// Outcomes of renders, as used in logs, metrics, and traces.
const (
	OutcomeRedirect = "redirect"
	OutcomeError    = "error"
	OutcomeRendered = "rendered"
)

// FallbackBody is the body of error pages when even the page renderer
// fails.
const FallbackBody = "500 Internal Server Error"

// Result is the outcome of a render; it is one of Redirect, ErrorPage, or
// Rendered.
type Result interface {
	Outcome() string
	isResult()
}

// Redirect tells the client to go to Location (path and query) instead.
// Location includes the base path the application is served from, unlike
// the locations routes declare as redirect targets.
type Redirect struct {
	Location string
}

// ErrorPage is a generic error page.
type ErrorPage struct {
	Status int
	Body   string
}

// Rendered is a successfully rendered page.
type Rendered struct {
	Status int
	Body   string
}

func (Redirect) Outcome() string  { return OutcomeRedirect }
func (ErrorPage) Outcome() string { return OutcomeError }
func (Rendered) Outcome() string  { return OutcomeRendered }

func (Redirect) isResult()  {}
func (ErrorPage) isResult() {}
func (Rendered) isResult()  {}
