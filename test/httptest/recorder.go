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
Package httptest wraps the standard library's httptest.ResponseRecorder in order
to fail any test doing superfluous response.WriteHeader calls, and to inspect
recorded HTML pages.
*/
package httptest

import (
	stdhttptest "net/http/httptest"

	"github.com/PuerkitoBio/goquery"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// WrappedResponseRecorder records responses, failing the current test on
// superfluous WriteHeader calls.
type WrappedResponseRecorder struct {
	*stdhttptest.ResponseRecorder
	wroteHeader bool
}

// NewRecorder returns a new WrappedResponseRecorder.
func NewRecorder() *WrappedResponseRecorder {
	return &WrappedResponseRecorder{
		ResponseRecorder: stdhttptest.NewRecorder(),
	}
}

// WriteHeader records the status code, failing the current test when called
// more than once.
func (w *WrappedResponseRecorder) WriteHeader(code int) {
	GinkgoHelper()
	Expect(w.wroteHeader).To(BeFalse(), "superfluous response.WriteHeader call")
	w.wroteHeader = true
	w.ResponseRecorder.WriteHeader(code)
}

// Document parses the recorded body as an HTML document, failing the
// current test if the body isn't an HTML page.
func (w *WrappedResponseRecorder) Document() *goquery.Document {
	GinkgoHelper()
	Expect(w.Header().Get("Content-Type")).To(HavePrefix("text/html"), "not an HTML page")
	doc, err := goquery.NewDocumentFromReader(w.Body)
	Expect(err).NotTo(HaveOccurred())
	return doc
}
