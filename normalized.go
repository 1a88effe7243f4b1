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

package webapp

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
)

// NormalizedHttpError replies to the request with a generic HTTP error
// message and status derived from the specified error, without leaking any
// details of the error to the client.
func NormalizedHttpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		http.Error(w, "404 page not found", http.StatusNotFound)
	case errors.Is(err, fs.ErrPermission):
		http.Error(w, "403 Forbidden", http.StatusForbidden)
	case errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "503 Service Unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
	}
}
