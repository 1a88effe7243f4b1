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
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/olekenneth/roc-package-web-app-react/route"
	"github.com/olekenneth/roc-package-web-app-react/server"
	"github.com/olekenneth/roc-package-web-app-react/store"
)

// ForwardedPrefixHeader is the name of a (non-standard) HTTP header
// containing the prefix path of the original request path that the reverse
// proxy stripped before forwarding the request to us.
const ForwardedPrefixHeader = "X-Forwarded-Prefix"

// ForwardedUriHeader is the name of a (non-standard) HTTP header containing
// the original request URI, or only its path.
const ForwardedUriHeader = "X-Forwarded-Uri"

// baseRe matches the base element in rendered pages with the href value in
// between the two capture groups.
var baseRe = regexp.MustCompile(`(<base href=").*?("\s*/>)`)

// Handler serves the static assets of a web application and renders all
// other requests on the server.
type Handler struct {
	renderer          *server.Renderer
	routes            route.Factory
	page              server.PageRenderer
	assets            fs.FS        // optional FS to serve static assets from.
	staticfileHandler http.Handler // assets adapted to http's file serving needs.
	newStore          StoreFunc
	staticMarkup      bool
	pageRewriter      PageRewriter
	logger            zerolog.Logger
}

// StoreFunc returns a fresh state container for rendering the specified
// request.
type StoreFunc func(r *http.Request) (store.Store, error)

// PageRewriter post-processes a rendered page before it gets sent to the
// client.
type PageRewriter func(r *http.Request, page string) string

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithAssets serves the static assets in the specified FS, such as the
// bundled scripts and style sheets.
func WithAssets(assets fs.FS) HandlerOption {
	return func(h *Handler) {
		h.assets = assets
	}
}

// WithStore creates a new state container for each rendered request.
// Without it, requests are rendered without any state container.
func WithStore(newStore StoreFunc) HandlerOption {
	return func(h *Handler) {
		h.newStore = newStore
	}
}

// WithStaticMarkup renders pages without any markup reuse attributes.
func WithStaticMarkup() HandlerOption {
	return func(h *Handler) {
		h.staticMarkup = true
	}
}

// WithPageRewriter sets an application-specific rewriter that gets passed
// each rendered page after the base path has been adjusted.
func WithPageRewriter(rewriter PageRewriter) HandlerOption {
	return func(h *Handler) {
		h.pageRewriter = rewriter
	}
}

// WithLogger sets the logger; it defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler returns a new Handler rendering requests with the specified
// renderer, routes, and page renderer.
func NewHandler(renderer *server.Renderer, routes route.Factory, page server.PageRenderer, opts ...HandlerOption) *Handler {
	h := &Handler{
		renderer: renderer,
		routes:   routes,
		page:     page,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.assets != nil {
		h.staticfileHandler = http.FileServer(http.FS(h.assets))
		if base := renderer.Basename(); base != "" {
			h.staticfileHandler = http.StripPrefix(base, h.staticfileHandler)
		}
	}
	return h
}

// ServeHTTP serves static assets if present, and otherwise renders the
// requested page.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Get the absolute and also cleaned path to the requested resource in order
	// to prevent parent directory traversal outside the static assets
	// directory. Slapping "/" ensures that path.Clean does NOT to use the
	// current working dir for resolving the request path.
	r.URL.Path = path.Clean("/" + r.URL.Path)
	if h.assets != nil && h.serveStaticAsset(w, r) {
		return
	}
	h.serveRenderedPage(w, r)
}

// serveRenderedPage renders the requested URL and sends the outcome to the
// client.
func (h *Handler) serveRenderedPage(w http.ResponseWriter, r *http.Request) {
	var st store.Store
	if h.newStore != nil {
		var err error
		if st, err = h.newStore(r); err != nil {
			h.logger.Error().Err(err).Str("url", r.URL.RequestURI()).Msg("cannot create store")
			NormalizedHttpError(w, err)
			return
		}
	}
	res := h.renderer.Render(r.Context(), r.URL.RequestURI(), h.routes, st, h.page, h.staticMarkup)
	switch res := res.(type) {
	case server.Redirect:
		http.Redirect(w, r, h.prefix(r)+res.Location, http.StatusFound)
	case server.ErrorPage:
		h.writePage(w, r, res.Status, res.Body)
	case server.Rendered:
		h.writePage(w, r, res.Status, res.Body)
	}
}

// writePage sends a rendered page with its base path adjusted to where the
// client originally sent its request to.
func (h *Handler) writePage(w http.ResponseWriter, r *http.Request, status int, page string) {
	// Sanitize the base path so it cannot interfere with our regexp
	// replacement operations where we need to use "$1" and "$2" back
	// references.
	base := strings.ReplaceAll(h.prefix(r)+h.renderer.Basename()+"/", "$", "")
	page = baseRe.ReplaceAllString(page, "${1}"+base+"${2}")
	if h.pageRewriter != nil {
		page = h.pageRewriter(r, page)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(page)))
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		_, _ = io.WriteString(w, page)
	}
}

// serveStaticAsset serves the requested static asset and returns true, or
// returns false if there is no such asset.
func (h *Handler) serveStaticAsset(w http.ResponseWriter, r *http.Request) bool {
	assetPath := r.URL.Path
	if base := h.renderer.Basename(); base != "" {
		if !strings.HasPrefix(assetPath, base+"/") {
			return false
		}
		assetPath = assetPath[len(base):]
	}
	assetPath = assetPath[1:] // ...fs.FS uses unrooted paths.
	if assetPath == "" {
		return false // hitting root is always a case for rendering.
	}
	// fs.Stat deals with fs.FS implementations that don't support fs.StatFS.
	info, err := fs.Stat(h.assets, assetPath)
	// If we have a "regular" file then serve it using a regular
	// http.FileServer. Fun fact: http.FileServer also sanitizes our already
	// sanitized path.
	if err == nil && info.Mode()&os.ModeType == 0 {
		h.staticfileHandler.ServeHTTP(w, r)
		return true
	}
	// If we got an error and it isn't a missing static asset, then normalize
	// (or rather, sanitize) the error and send that back to the client.
	if err != nil && !os.IsNotExist(err) {
		NormalizedHttpError(w, err)
		return true
	}
	return false
}

// prefix returns the path prefix stripped by a reverse proxy, without
// trailing slash; it is empty when the request wasn't rewritten.
func (h *Handler) prefix(r *http.Request) string {
	return strings.TrimSuffix(h.basename(r), "/")
}

// originalReqPath returns the request path as originally sent by the client,
// before any reverse proxy rewrote it.
func (h *Handler) originalReqPath(r *http.Request) string {
	// Was the request path rewritten? Then the original request path was the
	// forwarded prefix, followed by the remaining part we now see in the
	// request.
	if fwprefix := r.Header.Get(ForwardedPrefixHeader); fwprefix != "" {
		fwprefix = path.Clean("/" + fwprefix)
		return path.Join(fwprefix, r.URL.Path)
	}
	// Was the original HTTP request URL passed upon us? Some proxies pass
	// only the request path, but not the full original URI.
	if fwurl := r.Header.Get(ForwardedUriHeader); fwurl != "" {
		if strings.HasPrefix(fwurl, "/") {
			return path.Clean(fwurl)
		}
		// Attempt to parse it as a URL; if that fails, just ignore it.
		if u, err := url.Parse(fwurl); err == nil {
			return path.Clean("/" + u.Path)
		}
	}
	return r.URL.Path
}

// basename returns the prefix path of the original request path that a
// reverse proxy stripped, always ending in "/".
func (h *Handler) basename(r *http.Request) string {
	reqPath := r.URL.Path
	originalReqPath := h.originalReqPath(r)
	var base string
	if strings.HasSuffix(reqPath, "/") && !strings.HasSuffix(originalReqPath, "/") {
		// take care of the situation where the reverse proxy redirects from
		// /foo to /foo/ and then rewrites the path to /.
		originalReqPath += "/"
	}
	// If the request path we see is a proper suffix of the original request
	// path, take only the common base part (~prefix).
	if strings.HasSuffix(originalReqPath, reqPath) {
		base = originalReqPath[:len(originalReqPath)-len(reqPath)]
	}
	// Ensure that the base path always ends with a "/", as otherwise
	// browsers clip off the final element of the base path.
	if strings.HasSuffix(base, "/") {
		return base
	}
	return base + "/"
}
