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
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"net/url"
	"os"

	"github.com/olekenneth/roc-package-web-app-react/config"
	"github.com/olekenneth/roc-package-web-app-react/page"
	"github.com/olekenneth/roc-package-web-app-react/render"
	"github.com/olekenneth/roc-package-web-app-react/route"
	"github.com/olekenneth/roc-package-web-app-react/server"
	"github.com/olekenneth/roc-package-web-app-react/store"
	"github.com/olekenneth/roc-package-web-app-react/test/httptest"
	"github.com/olekenneth/roc-package-web-app-react/ui"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

//go:embed test/assets
var embeddedFiles embed.FS
var embStaticFs, _ = fs.Sub(embeddedFiles, "test/assets")

var routes = route.Factory(func(st store.Store) route.Table {
	return route.Table{{
		Path: "/",
		Component: route.ComponentFunc(func(rc *render.Context, child *ui.Node) *ui.Node {
			return ui.El("div", ui.A("class", "app"), child)
		}),
		Children: []route.Route{
			{Path: "", Component: route.ComponentFunc(func(rc *render.Context, _ *ui.Node) *ui.Node {
				rc.Head().SetTitle("Home")
				return ui.El("h1", ui.Text("home"))
			})},
			{Path: "users/:id", Component: route.ComponentFunc(func(rc *render.Context, _ *ui.Node) *ui.Node {
				return ui.El("p", ui.A("id", "user"), ui.Text(rc.Param("id")))
			})},
			{Path: "old/:id", RedirectTo: "/users/:id"},
		},
	}}
})

func request(path string, header http.Header) *http.Request {
	GinkgoHelper()
	url := Successful(url.Parse("http://foo.bar:12345" + path))
	return &http.Request{
		Method: "GET",
		URL:    url,
		Header: header,
	}
}

var _ = Describe("web application handler", func() {

	var cfg *config.Config

	BeforeEach(func() {
		cfg = config.Default()
	})

	handler := func(opts ...HandlerOption) *Handler {
		GinkgoHelper()
		pr := Successful(page.New(cfg, page.Assets{Script: []string{"app.js"}}, page.WithDist(true)))
		return NewHandler(server.New(cfg), routes, pr, opts...)
	}

	DescribeTable("test has embedded files correctly set up",
		func(name string) {
			f := Successful(embStaticFs.Open(name))
			f.Close()
		},
		Entry("icon.png", "icon.png"),
		Entry("static/js/some.js", "static/js/some.js"),
	)

	DescribeTable("determines original request path",
		func(path string, header http.Header, expected string) {
			h := NewHandler(server.New(nil), nil, nil)
			Expect(h.originalReqPath(request(path, header))).To(Equal(expected))
		},
		Entry("/ without proxy headers", "/", nil, "/"),

		Entry("a request path without proxy headers", "/some/path", nil, "/some/path"),
		Entry("/ with X-Forwarded-Prefix header", "/", http.Header{
			ForwardedPrefixHeader: []string{"/"},
		}, "/"),
		Entry("/ with X-Forwarded-Prefix header", "/", http.Header{
			ForwardedPrefixHeader: []string{"/prefix"},
		}, "/prefix"),
		Entry("/foo with X-Forwarded-Prefix header", "/foo", http.Header{
			ForwardedPrefixHeader: []string{"/prefix"},
		}, "/prefix/foo"),

		Entry("/ with X-Forwarded-Uri path-only header", "/", http.Header{
			ForwardedUriHeader: []string{"/"},
		}, "/"),
		Entry("/ with X-Forwarded-Uri path-only empty header", "/", http.Header{
			ForwardedUriHeader: []string{""},
		}, "/"),
		Entry("/ with X-Forwarded-Uri path-only /prefix header", "/", http.Header{
			ForwardedUriHeader: []string{"/prefix"},
		}, "/prefix"),
		Entry("/ with X-Forwarded-Uri schemed header", "/", http.Header{
			ForwardedUriHeader: []string{"http://foo.bar:12345/prefix"},
		}, "/prefix"),
		Entry("/ with X-Forwarded-Uri schemed header", "/", http.Header{
			ForwardedUriHeader: []string{"http://foo.bar:12345/prefix/"},
		}, "/prefix"),
	)

	DescribeTable("determines basename path",
		func(path string, header http.Header, expected string) {
			h := NewHandler(server.New(nil), nil, nil)
			Expect(h.basename(request(path, header))).To(Equal(expected))
		},
		Entry("/ without proxy headers", "/", nil, "/"),
		Entry("/foo/bar without proxy headers", "/foo/bar", nil, "/"),

		Entry("/ rewritten with prefix /foo", "/", http.Header{
			ForwardedPrefixHeader: []string{"/foo"},
		}, "/foo/"),
		Entry("/foo/bar rewritten with prefix /", "/foo/bar", http.Header{
			ForwardedPrefixHeader: []string{"/"},
		}, "/"),
		Entry("/foo/bar rewritten with empty prefix", "/foo/bar", http.Header{
			ForwardedPrefixHeader: []string{""},
		}, "/"),
		Entry("/foo/bar rewritten with prefix /foo", "/foo/bar", http.Header{
			ForwardedPrefixHeader: []string{"/foo"},
		}, "/foo/"),
		Entry("/foo/bar rewritten with prefix /foo/", "/foo/bar", http.Header{
			ForwardedPrefixHeader: []string{"/foo/"},
		}, "/foo/"),
		Entry("/foo/bar rewritten with prefix /bar", "/foo/bar", http.Header{
			ForwardedPrefixHeader: []string{"/bar"},
		}, "/bar/"), // sic!
		Entry("/foo/bar rewritten with prefix /foo/bar/", "/foo/bar", http.Header{
			ForwardedPrefixHeader: []string{"/foo/bar/"},
		}, "/foo/bar/"), // request outside, so clamp to prefix
	)

	DescribeTable("serves static content with correct status code",
		func(runtimePath, path, prefix string, expectedServed bool, expectedCanary string, expectedStatus int) {
			cfg.Runtime.Path = runtimePath
			r := request(path, http.Header{ForwardedPrefixHeader: []string{prefix}})
			h := handler(WithAssets(embStaticFs))
			w := httptest.NewRecorder()
			Expect(h.serveStaticAsset(w, r)).To(Equal(expectedServed))
			switch expectedStatus {
			case 0:
			case http.StatusOK:
				contents := Successful(w.Body.ReadBytes('\n'))
				Expect(string(contents)).To(ContainSubstring(expectedCanary))
			default:
				Expect(w.Result().StatusCode).To(Equal(expectedStatus))
			}
		},
		Entry("/static/js/some.js",
			"/", "/static/js/some.js", "/", true, "CANARY JS", http.StatusOK),
		Entry("[/foo]/static/js/some.js",
			"/", "/static/js/some.js", "/foo", true, "CANARY JS", http.StatusOK),
		Entry("/app/static/js/some.js under /app",
			"/app", "/app/static/js/some.js", "/", true, "CANARY JS", http.StatusOK),
		Entry("/static/js/some.js outside /app",
			"/app", "/static/js/some.js", "/", false, "", 0),
		Entry("/static/foo/bar",
			"/", "/static/foo/bar", "/", false, "", 0),
		Entry("/static",
			"/", "/static", "/", false, "", 0),
		Entry("/",
			"/", "/", "/", false, "", 0),
	)

	DescribeTable("serves a static asset using varying fs.FS implementations",
		func(fsys fs.FS) {
			h := handler(WithAssets(fsys))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, request("/icon.png", nil))
			Expect(w.Result().StatusCode).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("image/png"))
		},
		Entry("from embedded fs", embStaticFs),
		Entry("from test dir fs", os.DirFS("./test/assets")),
	)

	It("renders pages", func() {
		h := handler(WithAssets(embStaticFs))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, request("/users/42", nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		doc := w.Document()
		Expect(doc.Find("#application .app #user").Text()).To(Equal("42"))
		Expect(doc.Find("#application > div").AttrOr(render.ChecksumAttr, "")).NotTo(BeEmpty())
		Expect(doc.Find(`script[src="app.js"]`).Length()).To(Equal(1))
	})

	It("renders static markup", func() {
		h := handler(WithStaticMarkup())
		w := httptest.NewRecorder()
		h.ServeHTTP(w, request("/", nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		doc := w.Document()
		Expect(doc.Find("title").Text()).To(Equal("Home"))
		Expect(doc.Find("[" + render.IDAttr + "]").Length()).To(BeZero())
	})

	DescribeTable("rewrites the base path of rendered pages",
		func(runtimePath, path, prefix string, expected string) {
			cfg.Runtime.Path = runtimePath
			h := handler()
			w := httptest.NewRecorder()
			h.ServeHTTP(w, request(path, http.Header{ForwardedPrefixHeader: []string{prefix}}))
			Expect(w.Code).To(Equal(http.StatusOK))
			base := w.Document().Find("base")
			Expect(base.Length()).To(Equal(1), "<base> element lost")
			Expect(base.First().AttrOr("href", "")).To(Equal(expected))
		},
		Entry("prefix /foo", "/", "/users/1", "/foo", "/foo/"),
		Entry("/", "/", "/", "/", "/"),
		Entry("runtime path /app", "/app", "/app/users/1", "/", "/app/"),
		Entry("prefix /foo and runtime path /app", "/app", "/app/users/1", "/foo", "/foo/app/"),
	)

	DescribeTable("redirects",
		func(runtimePath, path, prefix string, expected string) {
			cfg.Runtime.Path = runtimePath
			h := handler()
			w := httptest.NewRecorder()
			h.ServeHTTP(w, request(path, http.Header{ForwardedPrefixHeader: []string{prefix}}))
			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal(expected))
		},
		Entry("plain", "/", "/old/7?tab=a", "", "/users/7?tab=a"),
		Entry("under runtime path", "/app", "/app/old/7", "", "/app/users/7"),
		Entry("behind proxy", "/app", "/app/old/7", "/foo", "/foo/app/users/7"),
	)

	It("renders the error page for unknown paths", func() {
		h := handler()
		w := httptest.NewRecorder()
		h.ServeHTTP(w, request("/nowhere", nil))
		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		doc := w.Document()
		Expect(doc.Find("title").Text()).To(Equal(cfg.Runtime.Head.Title))
		Expect(doc.Find("#application").Children().Length()).To(BeZero())
	})

	It("renders with a fresh store per request", func() {
		var stores []store.Store
		h := handler(WithStore(func(*http.Request) (store.Store, error) {
			st := store.New(nil, nil)
			stores = append(stores, st)
			return st, nil
		}))
		for _, path := range []string{"/users/1", "/users/2"} {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, request(path, nil))
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(path))
		}
		Expect(stores).To(HaveLen(2))
		loc, ok := store.Location(stores[1])
		Expect(ok).To(BeTrue())
		Expect(loc).To(Equal("/users/2"))
	})

	It("doesn't leak store failures", func() {
		h := handler(WithStore(func(*http.Request) (store.Store, error) {
			return nil, errors.New("database foobar")
		}))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, request("/", nil))
		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).NotTo(ContainSubstring("foobar"))
	})

	It("supports application-specific rewriting/post-processing", func() {
		const canary = "<!-- SOMETHING DIFFERENT -->"
		h := handler(WithPageRewriter(func(r *http.Request, page string) string {
			return page + canary
		}))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, request("/", nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(HaveSuffix(canary))
	})

	It("answers HEAD requests without body", func() {
		h := handler()
		w := httptest.NewRecorder()
		r := request("/", nil)
		r.Method = http.MethodHead
		h.ServeHTTP(w, r)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Length")).NotTo(BeEmpty())
		Expect(w.Body.Len()).To(BeZero())
	})

})
