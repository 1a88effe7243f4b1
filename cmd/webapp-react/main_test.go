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

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/olekenneth/roc-package-web-app-react/config"
	"github.com/olekenneth/roc-package-web-app-react/test/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

var _ = Describe("webapp-react command", func() {

	It("prints the effective configuration", func() {
		dir := GinkgoT().TempDir()
		file := filepath.Join(dir, "roc.yaml")
		Expect(os.WriteFile(file, []byte("runtime:\n  path: /app\n"), 0o644)).To(Succeed())

		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"config", "--config", file, "--format", "json", "--log-level", "error"})
		DeferCleanup(func() {
			rootCmd.SetOut(nil)
			rootCmd.SetArgs(nil)
			logLevel = ""
		})
		Expect(rootCmd.Execute()).To(Succeed())

		var printed config.Config
		Expect(json.Unmarshal(out.Bytes(), &printed)).To(Succeed())
		Expect(printed.Runtime.Path).To(Equal("/app"))
		Expect(printed.Runtime.MountNode).To(Equal("application"))
	})

	DescribeTable("picks the server log level",
		func(flag, configured string, expected zerolog.Level) {
			c := config.Default()
			c.Runtime.Debug.Server = configured
			Expect(serverLogLevel(flag, c)).To(Equal(expected))
		},
		Entry("from the configuration", "", "debug", zerolog.DebugLevel),
		Entry("from the command line", "warn", "debug", zerolog.WarnLevel),
		Entry("defaulting to info", "", "", zerolog.InfoLevel),
	)

	It("rejects invalid log levels", func() {
		c := config.Default()
		Expect(serverLogLevel("chatty", c)).Error().To(MatchError(ContainSubstring(`invalid log level "chatty"`)))
		c.Runtime.Debug.Server = "loud"
		Expect(serverLogLevel("", c)).Error().To(MatchError(ContainSubstring(`invalid log level "loud"`)))

		rootCmd.SetArgs([]string{"config", "--log-level", "chatty"})
		DeferCleanup(func() {
			rootCmd.SetArgs(nil)
			logLevel = ""
		})
		Expect(rootCmd.Execute()).To(MatchError(ContainSubstring("invalid log level")))
	})

	It("serves the demo application", func() {
		dir := GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, "stats.json"),
			[]byte(`{"script":["app.js"],"css":["app.css"]}`), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dir, "app.js"), []byte("// app\n"), 0o644)).To(Succeed())

		c := config.Default()
		c.Build.Output = dir
		logger = zerolog.Nop()
		router, cleanup, err := newRouter(c, zerolog.Nop())
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(cleanup)

		get := func(path string) *httptest.WrappedResponseRecorder {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, Successful(http.NewRequest(http.MethodGet, path, nil)))
			return w
		}

		w := get("/users/1")
		Expect(w.Code).To(Equal(http.StatusOK))
		doc := w.Document()
		Expect(doc.Find("title").Text()).To(Equal("Ada Lovelace"))
		Expect(doc.Find(`script[src="app.js"]`).Length()).To(Equal(1))
		Expect(doc.Find(`link[href="app.css"]`).Length()).To(Equal(1))

		w = get("/app.js")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(Equal("// app\n"))

		Expect(get("/nowhere").Code).To(Equal(http.StatusNotFound))

		w = get("/profiles/2")
		Expect(w.Code).To(Equal(http.StatusFound))
		Expect(w.Header().Get("Location")).To(Equal("/users/2"))

		w = get("/metrics")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`webapp_render_total{outcome="rendered"}`))
	})

})
