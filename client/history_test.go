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

package client

import (
	"bytes"
	"errors"

	"github.com/rs/zerolog"

	"github.com/olekenneth/roc-package-web-app-react/store"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("history", func() {

	DescribeTable("strips the base path from locations",
		func(basename, location, expected string) {
			h := NewHistory(newFakeEnv(location), basename)
			Expect(h.Location()).To(Equal(expected))
		},
		Entry("no base path", "", "/foo?x=1", "/foo?x=1"),
		Entry("base path itself", "/app", "/app", "/"),
		Entry("below base path", "/app", "/app/foo", "/foo"),
		Entry("base path with query", "/app", "/app?x=1", "/?x=1"),
		Entry("outside base path", "/app", "/application", "/application"),
		Entry("trailing slash", "/app/", "/app/foo", "/foo"),
	)

	It("creates hrefs under the base path", func() {
		h := NewHistory(newFakeEnv("/"), "/app")
		Expect(h.CreateHref("/foo")).To(Equal("/app/foo"))
		Expect(h.CreateHref("foo?x=1")).To(Equal("/app/foo?x=1"))
		Expect(NewHistory(newFakeEnv("/"), "").CreateHref("/foo")).To(Equal("/foo"))
	})

	It("notifies listeners", func() {
		env := newFakeEnv("/app")
		h := NewHistory(env, "/app")
		var seen []string
		unlisten := h.Listen(func(location string) { seen = append(seen, location) })
		h.Push("/a")
		h.Replace("/b")
		env.back("/app/a")
		Expect(seen).To(Equal([]string{"/a", "/b", "/a"}))
		Expect(env.pushed).To(Equal([]string{"/app/a"}))
		Expect(env.replaced).To(Equal([]string{"/app/b"}))

		unlisten()
		h.Push("/c")
		Expect(seen).To(HaveLen(3))

		h.Close()
		Expect(env.pop).To(BeEmpty())
	})

	It("notifies listeners in registration order", func() {
		h := NewHistory(newFakeEnv("/"), "")
		var order []int
		unlistens := []func(){}
		for i := 0; i < 8; i++ {
			i := i
			unlistens = append(unlistens, h.Listen(func(string) { order = append(order, i) }))
		}
		for n := 0; n < 20; n++ {
			order = nil
			h.Push("/x")
			Expect(order).To(Equal([]int{0, 1, 2, 3, 4, 5, 6, 7}))
		}
		unlistens[3]()
		order = nil
		h.Push("/y")
		Expect(order).To(Equal([]int{0, 1, 2, 4, 5, 6, 7}))
	})

	It("updates the store before later listeners see a location", func() {
		h := NewHistory(newFakeEnv("/"), "")
		st := store.New(nil, nil)
		defer h.SyncWithStore(st, true, zerolog.Nop())()
		var stale int
		h.Listen(func(location string) {
			if stored, _ := store.Location(st); stored != location {
				stale++
			}
		})
		for n := 0; n < 50; n++ {
			h.Push("/a")
			h.Push("/b")
		}
		Expect(stale).To(BeZero())
	})

	It("logs rejected locations and dispatches them again", func() {
		var buf bytes.Buffer
		reject := true
		st := store.New(func(state store.State, action store.Action) (store.State, error) {
			if reject {
				return nil, errors.New("not now")
			}
			return state, nil
		}, nil)
		env := newFakeEnv("/a")
		h := NewHistory(env, "")
		defer h.SyncWithStore(st, true, zerolog.New(&buf))()
		Expect(buf.String()).To(ContainSubstring("not now"))
		Expect(st.Version()).To(BeZero())

		reject = false
		env.back("/a")
		loc, ok := store.Location(st)
		Expect(ok).To(BeTrue())
		Expect(loc).To(Equal("/a"))
	})

	It("syncs with a store", func() {
		env := newFakeEnv("/app/a")
		h := NewHistory(env, "/app")
		st := store.New(nil, nil)
		unsync := h.SyncWithStore(st, true, zerolog.Nop())

		loc, ok := store.Location(st)
		Expect(ok).To(BeTrue())
		Expect(loc).To(Equal("/app/a"))

		h.Push("/b")
		loc, _ = store.Location(st)
		Expect(loc).To(Equal("/app/b"))
		version := st.Version()

		Expect(st.Dispatch(store.LocationChange("/app/c"))).To(Succeed())
		Expect(env.location).To(Equal("/app/c"))
		Expect(st.Version()).To(Equal(version + 1))

		unsync()
		h.Push("/d")
		loc, _ = store.Location(st)
		Expect(loc).To(Equal("/app/c"))
	})

})
