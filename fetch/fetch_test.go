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

package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/olekenneth/roc-package-web-app-react/render"
	"github.com/olekenneth/roc-package-web-app-react/route"
	"github.com/olekenneth/roc-package-web-app-react/store"
	"github.com/olekenneth/roc-package-web-app-react/ui"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fetching func(ctx context.Context, locals Locals) error

func (f fetching) Render(*render.Context, *ui.Node) *ui.Node { return nil }

func (f fetching) Fetch(ctx context.Context, locals Locals) error { return f(ctx, locals) }

var plain = route.ComponentFunc(func(*render.Context, *ui.Node) *ui.Node { return nil })

var _ = Describe("prefetching", func() {

	ctx := context.Background()

	It("provides locals with store accessors", func() {
		loc := &url.URL{Path: "/x"}
		locals := NewLocals(loc, map[string]string{"id": "1"}, nil)
		Expect(locals.Location).To(BeIdenticalTo(loc))
		Expect(locals.Dispatch).To(BeNil())
		Expect(locals.GetState).To(BeNil())

		st := store.New(nil, nil)
		locals = NewLocals(loc, nil, st)
		Expect(locals.Dispatch(store.LocationChange("/y"))).To(Succeed())
		Expect(locals.GetState()).To(HaveKey(store.RoutingKey))
	})

	It("succeeds without fetchers", func() {
		Expect(Prefetch(ctx, []route.Component{plain}, Locals{}, true)).To(Succeed())
	})

	for _, parallel := range []bool{true, false} {
		parallel := parallel

		Context(fmt.Sprintf("parallel=%v", parallel), func() {

			It("waits for all fetchers to settle", func() {
				const n = 4
				var started, done atomic.Int32
				release := make(chan struct{})
				comps := []route.Component{plain}
				for i := 0; i < n; i++ {
					comps = append(comps, fetching(func(context.Context, Locals) error {
						started.Inc()
						<-release
						done.Inc()
						return nil
					}))
				}
				result := make(chan error, 1)
				go func() { result <- Prefetch(ctx, comps, Locals{}, parallel) }()
				if parallel {
					Eventually(started.Load).Should(Equal(int32(n)))
				}
				Consistently(result, 50*time.Millisecond).ShouldNot(Receive())
				close(release)
				Eventually(result).Should(Receive(BeNil()))
				Expect(done.Load()).To(Equal(int32(n)))
			})

			It("fails when a fetcher fails", func() {
				boom := errors.New("boom")
				comps := []route.Component{
					fetching(func(context.Context, Locals) error { return nil }),
					fetching(func(context.Context, Locals) error { return boom }),
				}
				Expect(Prefetch(ctx, comps, Locals{}, parallel)).To(MatchError(boom))
			})

			It("fails when a fetcher panics", func() {
				comps := []route.Component{
					fetching(func(context.Context, Locals) error { panic("oops") }),
				}
				Expect(Prefetch(ctx, comps, Locals{}, parallel)).To(MatchError(ErrPanicked))
			})

			It("fails when the deadline passes", func() {
				tctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
				defer cancel()
				comps := []route.Component{
					fetching(func(context.Context, Locals) error {
						time.Sleep(30 * time.Millisecond) // ignores its context.
						return nil
					}),
				}
				Expect(Prefetch(tctx, comps, Locals{}, parallel)).To(MatchError(context.DeadlineExceeded))
			})

		})
	}

	It("runs sequentially in order", func() {
		var mu sync.Mutex
		var order []int
		comps := []route.Component{}
		for i := 0; i < 3; i++ {
			i := i
			comps = append(comps, fetching(func(context.Context, Locals) error {
				mu.Lock()
				defer mu.Unlock()
				order = append(order, i)
				return nil
			}))
		}
		Expect(Prefetch(ctx, comps, Locals{}, false)).To(Succeed())
		Expect(order).To(Equal([]int{0, 1, 2}))
	})

	It("passes locals to fetchers", func() {
		locals := Locals{Params: map[string]string{"id": "42"}}
		var seen string
		comps := []route.Component{fetching(func(_ context.Context, l Locals) error {
			seen = l.Params["id"]
			return nil
		})}
		Expect(Prefetch(ctx, comps, locals, true)).To(Succeed())
		Expect(seen).To(Equal("42"))
	})

})
