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

	"github.com/rs/zerolog"

	"github.com/olekenneth/roc-package-web-app-react/store"
	"github.com/olekenneth/roc-package-web-app-react/ui"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("accessibility audits", func() {

	rulesOf := func(vs []Violation) []string {
		var names []string
		for _, v := range vs {
			names = append(names, v.Rule)
		}
		return names
	}

	DescribeTable("finds violations",
		func(tree *ui.Node, expected []string) {
			a := NewAuditor(&fakeMounter{}, zerolog.Nop())
			Expect(rulesOf(a.Audit(tree))).To(Equal(expected))
		},
		Entry("image without alt", ui.El("img", ui.A("src", "x.png")), []string{"img-alt"}),
		Entry("image with alt", ui.El("img", ui.A("src", "x.png"), ui.A("alt", "")), nil),
		Entry("anchor without href", ui.El("a", "click"), []string{"anchor-href"}),
		Entry("empty button", ui.El("button"), []string{"accessible-name"}),
		Entry("labelled button", ui.El("button", ui.A("aria-label", "close")), nil),
		Entry("button with image", ui.El("button", ui.El("img", ui.A("alt", "close"))), nil),
		Entry("positive tabindex", ui.El("div", ui.A("tabindex", "2")), []string{"tabindex"}),
		Entry("negative tabindex", ui.El("div", ui.A("tabindex", "-1")), nil),
		Entry("redundant role", ui.El("nav", ui.A("role", "navigation")), []string{"role-redundant"}),
		Entry("nested", ui.El("div", ui.El("p", ui.El("img"))), []string{"img-alt"}),
	)

	It("skips filtered components", func() {
		tree := ui.Fragment(
			ui.El("div", ui.El("img")).Named("JSONArrow"),
			ui.El("div", ui.El("img")).Named("Gallery"),
		)
		vs := NewAuditor(&fakeMounter{}, zerolog.Nop(), DefaultA11yFilter...).Audit(tree)
		Expect(vs).To(Equal([]Violation{{Rule: "img-alt", Tag: "img", Component: "Gallery"}}))
	})

	It("doesn't complain about its own overlays", func() {
		tree := ui.Compose(DevTools(store.New(nil, store.State{"a": 1})), YellowBox([]string{"Warning:"}))(nil)
		Expect(NewAuditor(&fakeMounter{}, zerolog.Nop()).Audit(tree)).To(BeEmpty())
		Expect(NewAuditor(&fakeMounter{}, zerolog.Nop(), DefaultA11yFilter...).Audit(tree)).To(BeEmpty())
	})

	It("logs violations and mounts anyway", func() {
		var buf bytes.Buffer
		m := &fakeMounter{}
		a := NewAuditor(m, zerolog.New(&buf))
		Expect(a.Mount(ui.El("img").Named("Avatar"), "#app")).To(Succeed())
		Expect(m.mounts).To(HaveLen(1))
		Expect(buf.String()).To(And(
			ContainSubstring(`"rule":"img-alt"`),
			ContainSubstring(`"component":"Avatar"`)))
	})

})
