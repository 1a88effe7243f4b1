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
	"strings"

	"github.com/rs/zerolog"

	"github.com/olekenneth/roc-package-web-app-react/ui"
)

// DefaultA11yFilter lists the components whose subtrees don't get audited:
// the store dev tools panel internals and our own developer overlays.
var DefaultA11yFilter = []string{
	"LogMonitorButton",
	"LogMonitorAction",
	"JSONValueNode",
	"JSONNestedNode",
	"JSONArrow",
	DevToolsComponent,
	YellowBoxComponent,
}

// Violation is an accessibility issue found in a tree.
type Violation struct {
	Rule      string
	Tag       string
	Component string // innermost named component containing the element.
}

// Auditor audits trees for accessibility issues before mounting them.
type Auditor struct {
	next   Mounter
	filter map[string]struct{}
	logger zerolog.Logger
	report func(Violation)
}

var _ Mounter = (*Auditor)(nil)

// NewAuditor returns a Mounter that audits trees before passing them on to
// next, skipping the subtrees rendered by the specified components. Found
// violations get logged as warnings.
func NewAuditor(next Mounter, logger zerolog.Logger, filter ...string) *Auditor {
	a := &Auditor{
		next:   next,
		filter: map[string]struct{}{},
		logger: logger,
	}
	for _, name := range filter {
		a.filter[name] = struct{}{}
	}
	return a
}

// Mount audits the tree and then mounts it.
func (a *Auditor) Mount(tree *ui.Node, into Element) error {
	for _, v := range a.Audit(tree) {
		a.logger.Warn().
			Str("rule", v.Rule).
			Str("tag", v.Tag).
			Str("component", v.Component).
			Msg("accessibility issue")
		if a.report != nil {
			a.report(v)
		}
	}
	return a.next.Mount(tree, into)
}

// Audit returns the accessibility issues in the tree.
func (a *Auditor) Audit(tree *ui.Node) []Violation {
	var violations []Violation
	var audit func(n *ui.Node, component string)
	audit = func(n *ui.Node, component string) {
		if n == nil {
			return
		}
		if n.Component != "" {
			if _, skip := a.filter[n.Component]; skip {
				return
			}
			component = n.Component
		}
		if n.Kind == ui.ElementNode {
			for _, rule := range rules {
				if rule.violated(n) {
					violations = append(violations, Violation{
						Rule:      rule.name,
						Tag:       n.Tag,
						Component: component,
					})
				}
			}
		}
		for _, child := range n.Children {
			audit(child, component)
		}
	}
	audit(tree, "")
	return violations
}

type rule struct {
	name     string
	violated func(n *ui.Node) bool
}

var rules = []rule{
	{"img-alt", func(n *ui.Node) bool {
		if n.Tag != "img" {
			return false
		}
		_, ok := n.Attr("alt")
		return !ok
	}},
	{"anchor-href", func(n *ui.Node) bool {
		if n.Tag != "a" {
			return false
		}
		href, _ := n.Attr("href")
		return href == "" || href == "#"
	}},
	{"accessible-name", func(n *ui.Node) bool {
		if n.Tag != "button" && n.Tag != "a" {
			return false
		}
		if label, _ := n.Attr("aria-label"); label != "" {
			return false
		}
		return strings.TrimSpace(textContent(n)) == ""
	}},
	{"tabindex", func(n *ui.Node) bool {
		idx, ok := n.Attr("tabindex")
		return ok && idx != "0" && !strings.HasPrefix(idx, "-")
	}},
	{"role-redundant", func(n *ui.Node) bool {
		role, _ := n.Attr("role")
		return role != "" && role == implicitRoles[n.Tag]
	}},
}

var implicitRoles = map[string]string{
	"button": "button",
	"nav":    "navigation",
	"main":   "main",
	"ul":     "list",
	"li":     "listitem",
}

func textContent(n *ui.Node) string {
	var sb strings.Builder
	n.Walk(func(n *ui.Node) bool {
		if n.Kind == ui.TextNode {
			sb.WriteString(n.Text)
		}
		if alt, ok := n.Attr("alt"); ok && n.Tag == "img" {
			sb.WriteString(alt)
		}
		return true
	})
	return sb.String()
}
