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

package render

import (
	"hash/adler32"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/olekenneth/roc-package-web-app-react/ui"
)

// Attributes added by ToString.
const (
	RootAttr     = "data-reactroot"
	IDAttr       = "data-reactid"
	ChecksumAttr = "data-react-checksum"
)

// checksumRe matches the checksum attribute inside rendered markup.
var checksumRe = regexp.MustCompile(` ` + ChecksumAttr + `="(\d+)"`)

// ToString renders the tree into markup suitable for being taken over by a
// client. A tree not consisting of exactly one root element gets wrapped into
// a div element. A nil tree renders into nothing.
func ToString(n *ui.Node) (string, error) {
	if n == nil {
		return "", nil
	}
	nodes := convert(n)
	var root *html.Node
	if len(nodes) == 1 && nodes[0].Type == html.ElementNode {
		root = nodes[0]
	} else {
		root = &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
		for _, child := range nodes {
			root.AppendChild(child)
		}
	}
	id := 0
	var number func(n *html.Node)
	number = func(n *html.Node) {
		if n.Type == html.ElementNode {
			id++
			n.Attr = append(n.Attr, html.Attribute{Key: IDAttr, Val: strconv.Itoa(id)})
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			number(child)
		}
	}
	root.Attr = append(root.Attr, html.Attribute{Key: RootAttr})
	number(root)

	markup, err := renderHTML(root)
	if err != nil {
		return "", err
	}
	checksum := adler32.Checksum([]byte(markup))
	root.Attr = append(root.Attr, html.Attribute{
		Key: ChecksumAttr,
		Val: strconv.FormatUint(uint64(checksum), 10),
	})
	return renderHTML(root)
}

// ToStaticMarkup renders the tree into plain markup.
func ToStaticMarkup(n *ui.Node) (string, error) {
	if n == nil {
		return "", nil
	}
	var sb strings.Builder
	for _, node := range convert(n) {
		if err := html.Render(&sb, node); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

// Checksum returns the checksum carried by the markup, if any.
func Checksum(markup string) (string, bool) {
	m := checksumRe.FindStringSubmatch(markup)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ValidChecksum reports whether the markup carries a checksum attribute that
// matches the markup without it.
func ValidChecksum(markup string) bool {
	m := checksumRe.FindStringSubmatchIndex(markup)
	if m == nil {
		return false
	}
	expected, err := strconv.ParseUint(markup[m[2]:m[3]], 10, 32)
	if err != nil {
		return false
	}
	stripped := markup[:m[0]] + markup[m[1]:]
	return adler32.Checksum([]byte(stripped)) == uint32(expected)
}

func renderHTML(n *html.Node) (string, error) {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// convert turns a component (sub) tree into detached HTML nodes; fragments
// dissolve into their children.
func convert(n *ui.Node) []*html.Node {
	switch n.Kind {
	case ui.TextNode:
		return []*html.Node{{Type: html.TextNode, Data: n.Text}}
	case ui.FragmentNode:
		var nodes []*html.Node
		for _, child := range n.Children {
			nodes = append(nodes, convert(child)...)
		}
		return nodes
	}
	el := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(n.Tag)),
		Data:     n.Tag,
	}
	for _, a := range n.Attrs {
		el.Attr = append(el.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	for _, child := range n.Children {
		for _, c := range convert(child) {
			el.AppendChild(c)
		}
	}
	return []*html.Node{el}
}
