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

package ui

import "fmt"

// Kind of a Node.
type Kind int

const (
	ElementNode Kind = iota
	TextNode
	FragmentNode
)

// Attr is an element attribute.
type Attr struct {
	Key string
	Val string
}

// A returns an attribute.
func A(key, val string) Attr { return Attr{Key: key, Val: val} }

// Node is a node in a component tree.
type Node struct {
	Kind      Kind
	Tag       string // element tag, only for ElementNode.
	Component string // name of the component that rendered this element, if any.
	Attrs     []Attr
	Children  []*Node
	Text      string // only for TextNode.
}

// El returns a new element with the specified tag. The content may consist of
// Attr, []Attr, *Node, []*Node, and string values, where strings become text
// nodes. Nil nodes are skipped, so optional children can be passed as is.
func El(tag string, content ...any) *Node {
	n := &Node{Kind: ElementNode, Tag: tag}
	for _, c := range content {
		switch c := c.(type) {
		case Attr:
			n.Attrs = append(n.Attrs, c)
		case []Attr:
			n.Attrs = append(n.Attrs, c...)
		case *Node:
			if c != nil {
				n.Children = append(n.Children, c)
			}
		case []*Node:
			for _, child := range c {
				if child != nil {
					n.Children = append(n.Children, child)
				}
			}
		case string:
			n.Children = append(n.Children, Text(c))
		case nil:
		default:
			panic(fmt.Sprintf("ui.El: unsupported content type %T", c))
		}
	}
	return n
}

// Text returns a new text node.
func Text(s string) *Node { return &Node{Kind: TextNode, Text: s} }

// Fragment groups children without introducing an element of its own.
func Fragment(children ...*Node) *Node {
	n := &Node{Kind: FragmentNode}
	for _, child := range children {
		if child != nil {
			n.Children = append(n.Children, child)
		}
	}
	return n
}

// Named records the name of the component rendering this node and returns
// the node itself.
func (n *Node) Named(component string) *Node {
	n.Component = component
	return n
}

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Walk visits n and its descendants depth-first, skipping the children of a
// node for which fn returns false.
func (n *Node) Walk(fn func(n *Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Wrapper wraps a (possibly nil) tree into another tree.
type Wrapper func(n *Node) *Node

// Compose returns a wrapper applying the specified wrappers right to left.
// Composing no wrappers gives the identity.
func Compose(wrappers ...Wrapper) Wrapper {
	if len(wrappers) == 0 {
		return func(n *Node) *Node { return n }
	}
	return func(n *Node) *Node {
		for idx := len(wrappers) - 1; idx >= 0; idx-- {
			n = wrappers[idx](n)
		}
		return n
	}
}
