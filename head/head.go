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

package head

import (
	"html/template"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/olekenneth/roc-package-web-app-react/ui"
)

// metaKeys lists the attributes identifying a meta tag, in order of
// precedence.
var metaKeys = []string{"name", "property", "http-equiv", "charset", "itemprop"}

// Tag is a single head element described by its attributes.
type Tag []ui.Attr

// Head is a snapshot of collected head metadata.
type Head struct {
	Title     string
	HTMLAttrs []ui.Attr
	Meta      []Tag
	Link      []Tag
	Script    []Tag
}

// Collector collects head metadata during a render.
type Collector struct {
	mu   sync.Mutex
	head Head
}

// NewCollector returns a new, empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// SetTitle sets the document title; the last call wins.
func (c *Collector) SetTitle(title string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.head.Title = title
}

// SetHTMLAttr sets an attribute of the document's html element, such as
// "lang".
func (c *Collector) SetHTMLAttr(key, val string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for idx, a := range c.head.HTMLAttrs {
		if a.Key == key {
			c.head.HTMLAttrs[idx].Val = val
			return
		}
	}
	c.head.HTMLAttrs = append(c.head.HTMLAttrs, ui.A(key, val))
}

// AddMeta adds a meta tag, replacing an earlier meta tag with the same key.
func (c *Collector) AddMeta(attrs ...ui.Attr) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tag := Tag(attrs)
	if key, val, ok := tag.metaKey(); ok {
		for idx, other := range c.head.Meta {
			if okey, oval, ok := other.metaKey(); ok && okey == key && oval == val {
				c.head.Meta[idx] = tag
				return
			}
		}
	}
	c.head.Meta = append(c.head.Meta, tag)
}

// AddLink adds a link tag.
func (c *Collector) AddLink(attrs ...ui.Attr) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.head.Link = append(c.head.Link, Tag(attrs))
}

// AddScript adds a script tag.
func (c *Collector) AddScript(attrs ...ui.Attr) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.head.Script = append(c.head.Script, Tag(attrs))
}

// Rewind returns the collected head metadata and resets the collector.
func (c *Collector) Rewind() *Head {
	c.mu.Lock()
	defer c.mu.Unlock()
	h := c.head
	c.head = Head{}
	return &h
}

func (t Tag) metaKey() (key, val string, ok bool) {
	for _, k := range metaKeys {
		for _, a := range t {
			if a.Key == k {
				return k, a.Val, true
			}
		}
	}
	return "", "", false
}

// TitleTag returns the title element, or nothing if no title was set.
func (h *Head) TitleTag() template.HTML {
	if h == nil || h.Title == "" {
		return ""
	}
	n := &html.Node{Type: html.ElementNode, DataAtom: atom.Title, Data: "title"}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: h.Title})
	return template.HTML(renderNodes(n))
}

// MetaTags returns the meta elements.
func (h *Head) MetaTags() template.HTML {
	if h == nil {
		return ""
	}
	return renderTags("meta", h.Meta)
}

// LinkTags returns the link elements.
func (h *Head) LinkTags() template.HTML {
	if h == nil {
		return ""
	}
	return renderTags("link", h.Link)
}

// ScriptTags returns the script elements.
func (h *Head) ScriptTags() template.HTML {
	if h == nil {
		return ""
	}
	return renderTags("script", h.Script)
}

// HTMLAttributes returns the attributes of the html element, ready for
// placing inside the opening tag.
func (h *Head) HTMLAttributes() template.HTMLAttr {
	if h == nil || len(h.HTMLAttrs) == 0 {
		return ""
	}
	var sb strings.Builder
	for idx, a := range h.HTMLAttrs {
		if idx > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(a.Key)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(a.Val))
		sb.WriteByte('"')
	}
	return template.HTMLAttr(sb.String())
}

// String returns all head elements.
func (h *Head) String() string {
	return string(h.TitleTag() + h.MetaTags() + h.LinkTags() + h.ScriptTags())
}

func renderTags(tagname string, tags []Tag) template.HTML {
	nodes := make([]*html.Node, 0, len(tags))
	for _, tag := range tags {
		n := &html.Node{Type: html.ElementNode, DataAtom: atom.Lookup([]byte(tagname)), Data: tagname}
		for _, a := range tag {
			n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Val})
		}
		nodes = append(nodes, n)
	}
	return template.HTML(renderNodes(nodes...))
}

func renderNodes(nodes ...*html.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		// Rendering into a strings.Builder never fails.
		_ = html.Render(&sb, n)
	}
	return sb.String()
}
