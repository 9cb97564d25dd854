package uitext

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is the capability surface the analyzer needs from a DOM node.
// It decouples classification from any particular DOM implementation: the
// stock adapter wraps golang.org/x/net/html nodes, and a live-browser
// caller can supply its own implementation with real bounding rects.
type Element interface {
	// Tag returns the lower-case tag name, or "" for non-element nodes.
	Tag() string
	// Attr returns the attribute value, or "" when absent.
	Attr(name string) string
	// HasAttr reports whether the attribute is present, even if empty.
	HasAttr(name string) bool
	// Text returns the trimmed, whitespace-normalized text content of the
	// subtree, excluding script/style.
	Text() string
	// ClassName returns the raw class attribute value.
	ClassName() string
	// Parent returns the parent element, or nil at the root.
	Parent() Element
	// Children returns the element children in document order.
	Children() []Element
	// Rect returns the bounding rectangle snapshot. Implementations without
	// layout information return the zero Rect.
	Rect() Rect
	// InlineHidden reports whether the element's own inline style hides it
	// (display:none or visibility:hidden). Ancestor and computed styles are
	// deliberately not consulted.
	InlineHidden() bool
}

var inlineHiddenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)display\s*:\s*none`),
	regexp.MustCompile(`(?i)visibility\s*:\s*hidden`),
}

// Node adapts a parsed *html.Node to the Element interface.
type Node struct {
	n *html.Node
}

// Wrap returns a Node view over an html.Node. Wrapping nil returns nil.
func Wrap(n *html.Node) *Node {
	if n == nil {
		return nil
	}
	return &Node{n: n}
}

// Unwrap returns the underlying html.Node.
func (e *Node) Unwrap() *html.Node { return e.n }

func (e *Node) Tag() string {
	if e.n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(e.n.Data)
}

func (e *Node) Attr(name string) string {
	for _, a := range e.n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

func (e *Node) HasAttr(name string) bool {
	for _, a := range e.n.Attr {
		if strings.EqualFold(a.Key, name) {
			return true
		}
	}
	return false
}

func (e *Node) ClassName() string { return e.Attr("class") }

// Text collects the visible text of the subtree, space-joined and trimmed.
func (e *Node) Text() string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
		}
		if n.Type == html.TextNode {
			t := strings.TrimSpace(n.Data)
			if t != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.n)
	return sb.String()
}

func (e *Node) Parent() Element {
	p := e.n.Parent
	for p != nil && p.Type != html.ElementNode {
		p = p.Parent
	}
	if p == nil {
		return nil
	}
	return &Node{n: p}
}

func (e *Node) Children() []Element {
	var out []Element
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, &Node{n: c})
		}
	}
	return out
}

// Rect is a stub for parsed documents: there is no layout engine, so the
// snapshot is all zeros.
func (e *Node) Rect() Rect { return Rect{} }

func (e *Node) InlineHidden() bool {
	style := e.Attr("style")
	if style == "" {
		return false
	}
	for _, pat := range inlineHiddenPatterns {
		if pat.MatchString(style) {
			return true
		}
	}
	return false
}
