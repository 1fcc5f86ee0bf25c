package goquery

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// AllowedTags is the set of structural tags kept by Sanitize.
var AllowedTags = map[string]bool{
	"p": true, "div": true, "br": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"strong": true, "b": true, "em": true, "i": true, "u": true,
	"ul": true, "ol": true, "li": true,
	"table": true, "caption": true, "colgroup": true, "col": true,
	"thead": true, "tbody": true, "tfoot": true, "tr": true, "td": true, "th": true,
}

// maxSanitizePasses bounds the parse and sanitize rounds SanitizeHTML runs
// while waiting for its output to stop changing.
const maxSanitizePasses = 4

// Sanitize returns a sanitized copy of n. The input tree is not modified.
//
// Elements outside AllowedTags are unwrapped: the element disappears and its
// sanitized children take its place. Kept elements lose every attribute
// except class. Comments and doctypes are dropped. Because unwrapping can
// replace one node by several, the result is a forest.
func Sanitize(n *html.Node) []*html.Node {
	switch n.Type {
	case html.TextNode:
		return []*html.Node{{Type: html.TextNode, Data: n.Data}}
	case html.DocumentNode:
		return sanitizeChildren(n)
	case html.ElementNode:
		children := sanitizeChildren(n)
		if !AllowedTags[n.Data] {
			return children
		}
		el := &html.Node{
			Type:     html.ElementNode,
			Data:     n.Data,
			DataAtom: n.DataAtom,
		}
		for _, a := range n.Attr {
			if a.Namespace == "" && a.Key == "class" {
				el.Attr = append(el.Attr, html.Attribute{Key: "class", Val: a.Val})
			}
		}
		for _, c := range children {
			el.AppendChild(c)
		}
		return []*html.Node{el}
	default:
		return nil
	}
}

func sanitizeChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, Sanitize(c)...)
	}
	return out
}

// SanitizeHTML parses s as body content, sanitizes it and renders the result.
// Unwrapping can leave markup the HTML parser rebuilds differently, such as
// bare text inside a table, so the output is parsed and sanitized again until
// it is stable. Sanitizing already sanitized output returns it unchanged.
func SanitizeHTML(s string) (string, error) {
	out, err := sanitizeFragment(s)
	if err != nil {
		return "", err
	}
	return stabilize(out)
}

// stabilize re-sanitizes rendered output until a pass leaves it unchanged.
func stabilize(s string) (string, error) {
	for range maxSanitizePasses {
		next, err := sanitizeFragment(s)
		if err != nil {
			return "", err
		}
		if next == s {
			break
		}
		s = next
	}
	return s, nil
}

func sanitizeFragment(s string) (string, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), body)
	if err != nil {
		return "", err
	}

	var out []*html.Node
	for _, n := range nodes {
		out = append(out, Sanitize(n)...)
	}
	return renderNodes(out)
}

func renderNodes(nodes []*html.Node) (string, error) {
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
