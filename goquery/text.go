// Package goquery implements the listing and detail extractors on top of
// goquery CSS selection and the golang.org/x/net/html tree.
//
// Every selector list in this package is ordered configuration data.
// Adapting to upstream markup changes means editing the lists, not the
// extraction control flow.
package goquery

import (
	"strings"

	"golang.org/x/net/html"
)

// normalizeSpace trims s and collapses internal whitespace runs to one space.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// textBlocks returns the trimmed, non-empty text nodes under n in document
// order. Script-like elements never contribute text.
func textBlocks(n *html.Node) []string {
	var blocks []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				blocks = append(blocks, t)
			}
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
		case html.CommentNode, html.DoctypeNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return blocks
}

// renderText flattens n to plain text with one block per line.
func renderText(n *html.Node) string {
	return strings.Join(textBlocks(n), "\n")
}
