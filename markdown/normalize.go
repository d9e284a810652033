// Package markdown converts extracted post content to Markdown text and
// renders the final export document.
package markdown

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// DefaultOrigin is the host site origin used to absolutize relative links
// when the caller does not supply one.
const DefaultOrigin = "https://www.linkedin.com"

var multiNewline = regexp.MustCompile(`\n\s*\n\s*\n`)

// Normalize converts a content selection to Markdown-safe text. The walk is
// purely structural: depth-first in document order, comments skipped, links
// emitted as [text](url), line breaks and paragraphs mapped to newlines.
// Output is deterministic for a given input tree.
func Normalize(sel *goquery.Selection, origin string) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	if origin == "" {
		origin = DefaultOrigin
	}

	var b strings.Builder
	for _, n := range sel.Nodes {
		walkChildren(&b, n, origin)
	}

	return finalize(b.String())
}

// NormalizeNode is Normalize over a bare node tree, for callers that hold an
// x/net/html tree without a goquery wrapper.
func NormalizeNode(n *html.Node, origin string) string {
	if n == nil {
		return ""
	}
	if origin == "" {
		origin = DefaultOrigin
	}

	var b strings.Builder
	walkChildren(&b, n, origin)
	return finalize(b.String())
}

func finalize(text string) string {
	// Collapse runs of 3+ newlines to exactly 2. Repeat until stable so long
	// runs fully collapse.
	for {
		collapsed := multiNewline.ReplaceAllString(text, "\n\n")
		if collapsed == text {
			break
		}
		text = collapsed
	}
	return strings.TrimSpace(text)
}

// walkChildren emits the content of n's children in document order. Comment
// nodes never render, so skipping them here is equivalent to stripping them
// up front.
func walkChildren(b *strings.Builder, n *html.Node, origin string) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
		case html.ElementNode:
			walkElement(b, c, origin)
		}
	}
}

func walkElement(b *strings.Builder, n *html.Node, origin string) {
	switch n.Data {
	case "a":
		b.WriteString(renderLink(n, origin))
	case "br":
		b.WriteString("\n")
	case "p":
		walkChildren(b, n, origin)
		b.WriteString("\n\n")
	case "span":
		walkSpan(b, n, origin)
	default:
		// div and anything unrecognized are treated as transparent
		// containers.
		walkChildren(b, n, origin)
	}
}

// renderLink resolves the visible text of an anchor. The host page nests
// link text unpredictably: sometimes in an inner anchor, sometimes in a
// doubly-wrapped span, sometimes directly.
func renderLink(n *html.Node, origin string) string {
	href := attr(n, "href")

	var linkText string
	if inner := findFirst(n, func(d *html.Node) bool { return d.Data == "a" }); inner != nil {
		linkText = strings.TrimSpace(textContent(inner))
	} else if nested := findNestedSpan(n); nested != nil {
		linkText = strings.TrimSpace(textContent(nested))
	} else {
		linkText = strings.TrimSpace(textContent(n))
	}

	if href != "" && linkText != "" {
		return "[" + linkText + "](" + AbsoluteURL(href, origin) + ")"
	}
	return linkText
}

func walkSpan(b *strings.Builder, n *html.Node, origin string) {
	switch {
	case hasClass(n, "white-space-pre"):
		// Preserve-whitespace marker: emit raw text, internal spacing
		// included.
		b.WriteString(textContent(n))
	case attr(n, "dir") == "ltr":
		// Main content span; structural, not a leaf.
		walkChildren(b, n, origin)
	default:
		text := strings.TrimSpace(textContent(n))
		if text != "" && findFirst(n, func(d *html.Node) bool { return d.Data == "a" }) == nil {
			b.WriteString(text)
		} else {
			walkChildren(b, n, origin)
		}
	}
}

// AbsoluteURL resolves href against the host origin. Anything already
// carrying a scheme passes through untouched.
func AbsoluteURL(href, origin string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	return origin + href
}

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// textContent concatenates all descendant text of n.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		for d := c.FirstChild; d != nil; d = d.NextSibling {
			walk(d)
		}
	}
	walk(n)
	return b.String()
}

// findFirst returns the first strict descendant element matching pred, in
// depth-first document order.
func findFirst(n *html.Node, pred func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			if pred(c) {
				return c
			}
			if found := findFirst(c, pred); found != nil {
				return found
			}
		}
	}
	return nil
}

// findNestedSpan finds the first span nested inside another span below n, in
// document order. The host page doubly-wraps link captions this way.
func findNestedSpan(n *html.Node) *html.Node {
	var result *html.Node
	var walk func(c *html.Node, inSpan bool) bool
	walk = func(c *html.Node, inSpan bool) bool {
		for d := c.FirstChild; d != nil; d = d.NextSibling {
			if d.Type != html.ElementNode {
				continue
			}
			if d.Data == "span" && inSpan {
				result = d
				return true
			}
			if walk(d, inSpan || d.Data == "span") {
				return true
			}
		}
		return false
	}
	walk(n, false)
	return result
}
