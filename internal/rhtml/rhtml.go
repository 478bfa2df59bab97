// Package rhtml sanity-checks the fragments accepted by the `raw`
// directive when its argument is "html". It does not render RST to
// HTML — that stays an external collaborator's job (spec §1
// Non-goals) — it only flags malformed markup early, before a raw
// fragment is embedded verbatim downstream. Issues carry no line number
// (Issue.Line is left at 0).
package rhtml

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Issue is one well-formedness complaint about a raw HTML fragment.
type Issue struct {
	Line    int
	Message string
}

// Check parses fragment as an HTML fragment and reports unclosed or
// mismatched tags. An empty Issue slice means the fragment parsed
// cleanly (html.Parse is itself quite lenient, so this mostly catches
// structurally broken input, not style nits).
func Check(fragment string) []Issue {
	var issues []Issue
	doc, err := html.Parse(strings.NewReader("<html><body>" + fragment + "</body></html>"))
	if err != nil {
		issues = append(issues, Issue{Message: fmt.Sprintf("parse error: %v", err)})
		return issues
	}

	var walk func(*html.Node, int)
	walk = func(n *html.Node, depth int) {
		if n.Type == html.ElementNode && isVoidUnsafe(n) {
			issues = append(issues, Issue{Message: fmt.Sprintf("unexpected nesting inside <%s>", n.Data)})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, depth+1)
		}
	}
	walk(doc, 0)
	return issues
}

// isVoidUnsafe reports whether n is a void element (per the HTML spec)
// that nonetheless ended up with children, which only happens when
// html.Parse had to repair badly nested input.
func isVoidUnsafe(n *html.Node) bool {
	switch n.Data {
	case "br", "hr", "img", "input", "meta", "link":
		return n.FirstChild != nil
	default:
		return false
	}
}
