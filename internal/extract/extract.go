// Package extract pulls invite links out of arbitrary HTML or plain text.
// Invite links appear both as clickable anchors and as plain pasted text in
// forum posts; anchors alone miss a large share of real-world sources, so
// both the parsed tree and the raw text are scanned and the union returned.
package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"linkscout/internal/core/domain"
)

// freeText matches an invite URL in running text. The token run is matched
// greedily and over-long runs are rejected afterwards, so a 23-character
// blob does not yield a bogus 22-character link.
var freeText = regexp.MustCompile(`https://chat\.whatsapp\.com/(?:invite/)?[A-Za-z0-9]+`)

// Links returns the deduplicated, shape-validated invite links found in
// sourceText. Malformed input yields an empty slice; it never fails.
func Links(sourceText string) []domain.InviteLink {
	seen := make(map[domain.InviteLink]struct{})
	var out []domain.InviteLink

	add := func(raw string) {
		link, err := domain.ParseInviteLink(raw)
		if err != nil {
			return
		}
		if _, dup := seen[link]; dup {
			return
		}
		seen[link] = struct{}{}
		out = append(out, link)
	}

	// Anchor attributes first: the parser unescapes entities, so links hidden
	// behind &amp;-style escaping surface here.
	for _, href := range anchorTargets(sourceText) {
		add(href)
	}

	// Then the raw text, which catches pasted links outside any markup.
	for _, m := range freeText.FindAllString(sourceText, -1) {
		add(m)
	}

	return out
}

// anchorTargets collects href/src-style attribute values from the document.
// html.Parse is forgiving: any input produces a tree, so this never errors.
func anchorTargets(sourceText string) []string {
	doc, err := html.Parse(strings.NewReader(sourceText))
	if err != nil {
		return nil
	}

	var targets []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				switch attr.Key {
				case "href", "src", "data-href":
					if strings.Contains(attr.Val, domain.InviteHost) {
						targets = append(targets, attr.Val)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return targets
}
