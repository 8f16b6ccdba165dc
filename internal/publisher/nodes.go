// internal/publisher/nodes.go
package publisher

import (
	"regexp"
	"strings"
)

// Node is Telegraph's DOM-ish content element. Text runs are plain strings
// inside Children, element nodes carry a Tag.
type Node struct {
	Tag      string            `json:"tag,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []interface{}     `json:"children,omitempty"`
}

var (
	htmlAnchorRe   = regexp.MustCompile(`<a href="([^"]+)">([^<]+)</a>`)
	markdownLinkRe = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// ContentToNodes converts markdown-style article text into Telegraph nodes:
// blocks split on blank lines, # and ## headings mapped to h3/h4, inline
// [text](url) and <a href> links mapped to link nodes, everything else to
// paragraph nodes.
func ContentToNodes(body string) []interface{} {
	// Normalize HTML anchors so a single pass handles both link syntaxes.
	body = htmlAnchorRe.ReplaceAllString(body, "[$2]($1)")

	nodes := []interface{}{}
	for _, block := range strings.Split(body, "\n\n") {
		block = strings.TrimSpace(strings.ReplaceAll(block, "\n", " "))
		if block == "" {
			continue
		}

		switch {
		case strings.HasPrefix(block, "## "):
			nodes = append(nodes, Node{Tag: "h4", Children: []interface{}{strings.TrimPrefix(block, "## ")}})
		case strings.HasPrefix(block, "# "):
			nodes = append(nodes, Node{Tag: "h3", Children: []interface{}{strings.TrimPrefix(block, "# ")}})
		default:
			nodes = append(nodes, Node{Tag: "p", Children: inlineChildren(block)})
		}
	}
	return nodes
}

// inlineChildren splits a paragraph into text runs and link nodes.
func inlineChildren(text string) []interface{} {
	children := []interface{}{}
	last := 0
	for _, m := range markdownLinkRe.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			children = append(children, text[last:m[0]])
		}
		linkText := text[m[2]:m[3]]
		linkURL := text[m[4]:m[5]]
		children = append(children, Node{
			Tag:      "a",
			Attrs:    map[string]string{"href": linkURL},
			Children: []interface{}{linkText},
		})
		last = m[1]
	}
	if last < len(text) {
		children = append(children, text[last:])
	}
	return children
}
