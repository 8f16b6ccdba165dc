package publisher

import (
	"testing"
)

func TestContentToNodesHeadingsAndParagraphs(t *testing.T) {
	body := "# Main Title\n\n## Section\n\nA plain paragraph of text."

	nodes := ContentToNodes(body)
	if len(nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(nodes))
	}

	h3 := nodes[0].(Node)
	if h3.Tag != "h3" || h3.Children[0] != "Main Title" {
		t.Errorf("unexpected h3 node: %+v", h3)
	}

	h4 := nodes[1].(Node)
	if h4.Tag != "h4" || h4.Children[0] != "Section" {
		t.Errorf("unexpected h4 node: %+v", h4)
	}

	p := nodes[2].(Node)
	if p.Tag != "p" || p.Children[0] != "A plain paragraph of text." {
		t.Errorf("unexpected paragraph node: %+v", p)
	}
}

func TestContentToNodesMarkdownLink(t *testing.T) {
	nodes := ContentToNodes("Check [my site](https://example.com) today.")

	p := nodes[0].(Node)
	if len(p.Children) != 3 {
		t.Fatalf("expected text, link, text children, got %d", len(p.Children))
	}
	if p.Children[0] != "Check " {
		t.Errorf("unexpected leading text: %v", p.Children[0])
	}
	link := p.Children[1].(Node)
	if link.Tag != "a" || link.Attrs["href"] != "https://example.com" || link.Children[0] != "my site" {
		t.Errorf("unexpected link node: %+v", link)
	}
	if p.Children[2] != " today." {
		t.Errorf("unexpected trailing text: %v", p.Children[2])
	}
}

func TestContentToNodesHTMLAnchor(t *testing.T) {
	nodes := ContentToNodes(`Visit <a href="https://example.com/page">the guide</a> for details.`)

	p := nodes[0].(Node)
	link := p.Children[1].(Node)
	if link.Tag != "a" || link.Attrs["href"] != "https://example.com/page" {
		t.Errorf("HTML anchor not converted to link node: %+v", link)
	}
	if link.Children[0] != "the guide" {
		t.Errorf("unexpected link text: %v", link.Children[0])
	}
}

func TestContentToNodesCollapsesSingleNewlines(t *testing.T) {
	nodes := ContentToNodes("line one\nline two\n\nnext paragraph")
	if len(nodes) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(nodes))
	}
	p := nodes[0].(Node)
	if p.Children[0] != "line one line two" {
		t.Errorf("single newlines should join into one paragraph, got %v", p.Children[0])
	}
}
