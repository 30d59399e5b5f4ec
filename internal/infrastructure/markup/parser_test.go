package markup

import (
	"testing"
)

func TestParseFragment(t *testing.T) {
	p := NewParser()

	nodes, err := p.Parse("<h1>Title</h1><p>one two three</p>")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 top-level nodes, got %d", len(nodes))
	}
	if nodes[0].Tag != "h1" || nodes[0].Text() != "Title" {
		t.Errorf("node 0 = %+v", nodes[0])
	}
	if nodes[1].Tag != "p" || nodes[1].Text() != "one two three" {
		t.Errorf("node 1 = %+v", nodes[1])
	}
}

func TestParseAttributes(t *testing.T) {
	p := NewParser()

	nodes, err := p.Parse(`<img src="http://example.com/a.png" alt="An image">`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Tag != "img" {
		t.Fatalf("nodes = %+v", nodes)
	}
	if got := nodes[0].Attr("src"); got != "http://example.com/a.png" {
		t.Errorf("src = %q", got)
	}
	if got := nodes[0].Attr("alt"); got != "An image" {
		t.Errorf("alt = %q", got)
	}
}

func TestParseMalformedBestEffort(t *testing.T) {
	p := NewParser()

	nodes, err := p.Parse("<p>unclosed paragraph")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Tag != "p" {
		t.Fatalf("nodes = %+v", nodes)
	}
	if nodes[0].Text() != "unclosed paragraph" {
		t.Errorf("text = %q", nodes[0].Text())
	}
}

func TestParseSkipsComments(t *testing.T) {
	p := NewParser()

	nodes, err := p.Parse("<!-- note --><p>x</p>")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Tag != "p" {
		t.Fatalf("expected comment dropped, nodes = %+v", nodes)
	}
}

func TestParseEmpty(t *testing.T) {
	p := NewParser()

	nodes, err := p.Parse("")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(nodes) != 0 {
		t.Fatalf("expected no nodes, got %d", len(nodes))
	}
}
