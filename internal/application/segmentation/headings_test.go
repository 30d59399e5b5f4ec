package segmentation

import (
	"testing"
)

func TestSplitByHeadingsBasic(t *testing.T) {
	nodes := []*Node{
		NewElement("h1", NewText("A")),
		NewElement("p", NewText("x")),
		NewElement("h2", NewText("B")),
		NewElement("p", NewText("y")),
	}

	segs := splitByHeadings(nodes)
	if len(segs) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(segs))
	}
	if segs[0].chunk.DerivedTitle != "A" || segs[0].chunk.Markup != "<p>x</p>" {
		t.Errorf("chunk 0 = %+v", segs[0].chunk)
	}
	if segs[1].chunk.DerivedTitle != "B" || segs[1].chunk.Markup != "<p>y</p>" {
		t.Errorf("chunk 1 = %+v", segs[1].chunk)
	}
}

func TestSplitByHeadingsDropsPreHeadingContent(t *testing.T) {
	nodes := []*Node{
		NewElement("p", NewText("orphan")),
		NewElement("h1", NewText("A")),
		NewElement("p", NewText("x")),
	}

	segs := splitByHeadings(nodes)
	if len(segs) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(segs))
	}
	if segs[0].chunk.Markup != "<p>x</p>" {
		t.Errorf("chunk markup = %q", segs[0].chunk.Markup)
	}
}

func TestSplitByHeadingsEmptyBodyDropped(t *testing.T) {
	nodes := []*Node{
		NewElement("h1", NewText("A")),
		NewElement("h2", NewText("B")),
		NewElement("p", NewText("y")),
	}

	segs := splitByHeadings(nodes)
	if len(segs) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(segs))
	}
	if segs[0].chunk.DerivedTitle != "B" {
		t.Errorf("chunk title = %q, want B", segs[0].chunk.DerivedTitle)
	}
}

func TestSplitByHeadingsIsolatesImages(t *testing.T) {
	nodes := []*Node{
		NewElement("h1", NewText("A")),
		NewElement("p", NewText("before")),
		NewElement("img").WithAttr("src", "http://example.com/pic.png").WithAttr("alt", "A picture"),
		NewElement("p", NewText("after")),
	}

	segs := splitByHeadings(nodes)
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}

	if segs[0].chunk.DerivedTitle != "A" || segs[0].chunk.Markup != "<p>before</p>" {
		t.Errorf("segment 0 = %+v", segs[0].chunk)
	}
	if !segs[1].isImage || segs[1].imageRef != "http://example.com/pic.png" {
		t.Errorf("segment 1 = %+v", segs[1])
	}
	if segs[1].chunk.DerivedTitle != "A picture" {
		t.Errorf("image title = %q", segs[1].chunk.DerivedTitle)
	}
	if segs[2].isImage || segs[2].chunk.Markup != "<p>after</p>" {
		t.Errorf("segment 2 = %+v", segs[2])
	}
}

func TestSplitByHeadingsFlushesTrailingChunk(t *testing.T) {
	nodes := []*Node{
		NewElement("h1", NewText("Only")),
		NewElement("p", NewText("tail content")),
	}

	segs := splitByHeadings(nodes)
	if len(segs) != 1 {
		t.Fatalf("expected trailing chunk to be flushed, got %d segments", len(segs))
	}
	if segs[0].chunk.DerivedTitle != "Only" {
		t.Errorf("chunk title = %q", segs[0].chunk.DerivedTitle)
	}
}

func TestSplitByHeadingsNoHeadings(t *testing.T) {
	nodes := []*Node{
		NewElement("p", NewText("x")),
		NewElement("p", NewText("y")),
	}
	if segs := splitByHeadings(nodes); len(segs) != 0 {
		t.Fatalf("expected no segments, got %d", len(segs))
	}
}
