package segmentation

import (
	"strings"
	"testing"
)

// wordsText 生成 n 个单词的文本
func wordsText(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func pWithWords(n int) *Node {
	return NewElement("p", NewText(wordsText(n)))
}

func TestChunkByBreaksHorizontalRule(t *testing.T) {
	nodes := []*Node{
		pWithWords(5),
		NewElement("hr"),
		pWithWords(5),
	}

	groups := chunkByBreaks(nodes, DefaultConfig())
	if len(groups) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(groups))
	}
	// hr 作为新块的首成员
	if groups[1][0].Tag != "hr" {
		t.Errorf("second chunk should start with hr, got %q", groups[1][0].Tag)
	}
}

func TestChunkByBreaksBlockquote(t *testing.T) {
	nodes := []*Node{
		pWithWords(3),
		NewElement("blockquote", NewText("a quote")),
		pWithWords(3),
	}

	groups := chunkByBreaks(nodes, DefaultConfig())
	if len(groups) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(groups))
	}
	if groups[1][0].Tag != "blockquote" {
		t.Errorf("second chunk should start with blockquote, got %q", groups[1][0].Tag)
	}
}

func TestChunkByBreaksParagraphThreshold(t *testing.T) {
	nodes := []*Node{
		pWithWords(81),
		pWithWords(10),
	}

	groups := chunkByBreaks(nodes, DefaultConfig())
	if len(groups) != 2 {
		t.Fatalf("expected break at paragraph after 81 words, got %d chunks", len(groups))
	}

	// 累计 80 词时段落不触发断点
	nodes = []*Node{
		pWithWords(80),
		pWithWords(10),
	}
	groups = chunkByBreaks(nodes, DefaultConfig())
	if len(groups) != 1 {
		t.Fatalf("expected no break at exactly 80 words, got %d chunks", len(groups))
	}
}

func TestChunkByBreaksListThreshold(t *testing.T) {
	nodes := []*Node{
		pWithWords(61),
		NewElement("ul", NewElement("li", NewText("item"))),
	}

	groups := chunkByBreaks(nodes, DefaultConfig())
	if len(groups) != 2 {
		t.Fatalf("expected break at list after 61 words, got %d chunks", len(groups))
	}
}

func TestChunkByBreaksHardCap(t *testing.T) {
	nodes := []*Node{
		pWithWords(250),
		pWithWords(5),
	}

	groups := chunkByBreaks(nodes, DefaultConfig())
	if len(groups) != 2 {
		t.Fatalf("expected oversized element sealed alone, got %d chunks", len(groups))
	}
	if len(groups[0]) != 1 {
		t.Errorf("first chunk should contain only the oversized element, got %d members", len(groups[0]))
	}
}

func TestChunkByBreaksFlushesTail(t *testing.T) {
	nodes := []*Node{pWithWords(5)}
	groups := chunkByBreaks(nodes, DefaultConfig())
	if len(groups) != 1 {
		t.Fatalf("expected trailing chunk flushed, got %d chunks", len(groups))
	}
}

func TestSubChunkGreedyBound(t *testing.T) {
	members := []*Node{pWithWords(40), pWithWords(40), pWithWords(40)}

	chunks := subChunk(members, 100)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 sub-chunks, got %d", len(chunks))
	}
	if chunks[0].WordCount != 80 || chunks[1].WordCount != 40 {
		t.Errorf("word counts = [%d, %d], want [80, 40]", chunks[0].WordCount, chunks[1].WordCount)
	}
}

func TestSubChunkIndivisibleElement(t *testing.T) {
	members := []*Node{pWithWords(150), pWithWords(10)}

	chunks := subChunk(members, 100)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 sub-chunks, got %d", len(chunks))
	}
	// 单个元素超限时不拆分元素内部
	if chunks[0].WordCount != 150 {
		t.Errorf("first sub-chunk word count = %d, want 150", chunks[0].WordCount)
	}
}

func TestFinalizeChunksSplitsOversized(t *testing.T) {
	groups := [][]*Node{
		{pWithWords(90), pWithWords(90)},
		{pWithWords(20)},
	}

	chunks := finalizeChunks(groups, 100)
	if len(chunks) != 3 {
		t.Fatalf("expected oversized group split into 2 + small group, got %d chunks", len(chunks))
	}
	for _, c := range chunks {
		if c.WordCount > 100 {
			t.Errorf("chunk exceeds bound: %d words", c.WordCount)
		}
	}
}
