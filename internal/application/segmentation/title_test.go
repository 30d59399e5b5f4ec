package segmentation

import (
	"strings"
	"testing"
)

func TestExtractTitlePrefersHeading(t *testing.T) {
	nodes := []*Node{
		NewElement("div",
			NewElement("strong", NewText("Bold run")),
			NewElement("h2", NewText("The Heading")),
		),
	}
	if got := extractTitle(nodes); got != "The Heading" {
		t.Fatalf("extractTitle() = %q, want %q", got, "The Heading")
	}
}

func TestExtractTitleBoldFallback(t *testing.T) {
	nodes := []*Node{
		NewElement("p", NewElement("b", NewText("Key Point")), NewText(" and more")),
	}
	if got := extractTitle(nodes); got != "Key Point" {
		t.Fatalf("extractTitle() = %q, want %q", got, "Key Point")
	}
}

func TestExtractTitleParagraphTruncatesAtPeriod(t *testing.T) {
	nodes := []*Node{
		NewElement("p", NewText("Short sentence. And the rest of the paragraph follows.")),
	}
	if got := extractTitle(nodes); got != "Short sentence" {
		t.Fatalf("extractTitle() = %q, want %q", got, "Short sentence")
	}
}

func TestExtractTitleParagraphTruncatesAt50Chars(t *testing.T) {
	long := strings.Repeat("abcde ", 20)
	nodes := []*Node{NewElement("p", NewText(long))}

	got := extractTitle(nodes)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
	if len([]rune(got)) != titleMaxLen+3 {
		t.Fatalf("expected %d runes, got %d (%q)", titleMaxLen+3, len([]rune(got)), got)
	}
}

func TestExtractTitleNothingMatches(t *testing.T) {
	nodes := []*Node{NewElement("ul", NewElement("li", NewText("item")))}
	if got := extractTitle(nodes); got != "" {
		t.Fatalf("extractTitle() = %q, want empty", got)
	}
}

func TestDeriveTitleDefault(t *testing.T) {
	nodes := []*Node{NewElement("ul", NewElement("li", NewText("item")))}
	if got := deriveTitle(nodes); got != defaultSlideTitle {
		t.Fatalf("deriveTitle() = %q, want %q", got, defaultSlideTitle)
	}
}
