package segmentation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"lecture-deck-api/internal/domain/entity"
)

// stubParser 测试用解析器，按片段内容返回预设节点树
type stubParser struct {
	trees map[string][]*Node
	err   error
}

func (s *stubParser) Parse(fragment string) ([]*Node, error) {
	if s.err != nil {
		return nil, s.err
	}
	if nodes, ok := s.trees[fragment]; ok {
		return nodes, nil
	}
	// 未预设的片段按单个文本节点处理
	return []*Node{NewText(fragment)}, nil
}

func newTestEngine(trees map[string][]*Node) *Engine {
	return NewEngine(&stubParser{trees: trees}, DefaultConfig())
}

func TestBuildSmartEndToEnd(t *testing.T) {
	content := "<h1>Wind</h1><p>" + wordsText(90) + "</p>"
	engine := newTestEngine(map[string][]*Node{
		content: {
			NewElement("h1", NewText("Wind")),
			pWithWords(90),
		},
	})

	lecture := &entity.Lecture{Title: "Storms", Description: "Intro", Content: content}
	activities := []*entity.Activity{{ID: "a1", QuestionText: "Q?"}}

	slides, err := engine.Build(context.Background(), lecture, activities, StrategySmart, nil)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(slides) != 3 {
		t.Fatalf("expected 3 slides, got %d", len(slides))
	}

	if slides[0].Kind != SlideKindTitle || slides[0].Title != "Storms" || slides[0].Body != "Intro" {
		t.Errorf("title slide = %+v", slides[0])
	}
	if slides[1].Kind != SlideKindContent || slides[1].Title != "Wind" {
		t.Errorf("content slide = %+v", slides[1])
	}
	if slides[2].Kind != SlideKindActivity || slides[2].Title != "Activity 1" || slides[2].ActivityRef != "a1" {
		t.Errorf("activity slide = %+v", slides[2])
	}

	for i, s := range slides {
		want := fmt.Sprintf("slide-%d", i+1)
		if s.ID != want {
			t.Errorf("slide %d id = %q, want %q", i, s.ID, want)
		}
	}
}

func TestBuildManualWithMarkers(t *testing.T) {
	content := "Plain intro text---SLIDE---<h2>Beta</h2>"
	engine := newTestEngine(map[string][]*Node{
		"<h2>Beta</h2>": {NewElement("h2", NewText("Beta"))},
	})

	lecture := &entity.Lecture{Title: "T", Content: content}
	slides, err := engine.Build(context.Background(), lecture, nil, StrategyManual, nil)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(slides) != 3 {
		t.Fatalf("expected title + 2 content slides, got %d", len(slides))
	}

	// 无法提取标题的片段回退为 Slide {n}
	if slides[1].Title != "Slide 1" || slides[1].Body != "Plain intro text" {
		t.Errorf("slide 1 = %+v", slides[1])
	}
	if slides[2].Title != "Beta" || slides[2].Body != "<h2>Beta</h2>" {
		t.Errorf("slide 2 = %+v", slides[2])
	}
}

func TestBuildManualWithoutMarkersFallsBackToSmart(t *testing.T) {
	content := "<h1>A</h1><p>x</p><h2>B</h2><p>y</p>"
	trees := map[string][]*Node{
		content: {
			NewElement("h1", NewText("A")),
			NewElement("p", NewText("x")),
			NewElement("h2", NewText("B")),
			NewElement("p", NewText("y")),
		},
	}

	lecture := &entity.Lecture{Title: "T", Content: content}

	manual, err := newTestEngine(trees).Build(context.Background(), lecture, nil, StrategyManual, nil)
	if err != nil {
		t.Fatalf("Build(manual) error: %v", err)
	}
	smart, err := newTestEngine(trees).Build(context.Background(), lecture, nil, StrategySmart, nil)
	if err != nil {
		t.Fatalf("Build(smart) error: %v", err)
	}

	if len(manual) != len(smart) {
		t.Fatalf("manual fallback produced %d slides, smart produced %d", len(manual), len(smart))
	}
	for i := range manual {
		if manual[i] != smart[i] {
			t.Errorf("slide %d differs: %+v vs %+v", i, manual[i], smart[i])
		}
	}
}

func TestBuildSimpleStrategyBounds(t *testing.T) {
	cases := []struct {
		words      int
		wantSlides int
	}{
		{0, 3},
		{100, 3},
		{450, 3},
		{600, 4},
		{900, 6},
		{5000, 6},
	}

	for _, c := range cases {
		content := fmt.Sprintf("doc-%d", c.words)
		engine := newTestEngine(map[string][]*Node{
			content: {pWithWords(c.words)},
		})
		lecture := &entity.Lecture{Title: "T", Content: content}
		activities := []*entity.Activity{{ID: "a1"}, {ID: "a2"}}

		slides, err := engine.Build(context.Background(), lecture, activities, StrategySimple, nil)
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}

		wantTotal := 1 + c.wantSlides + len(activities)
		if len(slides) != wantTotal {
			t.Errorf("words=%d: got %d slides, want %d", c.words, len(slides), wantTotal)
			continue
		}
		for i := 0; i < c.wantSlides; i++ {
			s := slides[1+i]
			if s.Kind != SlideKindContent {
				t.Errorf("words=%d slide %d kind = %q", c.words, i, s.Kind)
			}
			if want := fmt.Sprintf("Part %d", i+1); s.Title != want {
				t.Errorf("words=%d slide %d title = %q, want %q", c.words, i, s.Title, want)
			}
			if !strings.HasPrefix(s.Body, "<p>") || !strings.HasSuffix(s.Body, "</p>") {
				t.Errorf("words=%d slide %d body not wrapped in paragraph: %q", c.words, i, s.Body)
			}
		}
	}
}

func TestBuildCustomAppliesMergePass(t *testing.T) {
	content := "twelve-sections"
	var nodes []*Node
	for i := 1; i <= 12; i++ {
		nodes = append(nodes,
			NewElement("h2", NewText(fmt.Sprintf("T%d", i))),
			NewElement("p", NewText(fmt.Sprintf("body %d", i))),
		)
	}

	engine := newTestEngine(map[string][]*Node{content: nodes})
	lecture := &entity.Lecture{Title: "T", Content: content}
	cfg := DefaultConfig()
	cfg.MaxSlides = 5

	slides, err := engine.Build(context.Background(), lecture, nil, StrategyCustom, &cfg)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	// 标题幻灯片 + 合并后的 5 张内容幻灯片
	if len(slides) != 6 {
		t.Fatalf("expected 6 slides, got %d", len(slides))
	}

	wantTitles := []string{"T1", "T4", "T7", "T9", "T11"}
	for i, want := range wantTitles {
		if got := slides[1+i].Title; got != want {
			t.Errorf("merged slide %d title = %q, want %q", i, got, want)
		}
	}
}

func TestBuildEmptyContent(t *testing.T) {
	engine := newTestEngine(map[string][]*Node{"": nil})
	lecture := &entity.Lecture{Title: "Empty", Content: ""}
	activities := []*entity.Activity{{ID: "a1"}}

	slides, err := engine.Build(context.Background(), lecture, activities, StrategySmart, nil)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(slides) != 2 {
		t.Fatalf("expected title + activity slides only, got %d", len(slides))
	}
}

func TestBuildParserErrorPropagates(t *testing.T) {
	parseErr := errors.New("catastrophic markup")
	engine := NewEngine(&stubParser{err: parseErr}, DefaultConfig())
	lecture := &entity.Lecture{Title: "T", Content: "<p>x</p>"}

	_, err := engine.Build(context.Background(), lecture, nil, StrategySmart, nil)
	if !errors.Is(err, parseErr) {
		t.Fatalf("expected parser error to propagate, got %v", err)
	}
}

func TestMergeSegmentsBalancedPartition(t *testing.T) {
	segs := make([]segment, 12)
	for i := range segs {
		segs[i] = segment{chunk: ContentChunk{
			Markup:       fmt.Sprintf("<p>c%d</p>", i+1),
			DerivedTitle: fmt.Sprintf("C%d", i+1),
			WordCount:    1,
		}}
	}

	merged := mergeSegments(segs, 5)
	if len(merged) != 5 {
		t.Fatalf("expected 5 groups, got %d", len(merged))
	}

	wantSizes := []int{3, 3, 2, 2, 2}
	wantTitles := []string{"C1", "C4", "C7", "C9", "C11"}
	for i, m := range merged {
		if m.chunk.DerivedTitle != wantTitles[i] {
			t.Errorf("group %d title = %q, want %q", i, m.chunk.DerivedTitle, wantTitles[i])
		}
		gotSize := strings.Count(m.chunk.Markup, "<p>")
		if gotSize != wantSizes[i] {
			t.Errorf("group %d size = %d, want %d", i, gotSize, wantSizes[i])
		}
	}

	// 多成员正文按空行拼接
	if merged[0].chunk.Markup != "<p>c1</p>\n\n<p>c2</p>\n\n<p>c3</p>" {
		t.Errorf("group 0 markup = %q", merged[0].chunk.Markup)
	}
}

func TestParseStrategy(t *testing.T) {
	cases := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"smart", StrategySmart, false},
		{"manual", StrategyManual, false},
		{"custom", StrategyCustom, false},
		{"simple", StrategySimple, false},
		{"", StrategySmart, false},
		{"bogus", StrategySmart, true},
	}

	for _, c := range cases {
		got, err := ParseStrategy(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("ParseStrategy(%q) err = %v, wantErr %v", c.in, err, c.wantErr)
			continue
		}
		if !c.wantErr && got != c.want {
			t.Errorf("ParseStrategy(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
