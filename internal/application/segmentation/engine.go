package segmentation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"lecture-deck-api/internal/domain/entity"
	"lecture-deck-api/pkg/metrics"
)

var tracer = otel.Tracer("segmentation")

// simple 策略的固定参数
const (
	simpleTargetWords = 150
	simpleMinSlides   = 3
	simpleMaxSlides   = 6
)

// Engine 切分引擎
//
// 纯函数式：每次调用独立构造全部中间值，无共享可变状态，
// 可安全并发调用。
type Engine struct {
	parser Parser
	cfg    Config
}

// NewEngine 创建切分引擎
func NewEngine(parser Parser, cfg Config) *Engine {
	return &Engine{
		parser: parser,
		cfg:    cfg.normalized(),
	}
}

// Build 按策略将讲座内容切分为幻灯片序列
//
// 输出以一张标题幻灯片开头，内容幻灯片居中，每个活动对应一张
// 活动幻灯片结尾。唯一的失败来源是底层解析器错误，原样向上传播。
func (e *Engine) Build(ctx context.Context, lecture *entity.Lecture, activities []*entity.Activity, strategy Strategy, override *Config) ([]Slide, error) {
	_, span := tracer.Start(ctx, "segmentation.Build",
		trace.WithAttributes(attribute.String("segmentation.strategy", strategy.String())))
	defer span.End()

	start := time.Now()

	cfg := e.cfg
	if override != nil {
		cfg = override.normalized()
	}

	slides, err := e.build(lecture, activities, strategy, cfg)

	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
	}
	metrics.SegmentationTotal.WithLabelValues(strategy.String(), status).Inc()
	metrics.SegmentationDuration.WithLabelValues(strategy.String()).Observe(time.Since(start).Seconds())
	if err == nil {
		metrics.SlidesPerDeck.WithLabelValues(strategy.String()).Observe(float64(len(slides)))
		span.SetAttributes(attribute.Int("segmentation.slide_count", len(slides)))
	}

	return slides, err
}

func (e *Engine) build(lecture *entity.Lecture, activities []*entity.Activity, strategy Strategy, cfg Config) ([]Slide, error) {
	var content []Slide
	var err error

	switch strategy {
	case StrategyManual:
		if HasMarkers(lecture.Content) {
			content, err = e.manualSlides(lecture.Content)
		} else {
			content, err = e.smartSlides(lecture.Content, cfg)
		}
	case StrategyCustom:
		content, err = e.customSlides(lecture.Content, cfg)
	case StrategySimple:
		content, err = e.simpleSlides(lecture.Content)
	default:
		content, err = e.smartSlides(lecture.Content, cfg)
	}
	if err != nil {
		return nil, err
	}

	slides := make([]Slide, 0, len(content)+1+len(activities))
	slides = append(slides, Slide{
		Kind:  SlideKindTitle,
		Title: lecture.Title,
		Body:  lecture.Description,
	})
	slides = append(slides, content...)
	for i, a := range activities {
		slides = append(slides, Slide{
			Kind:        SlideKindActivity,
			Title:       fmt.Sprintf("Activity %d", i+1),
			ActivityRef: a.ID,
		})
	}

	for i := range slides {
		slides[i].ID = fmt.Sprintf("slide-%d", i+1)
	}
	return slides, nil
}

// manualSlides 按手动标记切分，标题落空时回退为 Slide {n}
func (e *Engine) manualSlides(content string) ([]Slide, error) {
	fragments := splitByMarkers(content)

	slides := make([]Slide, 0, len(fragments))
	for i, frag := range fragments {
		nodes, err := e.parser.Parse(frag)
		if err != nil {
			return nil, fmt.Errorf("parse fragment: %w", err)
		}
		title := extractTitle(nodes)
		if title == "" {
			title = fmt.Sprintf("Slide %d", i+1)
		}
		slides = append(slides, Slide{
			Kind:  SlideKindContent,
			Title: title,
			Body:  frag,
		})
	}
	return slides, nil
}

// smartSlides 先按标题切分，产出不超过一段时回退到逻辑断点切分
func (e *Engine) smartSlides(content string, cfg Config) ([]Slide, error) {
	nodes, err := e.parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}

	segs := splitByHeadings(nodes)
	if len(segs) <= 1 {
		segs = wrapChunks(finalizeChunks(chunkByBreaks(nodes, cfg), cfg.MaxWordsPerSlide))
	}
	return segmentsToSlides(segs), nil
}

// customSlides 标题切分不足 MinSlides 时回退到逻辑断点切分，
// 超出 MaxSlides 时执行合并
func (e *Engine) customSlides(content string, cfg Config) ([]Slide, error) {
	nodes, err := e.parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}

	segs := splitByHeadings(nodes)
	if len(segs) < cfg.MinSlides {
		segs = wrapChunks(finalizeChunks(chunkByBreaks(nodes, cfg), cfg.MaxWordsPerSlide))
	}
	if len(segs) > cfg.MaxSlides {
		segs = mergeSegments(segs, cfg.MaxSlides)
	}
	return segmentsToSlides(segs), nil
}

// simpleSlides 抛开文档结构，将纯文本均分为 3 到 6 组
func (e *Engine) simpleSlides(content string) ([]Slide, error) {
	nodes, err := e.parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}

	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(n.Text())
		sb.WriteByte(' ')
	}
	words := strings.Fields(sb.String())

	count := (len(words) + simpleTargetWords - 1) / simpleTargetWords
	if count < simpleMinSlides {
		count = simpleMinSlides
	}
	if count > simpleMaxSlides {
		count = simpleMaxSlides
	}

	slides := make([]Slide, 0, count)
	base := len(words) / count
	extra := len(words) % count
	idx := 0
	for i := 0; i < count; i++ {
		size := base
		if i < extra {
			size++
		}
		group := words[idx : idx+size]
		idx += size
		slides = append(slides, Slide{
			Kind:  SlideKindContent,
			Title: fmt.Sprintf("Part %d", i+1),
			Body:  "<p>" + strings.Join(group, " ") + "</p>",
		})
	}
	return slides, nil
}

func wrapChunks(chunks []ContentChunk) []segment {
	segs := make([]segment, 0, len(chunks))
	for _, c := range chunks {
		segs = append(segs, segment{chunk: c})
	}
	return segs
}

func segmentsToSlides(segs []segment) []Slide {
	slides := make([]Slide, 0, len(segs))
	for _, s := range segs {
		if s.isImage {
			slides = append(slides, Slide{
				Kind:     SlideKindImage,
				Title:    s.chunk.DerivedTitle,
				ImageRef: s.imageRef,
			})
			continue
		}
		title := s.chunk.DerivedTitle
		if title == "" {
			title = defaultSlideTitle
		}
		slides = append(slides, Slide{
			Kind:  SlideKindContent,
			Title: title,
			Body:  s.chunk.Markup,
		})
	}
	return slides
}

// mergeSegments 将段序列均衡划分为 maxSlides 个连续分组，
// 前面的分组更大；多成员分组合并为一张内容幻灯片，标题取首成员
// 标题，正文按空行拼接
func mergeSegments(segs []segment, maxSlides int) []segment {
	n := len(segs)
	if n <= maxSlides {
		return segs
	}

	base := n / maxSlides
	extra := n % maxSlides

	out := make([]segment, 0, maxSlides)
	idx := 0
	for g := 0; g < maxSlides; g++ {
		size := base
		if g < extra {
			size++
		}
		group := segs[idx : idx+size]
		idx += size

		if size == 1 {
			out = append(out, group[0])
			continue
		}
		out = append(out, mergeGroup(group))
	}
	return out
}

func mergeGroup(group []segment) segment {
	parts := make([]string, 0, len(group))
	words := 0
	for _, s := range group {
		parts = append(parts, s.chunk.Markup)
		words += s.chunk.WordCount
	}
	return segment{chunk: ContentChunk{
		Markup:       strings.Join(parts, "\n\n"),
		DerivedTitle: group[0].chunk.DerivedTitle,
		WordCount:    words,
	}}
}
