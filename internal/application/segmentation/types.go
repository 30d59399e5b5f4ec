package segmentation

import (
	"fmt"
)

// SlideKind 幻灯片类型
type SlideKind string

const (
	SlideKindTitle    SlideKind = "title"
	SlideKindContent  SlideKind = "content"
	SlideKindImage    SlideKind = "image"
	SlideKindActivity SlideKind = "activity"
)

// Slide 幻灯片输出单元
//
// 不变量：Body、ImageRef、ActivityRef 三个载荷字段中恰有一个
// 与 Kind 对应地被填充，其余为空。
type Slide struct {
	ID          string    `json:"id"`
	Kind        SlideKind `json:"kind"`
	Title       string    `json:"title,omitempty"`
	Body        string    `json:"body,omitempty"`
	ImageRef    string    `json:"image_ref,omitempty"`
	ActivityRef string    `json:"activity_ref,omitempty"`
}

// ContentChunk 切分过程中的中间内容块，转换为 Slide 后即被丢弃
type ContentChunk struct {
	Markup       string
	DerivedTitle string
	WordCount    int
}

// Config 切分调优参数
type Config struct {
	MaxWordsPerSlide   int      `json:"max_words_per_slide"`
	MinSlides          int      `json:"min_slides"`
	MaxSlides          int      `json:"max_slides"`
	PreferredBreakTags []string `json:"preferred_break_tags,omitempty"`
}

// DefaultConfig 默认切分配置
func DefaultConfig() Config {
	return Config{
		MaxWordsPerSlide:   100,
		MinSlides:          3,
		MaxSlides:          10,
		PreferredBreakTags: []string{"p", "ul", "ol", "blockquote"},
	}
}

// normalized 将非正值回填为默认值；min > max 的组合不做调整，
// 按算法自然结果处理
func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.MaxWordsPerSlide <= 0 {
		c.MaxWordsPerSlide = def.MaxWordsPerSlide
	}
	if c.MinSlides <= 0 {
		c.MinSlides = def.MinSlides
	}
	if c.MaxSlides <= 0 {
		c.MaxSlides = def.MaxSlides
	}
	if len(c.PreferredBreakTags) == 0 {
		c.PreferredBreakTags = def.PreferredBreakTags
	}
	return c
}

func (c Config) breakTagSet() map[string]bool {
	set := make(map[string]bool, len(c.PreferredBreakTags))
	for _, tag := range c.PreferredBreakTags {
		set[tag] = true
	}
	return set
}

// Strategy 切分策略（封闭枚举）
type Strategy int

const (
	StrategySmart Strategy = iota
	StrategyManual
	StrategyCustom
	StrategySimple
)

// ParseStrategy 解析策略名称
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "smart", "":
		return StrategySmart, nil
	case "manual":
		return StrategyManual, nil
	case "custom":
		return StrategyCustom, nil
	case "simple":
		return StrategySimple, nil
	default:
		return StrategySmart, fmt.Errorf("unknown strategy: %q", s)
	}
}

// String 返回策略名称
func (s Strategy) String() string {
	switch s {
	case StrategySmart:
		return "smart"
	case StrategyManual:
		return "manual"
	case StrategyCustom:
		return "custom"
	case StrategySimple:
		return "simple"
	default:
		return "unknown"
	}
}
