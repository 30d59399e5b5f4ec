package segmentation

import (
	"strings"
)

const (
	paragraphBreakWords = 80
	listBreakWords      = 60
	hardCapWords        = 200
	oversizeWords       = 150
)

// chunkByBreaks 按结构和长度启发式切分无标题文档，
// 返回每个块的成员元素列表
//
// 断点规则：hr 与 blockquote 无条件断开（元素归入新块）；段落在
// 已累计超过 80 词时断开；列表在已累计超过 60 词时断开。不论元素
// 类型，加入元素后超过 200 词立即强制封存。尾部非空块会被封存。
func chunkByBreaks(nodes []*Node, cfg Config) [][]*Node {
	breakable := cfg.breakTagSet()

	var groups [][]*Node
	var members []*Node
	words := 0

	seal := func() {
		if len(members) == 0 {
			return
		}
		groups = append(groups, members)
		members = nil
		words = 0
	}

	for _, n := range nodes {
		if n.IsText() && strings.TrimSpace(n.Data) == "" {
			continue
		}

		switch {
		case n.Tag == "hr" || (n.Tag == "blockquote" && breakable["blockquote"]):
			seal()
		case n.Tag == "p" && breakable["p"] && words > paragraphBreakWords:
			seal()
		case (n.Tag == "ul" || n.Tag == "ol") && breakable[n.Tag] && words > listBreakWords:
			seal()
		}

		members = append(members, n)
		words += countWords(n.Text())

		if words > hardCapWords {
			seal()
		}
	}
	seal()

	return groups
}

// buildChunk 将成员元素列表物化为内容块
func buildChunk(members []*Node) ContentChunk {
	var sb strings.Builder
	words := 0
	for _, n := range members {
		sb.WriteString(n.OuterHTML())
		words += countWords(n.Text())
	}
	return ContentChunk{
		Markup:       sb.String(),
		DerivedTitle: deriveTitle(members),
		WordCount:    words,
	}
}

// finalizeChunks 物化块列表，超出 150 词的块交给子切分器
func finalizeChunks(groups [][]*Node, maxWords int) []ContentChunk {
	var out []ContentChunk
	for _, g := range groups {
		chunk := buildChunk(g)
		if chunk.WordCount > oversizeWords {
			out = append(out, subChunk(g, maxWords)...)
			continue
		}
		out = append(out, chunk)
	}
	return out
}

// subChunk 贪心重组超大块的成员元素，保证每个子块不超过词数上限，
// 除非单个元素本身就超限（元素内部永不拆分）
func subChunk(members []*Node, maxWords int) []ContentChunk {
	var out []ContentChunk
	var cur []*Node
	words := 0

	for _, n := range members {
		w := countWords(n.Text())
		if len(cur) > 0 && words+w > maxWords {
			out = append(out, buildChunk(cur))
			cur = nil
			words = 0
		}
		cur = append(cur, n)
		words += w
	}
	if len(cur) > 0 {
		out = append(out, buildChunk(cur))
	}
	return out
}
