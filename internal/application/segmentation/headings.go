package segmentation

import (
	"strings"
)

// segment 切分中间结果：内容块，或被单独提取的图片。
// 图片段同时保留其序列化标记，以便合并阶段统一拼接。
type segment struct {
	chunk    ContentChunk
	isImage  bool
	imageRef string
}

// openChunk 标题切分的累加器状态
type openChunk struct {
	title   string
	members []*Node
	body    strings.Builder
	words   int
}

func (o *openChunk) add(n *Node) {
	o.members = append(o.members, n)
	o.body.WriteString(n.OuterHTML())
	o.words += countWords(n.Text())
}

func (o *openChunk) seal() ContentChunk {
	title := o.title
	if title == "" {
		title = extractTitle(o.members)
	}
	return ContentChunk{
		Markup:       o.body.String(),
		DerivedTitle: title,
		WordCount:    o.words,
	}
}

// splitByHeadings 按标题元素切分文档
//
// 显式 (sealed, open) 折叠：标题元素封存当前块并开启带标题的新块；
// 图片封存非空块、产出独立图片段、再开启无标题块；其余元素追加到
// 当前块。首个标题之前的元素没有归属块，被丢弃。循环结束后非空的
// 尾部块会被封存（原始实现遗漏了这一步，见 DESIGN.md）。
func splitByHeadings(nodes []*Node) []segment {
	var sealed []segment
	var open *openChunk

	for _, n := range nodes {
		if n.IsText() && strings.TrimSpace(n.Data) == "" {
			continue
		}

		switch {
		case isHeading(n):
			if open != nil && open.body.Len() > 0 {
				sealed = append(sealed, segment{chunk: open.seal()})
			}
			open = &openChunk{title: strings.TrimSpace(n.Text())}

		case n.Tag == "img":
			if open == nil {
				continue
			}
			if open.body.Len() > 0 {
				sealed = append(sealed, segment{chunk: open.seal()})
			}
			sealed = append(sealed, segment{
				chunk: ContentChunk{
					Markup:       n.OuterHTML(),
					DerivedTitle: strings.TrimSpace(n.Attr("alt")),
				},
				isImage:  true,
				imageRef: n.Attr("src"),
			})
			open = &openChunk{}

		default:
			if open == nil {
				continue
			}
			open.add(n)
		}
	}

	if open != nil && open.body.Len() > 0 {
		sealed = append(sealed, segment{chunk: open.seal()})
	}

	return sealed
}
