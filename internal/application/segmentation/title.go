package segmentation

import (
	"strings"
)

const defaultSlideTitle = "Content Slide"

const titleMaxLen = 50

// extractTitle 从片段中提取标题，依次尝试标题元素、加粗元素、
// 首段文本（截断到第一个句号、再截断到 50 字符），全部落空返回空串
func extractTitle(nodes []*Node) string {
	if h := findFirst(nodes, isHeading); h != nil {
		if t := strings.TrimSpace(h.Text()); t != "" {
			return t
		}
	}

	if b := findFirst(nodes, func(n *Node) bool {
		return n.Tag == "b" || n.Tag == "strong"
	}); b != nil {
		if t := strings.TrimSpace(b.Text()); t != "" {
			return t
		}
	}

	if p := findFirst(nodes, func(n *Node) bool {
		return n.Tag == "p"
	}); p != nil {
		text := strings.TrimSpace(p.Text())
		if i := strings.Index(text, "."); i >= 0 {
			text = text[:i]
		}
		if runes := []rune(text); len(runes) > titleMaxLen {
			text = string(runes[:titleMaxLen]) + "..."
		}
		if text != "" {
			return text
		}
	}

	return ""
}

// deriveTitle 提取标题，落空时返回默认标题
func deriveTitle(nodes []*Node) string {
	if t := extractTitle(nodes); t != "" {
		return t
	}
	return defaultSlideTitle
}

// findFirst 深度优先查找第一个满足条件的元素节点
func findFirst(nodes []*Node, match func(*Node) bool) *Node {
	for _, n := range nodes {
		if n.IsText() {
			continue
		}
		if match(n) {
			return n
		}
		if found := findFirst(n.Children, match); found != nil {
			return found
		}
	}
	return nil
}
