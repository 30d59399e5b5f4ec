// Package segmentation 实现内容到幻灯片的切分引擎
package segmentation

import (
	"html"
	"strings"
)

// Attr 元素属性（有序，保证序列化稳定）
type Attr struct {
	Key string
	Val string
}

// Node 文档树节点：Tag 为空表示文本节点，Data 为文本内容
type Node struct {
	Tag      string
	Data     string
	Attrs    []Attr
	Children []*Node
}

// NewText 创建文本节点
func NewText(data string) *Node {
	return &Node{Data: data}
}

// NewElement 创建元素节点
func NewElement(tag string, children ...*Node) *Node {
	return &Node{Tag: tag, Children: children}
}

// WithAttr 追加属性并返回节点本身
func (n *Node) WithAttr(key, val string) *Node {
	n.Attrs = append(n.Attrs, Attr{Key: key, Val: val})
	return n
}

// IsText 是否为文本节点
func (n *Node) IsText() bool {
	return n.Tag == ""
}

// Attr 获取属性值，不存在时返回空字符串
func (n *Node) Attr(key string) string {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// Text 获取节点的纯文本内容（所有文本后代的拼接）
func (n *Node) Text() string {
	if n.IsText() {
		return n.Data
	}
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	if n.IsText() {
		sb.WriteString(n.Data)
		return
	}
	for _, c := range n.Children {
		c.writeText(sb)
	}
}

// 无闭合标签的空元素
var voidTags = map[string]bool{
	"img": true,
	"hr":  true,
	"br":  true,
}

// OuterHTML 序列化节点为 HTML 字符串
func (n *Node) OuterHTML() string {
	var sb strings.Builder
	n.writeHTML(&sb)
	return sb.String()
}

func (n *Node) writeHTML(sb *strings.Builder) {
	if n.IsText() {
		sb.WriteString(html.EscapeString(n.Data))
		return
	}
	sb.WriteByte('<')
	sb.WriteString(n.Tag)
	for _, a := range n.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(a.Val))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	if voidTags[n.Tag] {
		return
	}
	for _, c := range n.Children {
		c.writeHTML(sb)
	}
	sb.WriteString("</")
	sb.WriteString(n.Tag)
	sb.WriteByte('>')
}

// countWords 按空白分割统计单词数
func countWords(s string) int {
	return len(strings.Fields(s))
}

var headingTags = map[string]bool{
	"h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true,
}

func isHeading(n *Node) bool {
	return headingTags[n.Tag]
}
