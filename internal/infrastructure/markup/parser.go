// Package markup 提供基于 golang.org/x/net/html 的片段解析适配器
package markup

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"lecture-deck-api/internal/application/segmentation"
)

// Parser HTML 片段解析器，实现 segmentation.Parser
type Parser struct{}

// NewParser 创建解析器
func NewParser() *Parser {
	return &Parser{}
}

// Parse 以 div 为上下文解析片段，返回顶层节点列表
func (p *Parser) Parse(fragment string) ([]*segmentation.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}
	parsed, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return nil, fmt.Errorf("parse html fragment: %w", err)
	}

	nodes := make([]*segmentation.Node, 0, len(parsed))
	for _, n := range parsed {
		if conv := convert(n); conv != nil {
			nodes = append(nodes, conv)
		}
	}
	return nodes, nil
}

// convert 将 html.Node 转换为切分引擎的节点，注释等节点被忽略
func convert(n *html.Node) *segmentation.Node {
	switch n.Type {
	case html.TextNode:
		return segmentation.NewText(n.Data)
	case html.ElementNode:
		node := &segmentation.Node{Tag: n.Data}
		for _, a := range n.Attr {
			node.Attrs = append(node.Attrs, segmentation.Attr{Key: a.Key, Val: a.Val})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(c); child != nil {
				node.Children = append(node.Children, child)
			}
		}
		return node
	default:
		return nil
	}
}
