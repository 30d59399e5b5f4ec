package segmentation

// Parser 解析 HTML 片段为顶层节点列表
//
// 切分算法只依赖该抽象，生产环境由 markup 包提供实现，
// 测试可直接构造合成节点树。
type Parser interface {
	Parse(fragment string) ([]*Node, error)
}
