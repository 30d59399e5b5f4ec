package segmentation

import (
	"regexp"
	"strings"
)

// 识别的手动分页标记，大小写不敏感，固定集合
var markerRe = regexp.MustCompile(`(?i)---SLIDE---|<!-- SLIDE -->|\[SLIDE\]`)

const markerDelimiter = "\x00slide-break\x00"

// HasMarkers 检测内容中是否存在手动分页标记
func HasMarkers(content string) bool {
	return markerRe.MatchString(content)
}

// splitByMarkers 将所有标记替换为统一分隔符后切分，
// 片段去除首尾空白，空片段被丢弃
func splitByMarkers(content string) []string {
	canonical := markerRe.ReplaceAllString(content, markerDelimiter)
	parts := strings.Split(canonical, markerDelimiter)

	fragments := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		fragments = append(fragments, p)
	}
	return fragments
}
