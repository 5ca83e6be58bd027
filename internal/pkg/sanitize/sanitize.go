package sanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

var ugcPolicy = bluemonday.UGCPolicy()

// UGC 清洗用户提交的富文本片段，保留常见排版标签
func UGC(s string) string {
	return ugcPolicy.Sanitize(s)
}

// Blocks 清洗块式内容中的 text 字段（编辑器输出的块数据按引用原地清洗）
func Blocks(blocks []map[string]any) {
	for _, data := range blocks {
		if data == nil {
			continue
		}
		if text, ok := data["text"].(string); ok {
			data["text"] = UGC(text)
		}
	}
}
