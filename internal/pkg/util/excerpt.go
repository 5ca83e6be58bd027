package util

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExcerptLength 摘要截取的字符数
const ExcerptLength = 150

// StripHTML 去掉文本中的 HTML 标签，只保留纯文本
func StripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}

// DeriveExcerpt 从段落文本拼接出摘要：取前 150 个字符，截断时追加省略号
func DeriveExcerpt(paragraphs []string) string {
	joined := StripHTML(strings.Join(paragraphs, " "))

	runes := []rune(joined)
	truncated := len(runes) > ExcerptLength
	if truncated {
		runes = runes[:ExcerptLength]
	}

	excerpt := strings.TrimSpace(string(runes))
	if excerpt == "" {
		return ""
	}
	if truncated {
		excerpt += "..."
	}
	return excerpt
}
