package util

import (
	"regexp"
	"strings"
)

var (
	nonWordRegex    = regexp.MustCompile(`[^\w\s]`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
	slugRegex       = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// MaxSlugLength slug 最大长度
const MaxSlugLength = 60

// DeriveSlug 根据标题生成 slug：小写、去掉非单词字符、空白折叠为连字符、截断到 60
func DeriveSlug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonWordRegex.ReplaceAllString(s, "")
	s = whitespaceRegex.ReplaceAllString(s, "-")
	if len(s) > MaxSlugLength {
		s = s[:MaxSlugLength]
	}
	return s
}

// NormalizeSlug 规整用户显式提供的 slug，连字符保留。
// 不满足 slug 形式或超长时返回 false。
func NormalizeSlug(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) > MaxSlugLength || !slugRegex.MatchString(s) {
		return "", false
	}
	return s, true
}
