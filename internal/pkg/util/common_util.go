package util

import "strconv"

// PtrStr 用于将 string 转换为 *string
func PtrStr(s string) *string {
	return &s
}

// PtrInt 用于将 int 转换为 *int
func PtrInt(i int) *int {
	return &i
}

// PtrInt64 用于将 int64 转换为 *int64
func PtrInt64(i int64) *int64 {
	return &i
}

// UInt64ToStr 统一的用户 ID 字符串化方式
func UInt64ToStr(i uint64) string {
	return strconv.FormatUint(i, 10)
}
