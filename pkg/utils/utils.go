// Package utils 提供分页窗口、模糊查询模式、指针与时间等通用工具
package utils

import (
	"strings"
	"time"
)

const (
	// DefaultLimit 列表默认条数
	DefaultLimit = 100
	// MaxLimit 列表最大条数
	MaxLimit = 1000
)

// Window skip/limit 分页窗口
type Window struct {
	Skip  int
	Limit int
}

// NewWindow 规范化分页参数：负 skip 视为 0，limit 未指定或为负时取默认值，超过上限时截断
// limit 为 0 时得到空页
func NewWindow(skip int, limit *int) Window {
	if skip < 0 {
		skip = 0
	}
	n := DefaultLimit
	if limit != nil && *limit >= 0 {
		n = min(*limit, MaxLimit)
	}
	return Window{Skip: skip, Limit: n}
}

// Offset 获取数据库查询偏移量
func (w Window) Offset() int {
	return w.Skip
}

// LikeEscape LIKE 转义字符，mysql/postgres/sqlite 通用
const LikeEscape = "!"

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// ContainsPattern 生成小写的 LIKE 子串匹配模式，通配符已转义，配合 ESCAPE '!' 使用
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// StartOfMonth 返回 t 所在月第一天零点（UTC）
func StartOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// PreviousMonthRange 返回上一个自然月的 [start, end) 区间
func PreviousMonthRange(now time.Time) (start, end time.Time) {
	end = StartOfMonth(now)
	start = end.AddDate(0, -1, 0)
	return start, end
}

// StringPtr 返回字符串指针
func StringPtr(s string) *string {
	return &s
}

// IntPtr 返回整数指针
func IntPtr(i int) *int {
	return &i
}

// DerefString 解引用字符串指针
func DerefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
