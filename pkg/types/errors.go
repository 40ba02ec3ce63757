package types

import (
	"sort"
	"strings"
)

// FormErrors 表单字段到错误消息的映射
//
// 键不存在即表示该字段有效；空映射表示整个阶段有效。
type FormErrors map[string]string

// Valid 是否没有任何错误
func (e FormErrors) Valid() bool {
	return len(e) == 0
}

// Has 指定字段是否有错误
func (e FormErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Join 按字段名排序后用 sep 连接所有消息
func (e FormErrors) Join(sep string) string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e[k])
	}
	return strings.Join(msgs, sep)
}

// Clone 返回副本
func (e FormErrors) Clone() FormErrors {
	out := make(FormErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
