// Package interfaces 定义 go-larek 公共接口
//
// 本文件定义 Events 接口，提供事件发布订阅功能。
package interfaces

import "regexp"

// ============================================================================
//                              Topic - 订阅主题
// ============================================================================

// WildcardKey 通配主题的键
const WildcardKey = "*"

// Topic 订阅主题
//
// 三种形式：
//   - 精确名称：Name("items:changed")
//   - 通配：All()，接收所有事件，载荷包装为 WildcardEvent
//   - 正则：Pattern(re)，按事件名匹配
type Topic struct {
	name    string
	pattern *regexp.Regexp
}

// Name 精确名称主题
func Name(event string) Topic {
	return Topic{name: event}
}

// All 通配主题
func All() Topic {
	return Topic{name: WildcardKey}
}

// Pattern 正则主题
func Pattern(re *regexp.Regexp) Topic {
	return Topic{pattern: re}
}

// MustPattern 编译表达式并返回正则主题，表达式非法时 panic
func MustPattern(expr string) Topic {
	return Pattern(regexp.MustCompile(expr))
}

// Key 返回主题在注册表中的键
//
// 正则主题以 /expr/ 表示，同一表达式的两个正则共享同一主题。
// Key 只用于展示，注册表同时以 IsPattern 区分名称与正则。
func (t Topic) Key() string {
	if t.pattern != nil {
		return "/" + t.pattern.String() + "/"
	}
	return t.name
}

// IsPattern 是否为正则主题
func (t Topic) IsPattern() bool {
	return t.pattern != nil
}

// IsWildcard 是否为通配主题
func (t Topic) IsWildcard() bool {
	return t.pattern == nil && t.name == WildcardKey
}

// Match 主题是否匹配事件名（通配主题不走此路径）
func (t Topic) Match(event string) bool {
	if t.pattern != nil {
		return t.pattern.MatchString(event)
	}
	return t.name == event
}

// String 返回主题的字符串表示
func (t Topic) String() string {
	return t.Key()
}

// ============================================================================
//                              Handler - 事件处理器
// ============================================================================

// Handler 事件处理器
//
// 注册是按值去重的集合操作，实现必须可比较（通常为指针类型）。
type Handler interface {
	Handle(payload any)
}

// WildcardEvent 通配订阅者收到的载荷
type WildcardEvent struct {
	Name string
	Data any
}

// ============================================================================
//                              Events - 事件总线
// ============================================================================

// Events 定义事件总线接口
//
// 所有投递都是同步的：Emit 返回前所有匹配的处理器都已执行完毕。
type Events interface {
	// On 订阅主题，重复注册同一处理器无效果
	On(topic Topic, h Handler)

	// Off 取消订阅，主题下没有处理器时删除主题
	Off(topic Topic, h Handler)

	// OnAll 订阅所有事件
	OnAll(h Handler)

	// OffAll 清除全部订阅
	OffAll()

	// Emit 发布事件
	//
	// 没有订阅者时为空操作。单个处理器 panic 不影响其他处理器，
	// 所有 panic 汇总为返回的错误。
	Emit(event string, data any) error

	// Trigger 返回一个发布固定事件的函数
	//
	// 调用时传入的数据与 context 合并，同名字段以 context 为准。
	Trigger(event string, context map[string]any) func(data map[string]any)
}
