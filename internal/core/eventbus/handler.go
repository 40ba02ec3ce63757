package eventbus

import (
	"reflect"

	pkgif "github.com/BMIWB/go-larek/pkg/interfaces"
)

// ============================================================================
// 处理器适配
// ============================================================================

// funcHandler 函数适配器
//
// 以指针身份参与去重：同一个 Func 返回值重复 On 只注册一次，
// 两次 Func(fn) 得到两个不同的处理器。
type funcHandler struct {
	fn func(any)
}

func (f *funcHandler) Handle(payload any) {
	f.fn(payload)
}

// Func 将函数包装为 Handler
func Func(fn func(payload any)) pkgif.Handler {
	return &funcHandler{fn: fn}
}

// typedHandler 带类型断言的函数适配器
type typedHandler[T any] struct {
	fn func(T)
}

func (h *typedHandler[T]) Handle(payload any) {
	v, ok := payload.(T)
	if !ok {
		logger.Warn("事件载荷类型不匹配",
			"want", reflect.TypeOf((*T)(nil)).Elem().String(),
			"got", reflect.TypeOf(payload))
		return
	}
	h.fn(v)
}

// Typed 将强类型函数包装为 Handler
//
// 载荷类型不匹配时记录警告并跳过。
func Typed[T any](fn func(T)) pkgif.Handler {
	return &typedHandler[T]{fn: fn}
}
