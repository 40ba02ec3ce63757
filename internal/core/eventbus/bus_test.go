package eventbus

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BMIWB/go-larek/internal/core/metrics"
	pkgif "github.com/BMIWB/go-larek/pkg/interfaces"
)

// recorder 记录收到的载荷
type recorder struct {
	got []any
}

func (r *recorder) Handle(payload any) {
	r.got = append(r.got, payload)
}

// ============================================================================
// 接口契约测试
// ============================================================================

// TestBus_ImplementsInterface 验证 Bus 实现接口
func TestBus_ImplementsInterface(t *testing.T) {
	var _ pkgif.Events = (*Bus)(nil)
}

// ============================================================================
// 基础功能测试
// ============================================================================

// TestBus_NewBus 测试创建事件总线
func TestBus_NewBus(t *testing.T) {
	bus := NewBus()
	require.NotNil(t, bus)
	assert.Empty(t, bus.Topics())
}

// TestBus_EmitExact 测试精确主题投递
func TestBus_EmitExact(t *testing.T) {
	bus := NewBus()
	r := &recorder{}
	bus.On(pkgif.Name("basket:changed"), r)

	require.NoError(t, bus.Emit("basket:changed", []string{"p1"}))
	require.NoError(t, bus.Emit("counter:changed", 1))

	assert.Equal(t, []any{[]string{"p1"}}, r.got)
}

// TestBus_EmitNoSubscribers 测试无订阅者时为空操作
func TestBus_EmitNoSubscribers(t *testing.T) {
	bus := NewBus()
	assert.NoError(t, bus.Emit("nobody:listens", nil))
	assert.Empty(t, bus.Topics())
}

// TestBus_DuplicateRegistration 测试重复注册只投递一次
func TestBus_DuplicateRegistration(t *testing.T) {
	bus := NewBus()
	r := &recorder{}

	bus.On(pkgif.Name("x"), r)
	bus.On(pkgif.Name("x"), r)
	assert.Equal(t, 1, bus.HandlerCount(pkgif.Name("x")))

	require.NoError(t, bus.Emit("x", 42))
	assert.Len(t, r.got, 1)

	// 两次 Func 包装得到不同处理器
	count := 0
	fn := func(any) { count++ }
	bus.On(pkgif.Name("y"), Func(fn))
	bus.On(pkgif.Name("y"), Func(fn))
	require.NoError(t, bus.Emit("y", nil))
	assert.Equal(t, 2, count)
}

// TestBus_Wildcard 测试通配订阅收到事件名和数据
func TestBus_Wildcard(t *testing.T) {
	bus := NewBus()
	r := &recorder{}
	bus.OnAll(r)

	require.NoError(t, bus.Emit("a", 1))
	require.NoError(t, bus.Emit("b", "two"))

	assert.Equal(t, []any{
		pkgif.WildcardEvent{Name: "a", Data: 1},
		pkgif.WildcardEvent{Name: "b", Data: "two"},
	}, r.got)
}

// TestBus_Pattern 测试正则主题
func TestBus_Pattern(t *testing.T) {
	bus := NewBus()
	r := &recorder{}
	bus.On(pkgif.Pattern(regexp.MustCompile(`^contacts\..*:change$`)), r)

	require.NoError(t, bus.Emit("contacts.email:change", "a@b.c"))
	require.NoError(t, bus.Emit("contacts.phone:change", "+7"))
	require.NoError(t, bus.Emit("contacts:submit", nil))

	assert.Equal(t, []any{"a@b.c", "+7"}, r.got)

	// 同一表达式的两个正则共享同一主题
	bus.Off(pkgif.MustPattern(`^contacts\..*:change$`), r)
	assert.Empty(t, bus.Topics())
}

// TestBus_NameAndPatternKeysDistinct 测试 /expr/ 形式的名称与同表达式的正则是两个主题
func TestBus_NameAndPatternKeysDistinct(t *testing.T) {
	bus := NewBus()
	byName := &recorder{}
	byPattern := &recorder{}

	bus.On(pkgif.Name("/foo/"), byName)
	bus.On(pkgif.MustPattern("foo"), byPattern)
	assert.Equal(t, 1, bus.HandlerCount(pkgif.Name("/foo/")))
	assert.Equal(t, 1, bus.HandlerCount(pkgif.MustPattern("foo")))

	require.NoError(t, bus.Emit("foobar", 1))
	require.NoError(t, bus.Emit("/foo/", 2))

	assert.Equal(t, []any{2}, byName.got)
	assert.Equal(t, []any{1, 2}, byPattern.got)

	bus.Off(pkgif.Name("/foo/"), byName)
	assert.Equal(t, 0, bus.HandlerCount(pkgif.Name("/foo/")))
	assert.Equal(t, 1, bus.HandlerCount(pkgif.MustPattern("foo")))
}

// TestBus_AllMatchingHandlersInvoked 测试所有匹配主题都会投递
func TestBus_AllMatchingHandlersInvoked(t *testing.T) {
	bus := NewBus()
	exact, all, pattern := &recorder{}, &recorder{}, &recorder{}

	bus.On(pkgif.Name("order.address:change"), exact)
	bus.OnAll(all)
	bus.On(pkgif.MustPattern(`^order\.`), pattern)

	require.NoError(t, bus.Emit("order.address:change", "Main st"))

	assert.Equal(t, []any{"Main st"}, exact.got)
	assert.Equal(t, []any{pkgif.WildcardEvent{Name: "order.address:change", Data: "Main st"}}, all.got)
	assert.Equal(t, []any{"Main st"}, pattern.got)
}

// TestBus_OffDropsEmptyTopic 测试最后一个处理器移除后主题被删除
func TestBus_OffDropsEmptyTopic(t *testing.T) {
	bus := NewBus()
	r1, r2 := &recorder{}, &recorder{}

	bus.On(pkgif.Name("x"), r1)
	bus.On(pkgif.Name("x"), r2)
	bus.Off(pkgif.Name("x"), r1)
	assert.Equal(t, []string{"x"}, bus.Topics())

	bus.Off(pkgif.Name("x"), r2)
	assert.Empty(t, bus.Topics())

	// 移除不存在的处理器
	bus.Off(pkgif.Name("x"), r2)
	bus.Off(pkgif.Name("missing"), nil)

	require.NoError(t, bus.Emit("x", 1))
	assert.Empty(t, r1.got)
	assert.Empty(t, r2.got)
}

// TestBus_OffAll 测试清空全部订阅
func TestBus_OffAll(t *testing.T) {
	bus := NewBus()
	r := &recorder{}
	bus.On(pkgif.Name("a"), r)
	bus.OnAll(r)
	bus.On(pkgif.MustPattern(`.*`), r)

	bus.OffAll()
	assert.Empty(t, bus.Topics())

	require.NoError(t, bus.Emit("a", 1))
	assert.Empty(t, r.got)
}

// TestBus_Trigger 测试触发器合并上下文
func TestBus_Trigger(t *testing.T) {
	bus := NewBus()
	var got map[string]any
	bus.On(pkgif.Name("order:submit"), Typed(func(m map[string]any) { got = m }))

	context := map[string]any{"source": "form", "step": 2}
	submit := bus.Trigger("order:submit", context)

	submit(map[string]any{"step": 1, "extra": true})
	assert.Equal(t, map[string]any{"source": "form", "step": 2, "extra": true}, got, "上下文字段优先")

	// 构造后修改 context 不影响触发器
	context["source"] = "changed"
	submit(nil)
	assert.Equal(t, map[string]any{"source": "form", "step": 2}, got)
}

// TestBus_PanicIsolation 测试处理器 panic 不影响其他处理器
func TestBus_PanicIsolation(t *testing.T) {
	m := metrics.New("test")
	bus := NewBus(WithMetrics(m))

	r := &recorder{}
	bus.On(pkgif.Name("x"), Func(func(any) { panic("boom") }))
	bus.On(pkgif.Name("x"), r)
	bus.OnAll(Func(func(any) { panic("boom again") }))

	err := bus.Emit("x", 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHandlerPanic))
	assert.Len(t, multierrLen(err), 2)
	assert.Equal(t, []any{7}, r.got)
}

// TestBus_NotComparable 测试不可比较处理器
func TestBus_NotComparable(t *testing.T) {
	bus := NewBus()
	assert.Panics(t, func() {
		bus.On(pkgif.Name("x"), sliceHandler{})
	})
	assert.NotPanics(t, func() {
		bus.Off(pkgif.Name("x"), sliceHandler{})
		bus.On(pkgif.Name("x"), nil)
	})
	assert.Empty(t, bus.Topics())
}

// TestBus_Reentrant 测试处理器内重入订阅和发布
func TestBus_Reentrant(t *testing.T) {
	bus := NewBus()
	inner := &recorder{}

	bus.On(pkgif.Name("outer"), Func(func(p any) {
		bus.On(pkgif.Name("inner"), inner)
		_ = bus.Emit("inner", p)
	}))

	require.NoError(t, bus.Emit("outer", "payload"))
	assert.Equal(t, []any{"payload"}, inner.got)
}

// TestTyped_Mismatch 测试类型不匹配时跳过
func TestTyped_Mismatch(t *testing.T) {
	bus := NewBus()
	called := false
	bus.On(pkgif.Name("x"), Typed(func(int) { called = true }))

	require.NoError(t, bus.Emit("x", "not an int"))
	assert.False(t, called)

	require.NoError(t, bus.Emit("x", 3))
	assert.True(t, called)
}

type sliceHandler []string

func (sliceHandler) Handle(any) {}
