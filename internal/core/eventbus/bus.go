// Package eventbus 实现事件总线
package eventbus

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.uber.org/multierr"

	"github.com/BMIWB/go-larek/internal/core/metrics"
	pkgif "github.com/BMIWB/go-larek/pkg/interfaces"
	"github.com/BMIWB/go-larek/pkg/lib/log"
)

var logger = log.Logger("core/eventbus")

// ============================================================================
// 错误定义
// ============================================================================

var (
	// ErrHandlerPanic 事件处理器 panic
	ErrHandlerPanic = errors.New("event handler panicked")
	// ErrNotComparable 处理器不可比较，无法参与去重
	ErrNotComparable = errors.New("event handler is not comparable")
)

// ============================================================================
// Bus 实现
// ============================================================================

// Bus 同步事件总线
type Bus struct {
	mu sync.RWMutex

	// topics 主题键 → 主题节点
	topics map[topicKey]*node

	metrics *metrics.Metrics
}

// topicKey 注册表键
//
// 名称与正则分属不同命名空间，Name("/a/") 与 Pattern(a) 是两个主题。
type topicKey struct {
	pattern bool
	key     string
}

func keyOf(t pkgif.Topic) topicKey {
	return topicKey{pattern: t.IsPattern(), key: t.Key()}
}

// node 主题节点
type node struct {
	topic    pkgif.Topic
	handlers []pkgif.Handler
}

// Option 总线选项
type Option func(*Bus)

// WithMetrics 统计发布次数和处理器 panic
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Bus) {
		b.metrics = m
	}
}

// NewBus 创建新的事件总线
func NewBus(opts ...Option) *Bus {
	b := &Bus{
		topics: make(map[topicKey]*node),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ============================================================================
// Events 接口实现
// ============================================================================

// On 订阅主题
//
// h 为 nil 时忽略；h 的动态类型不可比较时 panic。
func (b *Bus) On(topic pkgif.Topic, h pkgif.Handler) {
	if h == nil {
		return
	}
	if !reflect.TypeOf(h).Comparable() {
		panic(fmt.Errorf("%w: %T", ErrNotComparable, h))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	key := keyOf(topic)
	n, ok := b.topics[key]
	if !ok {
		n = &node{topic: topic}
		b.topics[key] = n
	}
	for _, existing := range n.handlers {
		if existing == h {
			return
		}
	}
	n.handlers = append(n.handlers, h)
}

// Off 取消订阅
func (b *Bus) Off(topic pkgif.Topic, h pkgif.Handler) {
	if h == nil || !reflect.TypeOf(h).Comparable() {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	key := keyOf(topic)
	n, ok := b.topics[key]
	if !ok {
		return
	}
	for i, existing := range n.handlers {
		if existing == h {
			n.handlers = append(n.handlers[:i], n.handlers[i+1:]...)
			break
		}
	}
	if len(n.handlers) == 0 {
		delete(b.topics, key)
	}
}

// OnAll 订阅所有事件
func (b *Bus) OnAll(h pkgif.Handler) {
	b.On(pkgif.All(), h)
}

// OffAll 清除全部订阅
func (b *Bus) OffAll() {
	b.mu.Lock()
	b.topics = make(map[topicKey]*node)
	b.mu.Unlock()
}

// Emit 发布事件
//
// 处理器在锁外执行，可以在回调中重新订阅或发布。
func (b *Bus) Emit(event string, data any) error {
	b.metrics.EventPublished(event)

	calls := b.collect(event, data)
	if len(calls) == 0 {
		return nil
	}

	var errs error
	for _, c := range calls {
		errs = multierr.Append(errs, b.invoke(event, c.handler, c.payload))
	}
	return errs
}

// Trigger 返回一个发布固定事件的函数
//
// 同名字段以 context 为准。返回的函数吞掉处理器错误（已记录日志）。
func (b *Bus) Trigger(event string, context map[string]any) func(data map[string]any) {
	fixed := make(map[string]any, len(context))
	for k, v := range context {
		fixed[k] = v
	}

	return func(data map[string]any) {
		merged := make(map[string]any, len(data)+len(fixed))
		for k, v := range data {
			merged[k] = v
		}
		for k, v := range fixed {
			merged[k] = v
		}
		_ = b.Emit(event, merged)
	}
}

// Topics 返回已注册主题键的快照（已排序）
func (b *Bus) Topics() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]string, 0, len(b.topics))
	for key := range b.topics {
		keys = append(keys, key.key)
	}
	sort.Strings(keys)
	return keys
}

// HandlerCount 返回主题下的处理器数量
func (b *Bus) HandlerCount(topic pkgif.Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if n, ok := b.topics[keyOf(topic)]; ok {
		return len(n.handlers)
	}
	return 0
}

// ============================================================================
// 内部方法
// ============================================================================

type call struct {
	handler pkgif.Handler
	payload any
}

// collect 在读锁内收集本次投递
func (b *Bus) collect(event string, data any) []call {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var calls []call
	for _, n := range b.topics {
		var payload any
		switch {
		case n.topic.IsWildcard():
			payload = pkgif.WildcardEvent{Name: event, Data: data}
		case n.topic.Match(event):
			payload = data
		default:
			continue
		}
		for _, h := range n.handlers {
			calls = append(calls, call{handler: h, payload: payload})
		}
	}
	return calls
}

// invoke 执行单个处理器，panic 转为错误
func (b *Bus) invoke(event string, h pkgif.Handler, payload any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: event %q: %v", ErrHandlerPanic, event, r)
			b.metrics.HandlerPanic(event)
			logger.Warn("事件处理器 panic", "event", event, "handler", fmt.Sprintf("%T", h), "panic", r)
		}
	}()

	h.Handle(payload)
	return nil
}

// 确保 Bus 实现 Events 接口
var _ pkgif.Events = (*Bus)(nil)
