// Package model 提供可观察状态容器的基类
//
// 具体容器嵌入 Model，构造时绑定事件总线，状态变化后调用 EmitChanges 通知订阅者。
//
//	type Basket struct {
//	    model.Model
//	    items []string
//	}
//
//	func (b *Basket) Add(id string) {
//	    b.items = append(b.items, id)
//	    b.EmitChanges("basket:changed", b.items)
//	}
package model

import (
	pkgif "github.com/BMIWB/go-larek/pkg/interfaces"
	"github.com/BMIWB/go-larek/pkg/lib/log"
)

var logger = log.Logger("core/model")

// Empty 未提供载荷时发布的空对象
var Empty = struct{}{}

// Observable 可观察对象
type Observable interface {
	EmitChanges(event string, payload any)
	Events() pkgif.Events
}

// Model 可观察状态容器基类
type Model struct {
	events pkgif.Events
}

// New 创建绑定到事件总线的 Model
func New(events pkgif.Events) Model {
	return Model{events: events}
}

// EmitChanges 通过事件总线发布变化
//
// payload 为 nil 时发布 Empty。处理器错误只记录日志，不影响状态变更。
func (m *Model) EmitChanges(event string, payload any) {
	if m.events == nil {
		return
	}
	if payload == nil {
		payload = Empty
	}
	if err := m.events.Emit(event, payload); err != nil {
		logger.Warn("变化通知存在失败的处理器", "event", event, "err", err)
	}
}

// Events 返回绑定的事件总线
func (m *Model) Events() pkgif.Events {
	return m.events
}

// IsModel 判断 v 是否为可观察对象
func IsModel(v any) bool {
	_, ok := v.(Observable)
	return ok
}
