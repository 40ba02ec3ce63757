// Package eventbus 实现事件总线
package eventbus

import (
	"context"

	"go.uber.org/fx"

	"github.com/BMIWB/go-larek/internal/core/metrics"
	pkgif "github.com/BMIWB/go-larek/pkg/interfaces"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Params Fx 模块输入参数
type Params struct {
	fx.In

	Metrics *metrics.Metrics `optional:"true"`
}

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	Bus    *Bus
	Events pkgif.Events
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("eventbus",
		fx.Provide(ProvideEventBus),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideEventBus 提供 EventBus 实例
func ProvideEventBus(p Params) Result {
	bus := NewBus(WithMetrics(p.Metrics))
	return Result{
		Bus:    bus,
		Events: bus,
	}
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In
	LC  fx.Lifecycle
	Bus *Bus
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			input.Bus.OffAll()
			logger.Debug("事件总线已清空")
			return nil
		},
	})
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "eventbus"
	// Description 模块描述
	Description = "事件总线模块，提供同步的按名称/通配/正则发布订阅"
)
