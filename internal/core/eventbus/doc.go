// Package eventbus 实现进程内同步事件总线
//
// 提供按事件名发布订阅机制，支持：
//   - 精确名称主题
//   - 通配主题（载荷包装为 WildcardEvent）
//   - 正则主题
//   - 处理器去重（集合语义）
//   - 处理器 panic 隔离与汇总
//   - 并发安全
//
// # 快速开始
//
//	bus := eventbus.NewBus()
//
//	h := eventbus.Typed(func(items []string) {
//	    // 处理事件
//	})
//	bus.On(pkgif.Name("basket:changed"), h)
//	defer bus.Off(pkgif.Name("basket:changed"), h)
//
//	bus.Emit("basket:changed", []string{"p1"})
//
//	// 正则主题
//	bus.On(pkgif.MustPattern(`^contacts\..*:change$`), eventbus.Func(func(p any) {}))
//
//	// 固定上下文的触发器，上下文字段覆盖调用参数
//	submit := bus.Trigger("order:submit", map[string]any{"source": "form"})
//	submit(map[string]any{"step": 1})
//
// # Fx 模块
//
//	app := fx.New(
//	    eventbus.Module(),
//	    fx.Invoke(func(events pkgif.Events) {
//	        events.OnAll(eventbus.Func(func(p any) {}))
//	    }),
//	)
//
// # 架构定位
//
// Tier: Core Layer Level 1
//
// 依赖关系：
//   - 依赖：pkg/interfaces, core/metrics（可选）
//   - 被依赖：core/model, storefront/*
//
// # 并发安全
//
// 注册表由 sync.RWMutex 保护。Emit 在读锁内收集快照，在锁外调用处理器，
// 因此处理器可以重入订阅、取消订阅和发布。投递是同步的：Emit 返回时
// 所有匹配的处理器均已执行。
package eventbus
