// Package metrics 提供监控指标收集
//
// metrics 模块基于 prometheus/client_golang，每个 Shop 持有独立的 Registry：
//   - 事件总线：按事件名统计发布次数、处理器 panic 次数
//   - 网络客户端：按接口与结果统计请求次数和耗时
//
// # 快速开始
//
//	m := metrics.New("larek")
//
//	m.EventPublished("items:changed")
//	m.ObserveRequest("product_list", metrics.OutcomeOK, 35*time.Millisecond)
//
//	http.Handle("/metrics", m.Handler())
//
// # 空值安全
//
// 所有记录方法在 *Metrics 为 nil 时为空操作，调用方无需判空：
//
//	var m *metrics.Metrics // 指标被禁用
//	m.EventPublished("x") // 不会 panic
//
// # Fx 模块
//
//	app := fx.New(
//	    metrics.Module,
//	    fx.Invoke(func(m *metrics.Metrics) {
//	        // m 在 config.Metrics.Enabled=false 时为 nil
//	    }),
//	)
package metrics
