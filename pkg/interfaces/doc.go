// Package interfaces 定义 go-larek 的公共接口
//
// 核心（事件总线、状态容器）与外部协作方之间的边界全部在这里声明：
//
//   - eventbus.go  - 事件总线（Topic、Handler、Events）
//   - shop.go      - 网络协作方（商品目录、商品详情、下单）
//   - renderer.go  - 渲染协作方（弹窗内容、计数、表单错误）
//
// 实现位于 internal/ 下，由根包的 fx 组装注入。
package interfaces
