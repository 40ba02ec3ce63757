// Package types 定义 go-larek 的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他内部包。
// 所有类型都是纯值类型，用于在事件总线、状态容器、网络协作方之间传递数据。
//
// # 文件组织
//
//   - product.go: 商品信息、列表响应
//   - order.go:   订单草稿、支付方式、订单结果
//   - events.go:  事件名称常量与事件载荷
//   - enums.go:   校验阶段、联系人字段
//   - errors.go:  表单错误映射
//
// 金额统一使用 shopspring/decimal。服务端约定金额为 JSON 数字，
// 带金额的类型各自实现 MarshalJSON，不修改 decimal 包的全局设置。
package types
