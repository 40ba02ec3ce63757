package types

// ============================================================================
//                              状态变更事件（状态容器发出）
// ============================================================================

const (
	// EventItemsChanged 目录整体替换
	EventItemsChanged = "items:changed"
	// EventPreviewChanged 预览商品变更
	EventPreviewChanged = "preview:changed"
	// EventCounterChanged 购物车计数变更
	EventCounterChanged = "counter:changed"
	// EventBasketChanged 购物车内容变更
	EventBasketChanged = "basket:changed"
	// EventProductChanged 商品详情刷新
	EventProductChanged = "product:changed"
	// EventDeliveryErrors 配送阶段校验结果
	EventDeliveryErrors = "deliveryFormError:change"
	// EventContactErrors 联系人阶段校验结果
	EventContactErrors = "contactFormError:change"
)

// ============================================================================
//                              用户意图事件（渲染层发出）
// ============================================================================

const (
	// EventCardSelect 点击目录卡片
	EventCardSelect = "card:select"
	// EventProductAdd 加入购物车
	EventProductAdd = "product:add"
	// EventProductRemove 移出购物车
	EventProductRemove = "product:remove"
	// EventBasketOpen 打开购物车
	EventBasketOpen = "basket:open"
	// EventOrderOpen 开始结账
	EventOrderOpen = "order:open"
	// EventPaymentChange 支付方式变更
	EventPaymentChange = "order.payment:change"
	// EventAddressChange 地址变更
	EventAddressChange = "order.address:change"
	// EventOrderSubmit 配送表单提交
	EventOrderSubmit = "order:submit"
	// EventContactsSubmit 联系人表单提交（最终下单）
	EventContactsSubmit = "contacts:submit"
)

// ContactChangePattern 联系人字段变更事件的匹配模式，例如 contacts.email:change
const ContactChangePattern = `^contacts\..*:change$`

// ContactChangeEvent 返回联系人字段变更事件名
func ContactChangeEvent(field ContactField) string {
	return "contacts." + string(field) + ":change"
}

// FormChange 表单输入事件载荷
type FormChange struct {
	Field string `json:"field"`
	Value string `json:"value"`
}
