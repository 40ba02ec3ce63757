package appstate

import (
	"github.com/shopspring/decimal"

	"github.com/BMIWB/go-larek/pkg/types"
)

// ============================================================================
// 订单草稿
// ============================================================================

// ResetOrder 重置订单草稿
//
// 同时丢弃两个阶段的校验结果。
func (a *AppData) ResetOrder() {
	a.order = types.Order{}
	a.formErrors = types.FormErrors{}
	clear(a.phaseErrors)
}

// BeginCheckout 开始结账
//
// 重置草稿，冻结购物车中有价商品的 ID，计算总额并执行配送阶段校验。
func (a *AppData) BeginCheckout() types.Order {
	a.ResetOrder()

	items := make([]string, 0, len(a.basket))
	for _, p := range a.basket {
		if p.Priced() {
			items = append(items, p.ID)
		}
	}
	a.order.Items = items
	a.order.Total = a.CalculateTotal()

	a.ValidateOrder(types.PhaseDelivery)
	return a.Order()
}

// SetPaymentMethod 设置支付方式并校验配送阶段
func (a *AppData) SetPaymentMethod(method types.PaymentMethod) {
	a.order.Payment = method
	a.ValidateOrder(types.PhaseDelivery)
}

// SetOrderFieldDelivery 设置地址并校验配送阶段
func (a *AppData) SetOrderFieldDelivery(value string) {
	a.order.Address = value
	a.ValidateOrder(types.PhaseDelivery)
}

// SetOrderFieldContact 设置联系人字段并校验联系人阶段
func (a *AppData) SetOrderFieldContact(field types.ContactField, value string) error {
	switch field {
	case types.FieldEmail:
		a.order.Email = value
	case types.FieldPhone:
		a.order.Phone = value
	default:
		return ErrUnknownField
	}
	a.ValidateOrder(types.PhaseContact)
	return nil
}

// Order 返回订单草稿副本
func (a *AppData) Order() types.Order {
	return a.order.Clone()
}

// OrderForSubmission 返回待提交的订单
//
// 总额按提交时的目录价格重新计算。
func (a *AppData) OrderForSubmission() types.Order {
	o := a.order.Clone()
	o.Total = a.CalculateTotal()
	return o
}

// ============================================================================
// 金额
// ============================================================================

// CalculateTotal 按目录价格汇总订单中的商品
//
// 目录中不存在或无价的 ID 记录警告并跳过。
func (a *AppData) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, id := range a.order.Items {
		p, ok := a.FindProduct(id)
		if !ok || !p.Priced() {
			logger.Warn("订单商品没有有效价格，已跳过", "id", id, "in_catalog", ok)
			continue
		}
		total = total.Add(p.Price.Decimal)
	}
	return total
}

// GetTotal 汇总购物车中商品的价格
func (a *AppData) GetTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range a.basket {
		if p.Priced() {
			total = total.Add(p.Price.Decimal)
		}
	}
	return total
}
