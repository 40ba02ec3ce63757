package types

import (
	"encoding/json"
	"slices"

	"github.com/shopspring/decimal"
)

// ============================================================================
//                              PaymentMethod - 支付方式
// ============================================================================

// PaymentMethod 支付方式
type PaymentMethod string

const (
	// PaymentNone 未选择
	PaymentNone PaymentMethod = ""
	// PaymentCard 在线支付
	PaymentCard PaymentMethod = "card"
	// PaymentCash 货到付款
	PaymentCash PaymentMethod = "cash"
)

// String 返回支付方式的字符串表示
func (p PaymentMethod) String() string {
	if p == PaymentNone {
		return "none"
	}
	return string(p)
}

// ============================================================================
//                              Order - 订单草稿
// ============================================================================

// Order 结账过程中的订单草稿
//
// Items 为开始结账时冻结的商品 ID 列表，Total 为按目录价格计算的总额。
type Order struct {
	Payment PaymentMethod   `json:"payment"`
	Address string          `json:"address"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone"`
	Items   []string        `json:"items"`
	Total   decimal.Decimal `json:"total"`
}

// Clone 返回订单的深拷贝
func (o Order) Clone() Order {
	o.Items = slices.Clone(o.Items)
	return o
}

// MarshalJSON 总额输出为数字
func (o Order) MarshalJSON() ([]byte, error) {
	type wire Order
	return json.Marshal(struct {
		wire
		Total json.RawMessage `json:"total"`
	}{wire(o), amount(o.Total)})
}

// OrderResult 提交订单后服务端返回的结果
type OrderResult struct {
	ID    string          `json:"id"`
	Total decimal.Decimal `json:"total"`
}

// MarshalJSON 总额输出为数字
func (r OrderResult) MarshalJSON() ([]byte, error) {
	type wire OrderResult
	return json.Marshal(struct {
		wire
		Total json.RawMessage `json:"total"`
	}{wire(r), amount(r.Total)})
}
