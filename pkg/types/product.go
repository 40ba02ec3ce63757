package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ============================================================================
//                              ProductInfo - 商品信息
// ============================================================================

// ProductInfo 商品目录中的一条记录
//
// Price 无效（Valid == false）表示"无价"商品，不能进入购买流程。
type ProductInfo struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Image       string              `json:"image"`
	Category    string              `json:"category"`
	Price       decimal.NullDecimal `json:"price"`
}

// MarshalJSON 价格输出为数字，无价输出 null
func (p ProductInfo) MarshalJSON() ([]byte, error) {
	type wire ProductInfo
	price := json.RawMessage("null")
	if p.Price.Valid {
		price = amount(p.Price.Decimal)
	}
	return json.Marshal(struct {
		wire
		Price json.RawMessage `json:"price"`
	}{wire(p), price})
}

// Priced 商品是否有价格
func (p ProductInfo) Priced() bool {
	return p.Price.Valid
}

// NewPrice 构造有效价格
func NewPrice(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

// NoPrice 无价
var NoPrice = decimal.NullDecimal{}

// amount 金额的 JSON 数字形式
func amount(d decimal.Decimal) json.RawMessage {
	return json.RawMessage(d.String())
}

// ListResponse 列表接口的响应
type ListResponse[T any] struct {
	Total int `json:"total"`
	Items []T `json:"items"`
}
