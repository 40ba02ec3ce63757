package interfaces

import (
	"github.com/shopspring/decimal"

	"github.com/BMIWB/go-larek/pkg/types"
)

// PreviewCard 商品详情弹窗的内容
type PreviewCard struct {
	Product  types.ProductInfo
	InBasket bool
}

// BasketView 购物车弹窗的内容
type BasketView struct {
	Items []types.ProductInfo
	Total decimal.Decimal
}

// Renderer 定义渲染协作方接口
//
// 只由 Presenter 在事件循环上调用，实现无需并发安全。
type Renderer interface {
	// RenderCatalog 渲染商品目录
	RenderCatalog(items []types.ProductInfo)

	// ShowPreview 在弹窗中显示商品详情
	ShowPreview(card PreviewCard)

	// ShowBasket 在弹窗中显示购物车
	ShowBasket(view BasketView)

	// UpdateBasket 刷新购物车内容（弹窗可能未打开）
	UpdateBasket(view BasketView)

	// SetCounter 更新页头购物车计数
	SetCounter(n int)

	// ShowDeliveryForm 显示配送表单
	ShowDeliveryForm()

	// SetDeliveryErrors 更新配送表单的有效性和错误提示
	SetDeliveryErrors(valid bool, errors string)

	// ShowContactForm 显示联系人表单
	ShowContactForm()

	// SetContactErrors 更新联系人表单的有效性和错误提示
	SetContactErrors(valid bool, errors string)

	// ShowSuccess 显示下单成功
	ShowSuccess(result types.OrderResult)

	// ShowError 显示错误信息
	ShowError(message string)

	// Close 关闭弹窗
	Close()
}
