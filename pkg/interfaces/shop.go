package interfaces

import (
	"context"

	"github.com/BMIWB/go-larek/pkg/types"
)

// ShopAPI 定义网络协作方接口
//
// 所有方法都可能阻塞，调用方负责把结果投递回事件循环。
// 核心不做重试。
type ShopAPI interface {
	// GetProductList 获取完整商品目录
	GetProductList(ctx context.Context) ([]types.ProductInfo, error)

	// GetProductItem 获取单个商品详情
	GetProductItem(ctx context.Context, id string) (types.ProductInfo, error)

	// OrderProducts 提交订单
	OrderProducts(ctx context.Context, order types.Order) (types.OrderResult, error)
}
