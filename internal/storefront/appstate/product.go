package appstate

import (
	"github.com/BMIWB/go-larek/internal/core/model"
	pkgif "github.com/BMIWB/go-larek/pkg/interfaces"
	"github.com/BMIWB/go-larek/pkg/types"
)

// Product 绑定到事件总线的目录商品
type Product struct {
	model.Model
	types.ProductInfo
}

// NewProduct 包装目录记录
func NewProduct(info types.ProductInfo, events pkgif.Events) *Product {
	return &Product{
		Model:       model.New(events),
		ProductInfo: info,
	}
}

// Info 返回商品信息副本
func (p *Product) Info() types.ProductInfo {
	return p.ProductInfo
}

// Apply 用详情接口的结果刷新商品
func (p *Product) Apply(detail types.ProductInfo) {
	p.ProductInfo = detail
	p.EmitChanges(types.EventProductChanged, p)
}

// CatalogChangeEvent items:changed 的载荷
type CatalogChangeEvent struct {
	Catalog []*Product
}
