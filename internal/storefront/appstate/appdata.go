// Package appstate 实现店面的应用状态容器
//
// AppData 持有目录、购物车、订单草稿、预览选择和表单错误。每个公开方法都是一次
// 完整的状态迁移，迁移完成后通过事件总线发布变化。AppData 不加锁，只能在
// 事件循环协程内访问。
package appstate

import (
	"errors"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/BMIWB/go-larek/internal/core/model"
	pkgif "github.com/BMIWB/go-larek/pkg/interfaces"
	"github.com/BMIWB/go-larek/pkg/lib/log"
	"github.com/BMIWB/go-larek/pkg/types"
)

var logger = log.Logger("storefront/appstate")

// ============================================================================
// 错误定义
// ============================================================================

var (
	// ErrNotInCatalog 商品不在目录中
	ErrNotInCatalog = errors.New("product not in catalog")
	// ErrPriceless 无价商品不能购买
	ErrPriceless = errors.New("product has no price")
	// ErrUnknownField 未知的联系人字段
	ErrUnknownField = errors.New("unknown contact field")
)

// ============================================================================
// AppData
// ============================================================================

// Snapshot 构造时的初始状态
type Snapshot struct {
	Catalog []types.ProductInfo
	// Basket 购物车中的商品 ID，必须存在于 Catalog 中
	Basket []string
	Order  types.Order
}

// AppData 应用状态容器
type AppData struct {
	model.Model

	catalog []*Product
	basket  []*Product
	order   types.Order
	preview string

	// formErrors 最近一次校验的结果
	formErrors types.FormErrors
	// phaseErrors 每个阶段最近一次校验的结果
	phaseErrors map[types.Phase]types.FormErrors

	validate *validator.Validate
}

// New 创建空的应用状态
func New(events pkgif.Events) *AppData {
	return NewFromSnapshot(events, Snapshot{})
}

// NewFromSnapshot 以初始状态创建应用状态，不发布任何事件
func NewFromSnapshot(events pkgif.Events, s Snapshot) *AppData {
	a := &AppData{
		Model:       model.New(events),
		order:       s.Order.Clone(),
		formErrors:  types.FormErrors{},
		phaseErrors: make(map[types.Phase]types.FormErrors, 2),
		validate:    newValidator(),
	}
	a.catalog = a.wrap(s.Catalog)
	for _, id := range s.Basket {
		if p, ok := a.FindProduct(id); ok && p.Priced() && !a.IsProductInBasket(p) {
			a.basket = append(a.basket, p)
		}
	}
	return a
}

// ============================================================================
// 目录
// ============================================================================

// SetCatalog 整体替换目录
func (a *AppData) SetCatalog(items []types.ProductInfo) {
	a.catalog = a.wrap(items)
	logger.Debug("目录已更新", "count", len(a.catalog))
	a.EmitChanges(types.EventItemsChanged, CatalogChangeEvent{Catalog: a.Catalog()})
}

// Catalog 返回目录快照
func (a *AppData) Catalog() []*Product {
	return slices.Clone(a.catalog)
}

// FindProduct 按 ID 查找目录商品
func (a *AppData) FindProduct(id string) (*Product, bool) {
	for _, p := range a.catalog {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// SetProductPreview 设置预览商品
//
// 商品按 ID 在目录中查找，事件载荷为目录中的实例。
func (a *AppData) SetProductPreview(item *Product) error {
	if item == nil {
		return ErrNotInCatalog
	}
	p, ok := a.FindProduct(item.ID)
	if !ok {
		return ErrNotInCatalog
	}
	a.preview = p.ID
	a.EmitChanges(types.EventPreviewChanged, p)
	return nil
}

// Preview 返回当前预览的商品
func (a *AppData) Preview() (*Product, bool) {
	if a.preview == "" {
		return nil, false
	}
	return a.FindProduct(a.preview)
}

func (a *AppData) wrap(items []types.ProductInfo) []*Product {
	out := make([]*Product, 0, len(items))
	for _, info := range items {
		out = append(out, NewProduct(info, a.Events()))
	}
	return out
}

// ============================================================================
// 购物车
// ============================================================================

// IsProductInBasket 按 ID 判断商品是否在购物车中
func (a *AppData) IsProductInBasket(item *Product) bool {
	if item == nil {
		return false
	}
	return a.indexInBasket(item.ID) >= 0
}

// AddProductToBasket 加入购物车
//
// 已在购物车中时为空操作。
func (a *AppData) AddProductToBasket(item *Product) error {
	if item == nil {
		return ErrNotInCatalog
	}
	if a.IsProductInBasket(item) {
		return nil
	}
	if !item.Priced() {
		return ErrPriceless
	}
	a.basket = append(a.basket, item)
	a.updateBasketState()
	return nil
}

// RemoveProductFromBasket 按 ID 移出购物车
func (a *AppData) RemoveProductFromBasket(id string) {
	if i := a.indexInBasket(id); i >= 0 {
		a.basket = slices.Delete(slices.Clone(a.basket), i, i+1)
	}
	a.updateBasketState()
}

// ResetBasket 清空购物车
func (a *AppData) ResetBasket() {
	a.basket = nil
	a.updateBasketState()
}

// Basket 返回购物车快照
func (a *AppData) Basket() []*Product {
	return slices.Clone(a.basket)
}

// PurchaseIDs 返回购物车商品 ID（按加入顺序）
func (a *AppData) PurchaseIDs() []string {
	ids := make([]string, 0, len(a.basket))
	for _, p := range a.basket {
		ids = append(ids, p.ID)
	}
	return ids
}

// updateBasketState 先发布计数，再发布内容
func (a *AppData) updateBasketState() {
	a.EmitChanges(types.EventCounterChanged, a.Basket())
	a.EmitChanges(types.EventBasketChanged, a.Basket())
}

func (a *AppData) indexInBasket(id string) int {
	return slices.IndexFunc(a.basket, func(p *Product) bool { return p.ID == id })
}
