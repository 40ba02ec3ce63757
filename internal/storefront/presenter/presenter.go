// Package presenter 把用户意图事件翻译为状态操作，并把状态变化推送给渲染层
//
// 所有处理器都在事件循环协程内运行；网络请求通过 loop.Await 执行，完成后
// 回到循环再修改状态。请求失败时状态保持不变，渲染层通过 ShowError 得到通知。
package presenter

import (
	"context"
	"errors"

	"github.com/BMIWB/go-larek/internal/core/eventbus"
	"github.com/BMIWB/go-larek/internal/core/loop"
	"github.com/BMIWB/go-larek/internal/storefront/appstate"
	pkgif "github.com/BMIWB/go-larek/pkg/interfaces"
	"github.com/BMIWB/go-larek/pkg/lib/log"
	"github.com/BMIWB/go-larek/pkg/types"
)

var logger = log.Logger("storefront/presenter")

// 渲染层看到的错误提示
const (
	MsgCatalogFailed = "Could not load the catalog. Try again later."
	MsgPreviewFailed = "Could not load product details. Try again later."
	MsgOrderFailed   = "Could not place the order. Try again later."
	MsgPriceless     = "This product is not for sale."
	MsgEmptyBasket   = "The basket is empty."
)

// subscription 已注册的处理器
type subscription struct {
	topic   pkgif.Topic
	handler pkgif.Handler
}

// Presenter 事件编排
type Presenter struct {
	state  *appstate.AppData
	events pkgif.Events
	api    pkgif.ShopAPI
	view   pkgif.Renderer
	loop   *loop.Loop

	ctx    context.Context
	cancel context.CancelFunc
	subs   []subscription
}

// New 创建 Presenter
func New(state *appstate.AppData, events pkgif.Events, api pkgif.ShopAPI, view pkgif.Renderer, l *loop.Loop) *Presenter {
	ctx, cancel := context.WithCancel(context.Background())
	return &Presenter{
		state:  state,
		events: events,
		api:    api,
		view:   view,
		loop:   l,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Bind 订阅所有事件
//
// Unbind 之后可以再次 Bind，请求上下文随之重建。
func (p *Presenter) Bind() {
	if len(p.subs) > 0 {
		return
	}
	if p.ctx.Err() != nil {
		p.ctx, p.cancel = context.WithCancel(context.Background())
	}

	// 状态变化 → 渲染
	p.on(pkgif.Name(types.EventItemsChanged), eventbus.Typed(p.onItemsChanged))
	p.on(pkgif.Name(types.EventPreviewChanged), eventbus.Typed(p.onPreviewChanged))
	p.on(pkgif.Name(types.EventCounterChanged), eventbus.Typed(p.onCounterChanged))
	p.on(pkgif.Name(types.EventBasketChanged), eventbus.Func(func(any) { p.view.UpdateBasket(p.basketView()) }))
	p.on(pkgif.Name(types.EventDeliveryErrors), eventbus.Typed(func(errs types.FormErrors) {
		p.view.SetDeliveryErrors(errs.Valid(), errs.Join("; "))
	}))
	p.on(pkgif.Name(types.EventContactErrors), eventbus.Typed(func(errs types.FormErrors) {
		p.view.SetContactErrors(errs.Valid(), errs.Join("; "))
	}))

	// 用户意图 → 状态
	p.on(pkgif.Name(types.EventCardSelect), eventbus.Func(p.onCardSelect))
	p.on(pkgif.Name(types.EventProductAdd), eventbus.Func(p.onProductAdd))
	p.on(pkgif.Name(types.EventProductRemove), eventbus.Func(p.onProductRemove))
	p.on(pkgif.Name(types.EventBasketOpen), eventbus.Func(func(any) { p.view.ShowBasket(p.basketView()) }))
	p.on(pkgif.Name(types.EventOrderOpen), eventbus.Func(p.onOrderOpen))
	p.on(pkgif.Name(types.EventPaymentChange), eventbus.Func(p.onPaymentChange))
	p.on(pkgif.Name(types.EventAddressChange), eventbus.Func(p.onAddressChange))
	p.on(pkgif.Name(types.EventOrderSubmit), eventbus.Func(p.onOrderSubmit))
	p.on(pkgif.MustPattern(types.ContactChangePattern), eventbus.Func(p.onContactChange))
	p.on(pkgif.Name(types.EventContactsSubmit), eventbus.Func(p.onContactsSubmit))
}

// Unbind 取消全部订阅并丢弃进行中请求的上下文
func (p *Presenter) Unbind() {
	p.cancel()
	for _, s := range p.subs {
		p.events.Off(s.topic, s.handler)
	}
	p.subs = nil
}

// LoadCatalog 请求商品目录
func (p *Presenter) LoadCatalog() {
	ctx := p.ctx
	loop.Await(p.loop, func() ([]types.ProductInfo, error) {
		return p.api.GetProductList(ctx)
	}, func(items []types.ProductInfo, err error) {
		if err != nil {
			logger.Warn("加载目录失败", "err", err)
			p.view.ShowError(MsgCatalogFailed)
			return
		}
		p.state.SetCatalog(items)
	})
}

func (p *Presenter) on(topic pkgif.Topic, h pkgif.Handler) {
	p.events.On(topic, h)
	p.subs = append(p.subs, subscription{topic: topic, handler: h})
}

// ============================================================================
// 状态变化
// ============================================================================

func (p *Presenter) onItemsChanged(ev appstate.CatalogChangeEvent) {
	infos := make([]types.ProductInfo, 0, len(ev.Catalog))
	for _, item := range ev.Catalog {
		infos = append(infos, item.Info())
	}
	p.view.RenderCatalog(infos)
}

func (p *Presenter) onPreviewChanged(item *appstate.Product) {
	id, ctx := item.ID, p.ctx
	loop.Await(p.loop, func() (types.ProductInfo, error) {
		return p.api.GetProductItem(ctx, id)
	}, func(detail types.ProductInfo, err error) {
		if err != nil {
			logger.Warn("加载商品详情失败", "id", id, "err", err)
			p.view.ShowError(MsgPreviewFailed)
			return
		}
		// 目录可能已在请求期间被替换
		current, ok := p.state.FindProduct(id)
		if !ok {
			logger.Debug("预览商品已不在目录中", "id", id)
			return
		}
		current.Apply(detail)
		p.view.ShowPreview(pkgif.PreviewCard{
			Product:  current.Info(),
			InBasket: p.state.IsProductInBasket(current),
		})
	})
}

func (p *Presenter) onCounterChanged(basket []*appstate.Product) {
	p.view.SetCounter(len(basket))
}

// ============================================================================
// 用户意图
// ============================================================================

func (p *Presenter) onCardSelect(payload any) {
	item, ok := p.resolve(payload)
	if !ok {
		return
	}
	if err := p.state.SetProductPreview(item); err != nil {
		logger.Warn("无法预览商品", "id", item.ID, "err", err)
	}
}

func (p *Presenter) onProductAdd(payload any) {
	item, ok := p.resolve(payload)
	if !ok {
		return
	}
	if err := p.state.AddProductToBasket(item); err != nil {
		if errors.Is(err, appstate.ErrPriceless) {
			p.view.ShowError(MsgPriceless)
			return
		}
		logger.Warn("加入购物车失败", "id", item.ID, "err", err)
		return
	}
	p.view.Close()
}

// onProductRemove 按 ID 移除，购物车里可能留有已不在目录中的商品
func (p *Presenter) onProductRemove(payload any) {
	if id, ok := productID(payload); ok {
		p.state.RemoveProductFromBasket(id)
	}
}

func (p *Presenter) onOrderOpen(any) {
	if len(p.state.PurchaseIDs()) == 0 {
		p.view.ShowError(MsgEmptyBasket)
		return
	}
	p.view.ShowDeliveryForm()
	p.state.BeginCheckout()
}

func (p *Presenter) onPaymentChange(payload any) {
	value, ok := formValue(payload)
	if !ok {
		return
	}
	p.state.SetPaymentMethod(types.PaymentMethod(value))
}

func (p *Presenter) onAddressChange(payload any) {
	value, ok := formValue(payload)
	if !ok {
		return
	}
	p.state.SetOrderFieldDelivery(value)
}

func (p *Presenter) onOrderSubmit(any) {
	if !p.state.ValidateOrder(types.PhaseDelivery) {
		return
	}
	p.view.ShowContactForm()
}

func (p *Presenter) onContactChange(payload any) {
	change, ok := contactChange(payload)
	if !ok {
		logger.Warn("无法识别的联系人载荷", "payload", payload)
		return
	}
	if err := p.state.SetOrderFieldContact(types.ContactField(change.Field), change.Value); err != nil {
		logger.Warn("忽略未知的联系人字段", "field", change.Field)
	}
}

func (p *Presenter) onContactsSubmit(any) {
	if !p.state.ValidateOrder(types.PhaseContact) || !p.state.IsValid() {
		return
	}

	order, ctx := p.state.OrderForSubmission(), p.ctx
	loop.Await(p.loop, func() (types.OrderResult, error) {
		return p.api.OrderProducts(ctx, order)
	}, func(result types.OrderResult, err error) {
		if err != nil {
			logger.Warn("下单失败", "err", err)
			p.view.ShowError(MsgOrderFailed)
			return
		}
		p.state.ResetBasket()
		p.state.ResetOrder()
		p.view.ShowSuccess(result)
	})
}

// ============================================================================
// 辅助函数
// ============================================================================

// resolve 把载荷解析为目录中的商品
func (p *Presenter) resolve(payload any) (*appstate.Product, bool) {
	id, ok := productID(payload)
	if !ok {
		return nil, false
	}
	return p.state.FindProduct(id)
}

// productID 从商品实例、商品信息或 ID 中取出商品 ID
func productID(payload any) (string, bool) {
	switch v := payload.(type) {
	case *appstate.Product:
		if v != nil {
			return v.ID, true
		}
	case types.ProductInfo:
		return v.ID, true
	case string:
		return v, true
	}
	logger.Warn("无法识别的商品载荷", "payload", payload)
	return "", false
}

func (p *Presenter) basketView() pkgif.BasketView {
	basket := p.state.Basket()
	items := make([]types.ProductInfo, 0, len(basket))
	for _, item := range basket {
		items = append(items, item.Info())
	}
	return pkgif.BasketView{Items: items, Total: p.state.GetTotal()}
}

// contactChange 接受 FormChange 或 Trigger 合并出的 {"field", "value"} 映射
func contactChange(payload any) (types.FormChange, bool) {
	switch v := payload.(type) {
	case types.FormChange:
		return v, true
	case *types.FormChange:
		if v != nil {
			return *v, true
		}
	case map[string]any:
		field, fok := v["field"].(string)
		value, vok := v["value"].(string)
		if fok && vok {
			return types.FormChange{Field: field, Value: value}, true
		}
	}
	return types.FormChange{}, false
}

// formValue 从表单载荷中取值
func formValue(payload any) (string, bool) {
	switch v := payload.(type) {
	case string:
		return v, true
	case types.PaymentMethod:
		return string(v), true
	case types.FormChange:
		return v.Value, true
	case map[string]any:
		for _, key := range []string{"value", "target"} {
			if s, ok := v[key].(string); ok {
				return s, true
			}
		}
	}
	logger.Warn("无法识别的表单载荷", "payload", payload)
	return "", false
}
