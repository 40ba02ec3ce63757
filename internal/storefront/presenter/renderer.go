package presenter

import (
	pkgif "github.com/BMIWB/go-larek/pkg/interfaces"
	"github.com/BMIWB/go-larek/pkg/types"
)

// NopRenderer 不渲染任何内容的渲染层，用于无界面运行
type NopRenderer struct{}

func (NopRenderer) RenderCatalog([]types.ProductInfo) {}
func (NopRenderer) ShowPreview(pkgif.PreviewCard) {}
func (NopRenderer) ShowBasket(pkgif.BasketView) {}
func (NopRenderer) UpdateBasket(pkgif.BasketView) {}
func (NopRenderer) SetCounter(int) {}
func (NopRenderer) ShowDeliveryForm() {}
func (NopRenderer) SetDeliveryErrors(bool, string) {}
func (NopRenderer) ShowContactForm() {}
func (NopRenderer) SetContactErrors(bool, string) {}
func (NopRenderer) ShowSuccess(types.OrderResult) {}
func (NopRenderer) ShowError(string) {}
func (NopRenderer) Close() {}

var _ pkgif.Renderer = NopRenderer{}
