package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	pkgif "github.com/BMIWB/go-larek/pkg/interfaces"
	"github.com/BMIWB/go-larek/pkg/types"
)

// consoleView 在终端输出店面内容
//
// 只在事件循环协程内被调用。
type consoleView struct {
	out     io.Writer
	counter int
}

func newConsoleView(out io.Writer) *consoleView {
	return &consoleView{out: out}
}

func (v *consoleView) RenderCatalog(items []types.ProductInfo) {
	fmt.Fprintln(v.out, "── 目录 ──")
	for i, item := range items {
		fmt.Fprintf(v.out, "%2d. [%s] %s  %s\n", i+1, item.Category, item.Title, formatPrice(item))
	}
}

func (v *consoleView) ShowPreview(card pkgif.PreviewCard) {
	p := card.Product
	fmt.Fprintf(v.out, "── %s ──\n%s\n%s\n价格: %s\n", p.Title, p.Category, p.Description, formatPrice(p))
	if card.InBasket {
		fmt.Fprintln(v.out, "（已在购物车中）")
	}
}

func (v *consoleView) ShowBasket(view pkgif.BasketView) {
	v.printBasket(view)
}

func (v *consoleView) UpdateBasket(pkgif.BasketView) {}

func (v *consoleView) SetCounter(n int) {
	if n != v.counter {
		fmt.Fprintf(v.out, "购物车: %d\n", n)
	}
	v.counter = n
}

func (v *consoleView) ShowDeliveryForm() {
	fmt.Fprintln(v.out, "── 配送 ── 使用 pay card|cash 和 address <地址>，完成后输入 next")
}

func (v *consoleView) SetDeliveryErrors(valid bool, errors string) {
	v.printErrors(valid, errors)
}

func (v *consoleView) ShowContactForm() {
	fmt.Fprintln(v.out, "── 联系人 ── 使用 email <邮箱> 和 phone <电话>，完成后输入 submit")
}

func (v *consoleView) SetContactErrors(valid bool, errors string) {
	v.printErrors(valid, errors)
}

func (v *consoleView) ShowSuccess(result types.OrderResult) {
	fmt.Fprintf(v.out, "订单已提交: %s，共 %s\n", result.ID, formatAmount(result.Total))
}

func (v *consoleView) ShowError(message string) {
	fmt.Fprintf(v.out, "! %s\n", message)
}

func (v *consoleView) Close() {}

func (v *consoleView) printBasket(view pkgif.BasketView) {
	fmt.Fprintln(v.out, "── 购物车 ──")
	if len(view.Items) == 0 {
		fmt.Fprintln(v.out, "（空）")
		return
	}
	for i, item := range view.Items {
		fmt.Fprintf(v.out, "%2d. %s  %s\n", i+1, item.Title, formatPrice(item))
	}
	fmt.Fprintf(v.out, "合计: %s\n", formatAmount(view.Total))
}

func (v *consoleView) printErrors(valid bool, errors string) {
	if valid {
		fmt.Fprintln(v.out, "✓ 表单有效")
		return
	}
	for _, msg := range strings.Split(errors, "; ") {
		fmt.Fprintf(v.out, "  - %s\n", msg)
	}
}

func formatPrice(p types.ProductInfo) string {
	if !p.Priced() {
		return "priceless"
	}
	return formatAmount(p.Price.Decimal)
}

func formatAmount(d decimal.Decimal) string {
	return d.String() + " synapses"
}

var _ pkgif.Renderer = (*consoleView)(nil)
