package features

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	larek "github.com/BMIWB/go-larek"
	"github.com/BMIWB/go-larek/internal/core/eventbus"
	"github.com/BMIWB/go-larek/internal/storefront/appstate"
	"github.com/BMIWB/go-larek/internal/storefront/presenter"
	pkgif "github.com/BMIWB/go-larek/pkg/interfaces"
	"github.com/BMIWB/go-larek/pkg/types"
)

// shopperView 记录 Presenter 对渲染层的调用
type shopperView struct {
	presenter.NopRenderer

	mu      sync.Mutex
	counter int
	errors  []string
	success []types.OrderResult
}

func (v *shopperView) SetCounter(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.counter = n
}

func (v *shopperView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errors = append(v.errors, message)
}

func (v *shopperView) ShowSuccess(result types.OrderResult) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.success = append(v.success, result)
}

type checkoutTestContext struct {
	shop *larek.Shop
	view *shopperView

	mu             sync.Mutex
	deliveryErrors types.FormErrors
	contactErrors  types.FormErrors
}

func (c *checkoutTestContext) reset() error {
	c.view = &shopperView{}
	c.deliveryErrors = nil
	c.contactErrors = nil

	shop, err := larek.New(larek.WithInMemoryBackend(nil), larek.WithRenderer(c.view))
	if err != nil {
		return err
	}
	shop.Events().On(pkgif.Name(types.EventDeliveryErrors), eventbus.Typed(func(errs types.FormErrors) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.deliveryErrors = errs
	}))
	shop.Events().On(pkgif.Name(types.EventContactErrors), eventbus.Typed(func(errs types.FormErrors) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.contactErrors = errs
	}))
	c.shop = shop
	return nil
}

func (c *checkoutTestContext) stop() error {
	if c.shop == nil {
		return nil
	}
	err := c.shop.Stop(context.Background())
	c.shop = nil
	return err
}

// dispatch 投递用户意图并等待处理完毕
func (c *checkoutTestContext) dispatch(event string, payload any) error {
	if err := c.shop.Dispatch(event, payload); err != nil {
		return err
	}
	c.shop.Flush()
	return nil
}

func (c *checkoutTestContext) productID(title string) (string, error) {
	var id string
	err := c.shop.Inspect(func(state *appstate.AppData) {
		for _, p := range state.Catalog() {
			if p.Title == title {
				id = p.ID
				return
			}
		}
	})
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("product %q is not in the catalog", title)
	}
	return id, nil
}

// ============================================================================
// Given
// ============================================================================

func (c *checkoutTestContext) aRunningShopWithTheDefaultCatalog() error {
	if err := c.shop.Start(context.Background()); err != nil {
		return err
	}
	c.shop.Flush()
	return nil
}

// ============================================================================
// When
// ============================================================================

func (c *checkoutTestContext) iAddToTheBasket(title string) error {
	id, err := c.productID(title)
	if err != nil {
		return err
	}
	return c.dispatch(types.EventProductAdd, id)
}

func (c *checkoutTestContext) iRemoveFromTheBasket(title string) error {
	id, err := c.productID(title)
	if err != nil {
		return err
	}
	return c.dispatch(types.EventProductRemove, id)
}

func (c *checkoutTestContext) iOpenTheOrderForm() error {
	return c.dispatch(types.EventOrderOpen, nil)
}

func (c *checkoutTestContext) iChoosePayment(method string) error {
	return c.dispatch(types.EventPaymentChange, types.PaymentMethod(method))
}

func (c *checkoutTestContext) iEnterAddress(address string) error {
	return c.dispatch(types.EventAddressChange, address)
}

func (c *checkoutTestContext) iSubmitTheDeliveryForm() error {
	return c.dispatch(types.EventOrderSubmit, nil)
}

func (c *checkoutTestContext) iEnterEmail(email string) error {
	return c.dispatch(types.ContactChangeEvent(types.FieldEmail), types.FormChange{Field: string(types.FieldEmail), Value: email})
}

func (c *checkoutTestContext) iEnterPhone(phone string) error {
	return c.dispatch(types.ContactChangeEvent(types.FieldPhone), types.FormChange{Field: string(types.FieldPhone), Value: phone})
}

func (c *checkoutTestContext) iSubmitTheContactForm() error {
	return c.dispatch(types.EventContactsSubmit, nil)
}

// ============================================================================
// Then
// ============================================================================

func (c *checkoutTestContext) theCatalogHasProducts(n int) error {
	var got int
	if err := c.shop.Inspect(func(state *appstate.AppData) {
		got = len(state.Catalog())
	}); err != nil {
		return err
	}
	if got != n {
		return fmt.Errorf("expected %d products, got %d", n, got)
	}
	return nil
}

func (c *checkoutTestContext) theBasketCounterIs(n int) error {
	c.view.mu.Lock()
	defer c.view.mu.Unlock()
	if c.view.counter != n {
		return fmt.Errorf("expected counter %d, got %d", n, c.view.counter)
	}
	return nil
}

func (c *checkoutTestContext) theBasketTotalIs(total int) error {
	var got decimal.Decimal
	if err := c.shop.Inspect(func(state *appstate.AppData) {
		got = state.GetTotal()
	}); err != nil {
		return err
	}
	if !got.Equal(decimal.NewFromInt(int64(total))) {
		return fmt.Errorf("expected total %d, got %s", total, got)
	}
	return nil
}

func (c *checkoutTestContext) anOrderWithTotalIsAccepted(total int) error {
	orders := c.shop.Orders()
	if len(orders) != 1 {
		return fmt.Errorf("expected 1 order, got %d", len(orders))
	}
	if !orders[0].Order.Total.Equal(decimal.NewFromInt(int64(total))) {
		return fmt.Errorf("expected order total %d, got %s", total, orders[0].Order.Total)
	}

	c.view.mu.Lock()
	defer c.view.mu.Unlock()
	if len(c.view.success) != 1 || c.view.success[0].ID != orders[0].ID {
		return fmt.Errorf("success view not shown for order %s", orders[0].ID)
	}
	return nil
}

func (c *checkoutTestContext) noOrderIsAccepted() error {
	if n := len(c.shop.Orders()); n != 0 {
		return fmt.Errorf("expected no orders, got %d", n)
	}
	return nil
}

func (c *checkoutTestContext) noErrorIsShown() error {
	c.view.mu.Lock()
	defer c.view.mu.Unlock()
	if len(c.view.errors) != 0 {
		return fmt.Errorf("unexpected errors: %v", c.view.errors)
	}
	return nil
}

func (c *checkoutTestContext) theErrorIsShown(message string) error {
	c.view.mu.Lock()
	defer c.view.mu.Unlock()
	for _, e := range c.view.errors {
		if e == message {
			return nil
		}
	}
	return fmt.Errorf("expected error %q, got %v", message, c.view.errors)
}

func (c *checkoutTestContext) theDeliveryErrorsAre(expected string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if got := c.deliveryErrors.Join("; "); got != expected {
		return fmt.Errorf("expected delivery errors %q, got %q", expected, got)
	}
	return nil
}

func (c *checkoutTestContext) theDeliveryFormIsValid() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.deliveryErrors == nil || !c.deliveryErrors.Valid() {
		return fmt.Errorf("expected valid delivery form, got %v", c.deliveryErrors)
	}
	return nil
}

func (c *checkoutTestContext) theContactErrorsAre(expected string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if got := c.contactErrors.Join("; "); got != expected {
		return fmt.Errorf("expected contact errors %q, got %q", expected, got)
	}
	return nil
}

// ============================================================================
// 场景注册
// ============================================================================

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, tc.reset()
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		return ctx, tc.stop()
	})

	// Given
	ctx.Step(`^a running shop with the default catalog$`, tc.aRunningShopWithTheDefaultCatalog)

	// When
	ctx.Step(`^I add "([^"]*)" to the basket$`, tc.iAddToTheBasket)
	ctx.Step(`^I remove "([^"]*)" from the basket$`, tc.iRemoveFromTheBasket)
	ctx.Step(`^I open the order form$`, tc.iOpenTheOrderForm)
	ctx.Step(`^I choose payment "([^"]*)"$`, tc.iChoosePayment)
	ctx.Step(`^I enter address "([^"]*)"$`, tc.iEnterAddress)
	ctx.Step(`^I submit the delivery form$`, tc.iSubmitTheDeliveryForm)
	ctx.Step(`^I enter email "([^"]*)"$`, tc.iEnterEmail)
	ctx.Step(`^I enter phone "([^"]*)"$`, tc.iEnterPhone)
	ctx.Step(`^I submit the contact form$`, tc.iSubmitTheContactForm)

	// Then
	ctx.Step(`^the catalog has (\d+) products$`, tc.theCatalogHasProducts)
	ctx.Step(`^the basket counter is (\d+)$`, tc.theBasketCounterIs)
	ctx.Step(`^the basket total is (\d+)$`, tc.theBasketTotalIs)
	ctx.Step(`^an order with total (\d+) is accepted$`, tc.anOrderWithTotalIsAccepted)
	ctx.Step(`^no order is accepted$`, tc.noOrderIsAccepted)
	ctx.Step(`^no error is shown$`, tc.noErrorIsShown)
	ctx.Step(`^the error "([^"]*)" is shown$`, tc.theErrorIsShown)
	ctx.Step(`^the delivery errors are "([^"]*)"$`, tc.theDeliveryErrorsAre)
	ctx.Step(`^the delivery form is valid$`, tc.theDeliveryFormIsValid)
	ctx.Step(`^the contact errors are "([^"]*)"$`, tc.theContactErrorsAre)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"checkout.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
