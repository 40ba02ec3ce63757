package appstate

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BMIWB/go-larek/pkg/lib/log"
	"github.com/BMIWB/go-larek/pkg/types"
)

// TestAppData_BeginCheckout 测试开始结账
func TestAppData_BeginCheckout(t *testing.T) {
	a, j := newTestState()
	require.NoError(t, a.AddProductToBasket(mustFind(a, "p1")))
	require.NoError(t, a.AddProductToBasket(mustFind(a, "p2")))
	a.SetOrderFieldDelivery("stale address")
	j.reset()

	order := a.BeginCheckout()

	assert.Equal(t, []string{"p1", "p2"}, order.Items)
	assert.Equal(t, "2250", order.Total.String())
	assert.Empty(t, order.Address, "草稿已重置")
	assert.Equal(t, []string{types.EventDeliveryErrors}, j.names())

	data, _ := j.last(types.EventDeliveryErrors)
	errs := data.(types.FormErrors)
	assert.True(t, errs.Has("payment"))
	assert.True(t, errs.Has("address"))
}

// TestAppData_ResetOrder 测试重置订单
func TestAppData_ResetOrder(t *testing.T) {
	a, j := newTestState()
	a.SetPaymentMethod(types.PaymentCard)
	a.SetOrderFieldDelivery("Main st 1")
	require.NoError(t, a.SetOrderFieldContact(types.FieldEmail, "a@b.c"))
	require.NoError(t, a.SetOrderFieldContact(types.FieldPhone, "+7000"))
	require.True(t, a.IsValid())
	j.reset()

	a.ResetOrder()

	assert.Equal(t, types.Order{}, a.Order())
	assert.False(t, a.IsValid())
	assert.Empty(t, a.FormErrors())
	assert.Empty(t, j.names(), "重置订单不发布事件")
}

// TestAppData_SetOrderFieldContact 测试联系人字段
func TestAppData_SetOrderFieldContact(t *testing.T) {
	a, j := newTestState()

	require.NoError(t, a.SetOrderFieldContact(types.FieldEmail, "a@b.c"))
	assert.Equal(t, "a@b.c", a.Order().Email)
	assert.Equal(t, []string{types.EventContactErrors}, j.names())

	j.reset()
	assert.ErrorIs(t, a.SetOrderFieldContact("address", "x"), ErrUnknownField)
	assert.Empty(t, j.names())
	assert.Empty(t, a.Order().Address)
}

// TestAppData_OrderIsCopy 测试订单快照为副本
func TestAppData_OrderIsCopy(t *testing.T) {
	a, _ := newTestState()
	require.NoError(t, a.AddProductToBasket(mustFind(a, "p1")))
	a.BeginCheckout()

	o := a.Order()
	o.Items[0] = "tampered"
	assert.Equal(t, []string{"p1"}, a.Order().Items)
}

// ============================================================================
// 金额
// ============================================================================

// TestAppData_CalculateTotal 测试按目录价格计算总额
func TestAppData_CalculateTotal(t *testing.T) {
	a := NewFromSnapshot(nil, Snapshot{
		Catalog: testCatalog(),
		Order:   types.Order{Items: []string{"p1", "p2"}},
	})
	assert.Equal(t, "2250", a.CalculateTotal().String())
	assert.True(t, New(nil).CalculateTotal().IsZero())
}

// TestAppData_CalculateTotal_SkipsUnknown 测试跳过无价或未知商品并记录警告
func TestAppData_CalculateTotal_SkipsUnknown(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	log.SetOutputWithLevel(&buf, log.LevelWarn)
	t.Cleanup(func() { log.SetDefault(prev) })

	a := NewFromSnapshot(nil, Snapshot{
		Catalog: testCatalog(),
		Order:   types.Order{Items: []string{"p1", "ghost", "p3"}},
	})

	assert.Equal(t, "750", a.CalculateTotal().String())
	out := buf.String()
	assert.Contains(t, out, "id=ghost")
	assert.Contains(t, out, "id=p3")
	assert.Contains(t, out, "component=storefront/appstate")
}

// TestAppData_OrderForSubmission 测试提交时重新计算总额
func TestAppData_OrderForSubmission(t *testing.T) {
	a, _ := newTestState()
	require.NoError(t, a.AddProductToBasket(mustFind(a, "p1")))
	require.NoError(t, a.AddProductToBasket(mustFind(a, "p2")))
	a.BeginCheckout()

	// 结账后价格变动
	updated := testCatalog()
	updated[1].Price = types.NewPrice(1000)
	a.SetCatalog(updated)

	assert.Equal(t, "2250", a.Order().Total.String(), "草稿保留开始结账时的总额")
	assert.Equal(t, "1750", a.OrderForSubmission().Total.String())
	assert.Equal(t, []string{"p1", "p2"}, a.OrderForSubmission().Items)
}
