package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	larek "github.com/BMIWB/go-larek"
	"github.com/BMIWB/go-larek/internal/storefront/appstate"
	"github.com/BMIWB/go-larek/internal/storefront/backend"
)

func startConsoleShop(t *testing.T) (*larek.Shop, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}
	shop, err := larek.New(
		larek.WithInMemoryBackend(nil),
		larek.WithRenderer(newConsoleView(out)),
	)
	require.NoError(t, err)
	require.NoError(t, shop.Start(context.Background()))
	t.Cleanup(func() { _ = shop.Stop(context.Background()) })
	shop.Flush()
	return shop, out
}

// TestRepl_Checkout 测试终端完成一次结账
func TestRepl_Checkout(t *testing.T) {
	shop, out := startConsoleShop(t)

	script := strings.Join([]string{
		"add 1",
		"add 2",
		"basket",
		"order",
		"pay card",
		"address Spb Vosstania 1",
		"next",
		"email test@test.ru",
		"phone +71234567890",
		"submit",
		"quit",
	}, "\n")

	require.NoError(t, repl(context.Background(), shop, strings.NewReader(script), out))
	shop.Flush()

	require.Len(t, shop.Orders(), 1)
	assert.Contains(t, out.String(), "合计: 2200 synapses")
	assert.Contains(t, out.String(), "订单已提交: "+shop.Orders()[0].ID)
}

// TestExecute_UnknownCommand 测试未知命令
func TestExecute_UnknownCommand(t *testing.T) {
	shop, out := startConsoleShop(t)

	quit, err := execute(shop, out, "dance")
	assert.False(t, quit)
	assert.Error(t, err)
}

// TestResolveProduct 测试按序号和 ID 解析商品
func TestResolveProduct(t *testing.T) {
	shop, _ := startConsoleShop(t)
	first := backend.DefaultCatalog()[0].ID

	id, err := resolveProduct(shop, "1")
	require.NoError(t, err)
	assert.Equal(t, first, id)

	id, err = resolveProduct(shop, first)
	require.NoError(t, err)
	assert.Equal(t, first, id)

	_, err = resolveProduct(shop, "99")
	assert.Error(t, err)
	_, err = resolveProduct(shop, "")
	assert.Error(t, err)
}

// TestExecute_RemoveFromBasket 测试 remove 按购物车解析，目录刷新后仍能移除下架商品
func TestExecute_RemoveFromBasket(t *testing.T) {
	shop, out := startConsoleShop(t)
	catalog := backend.DefaultCatalog()

	for _, line := range []string{"add 1", "add 2"} {
		_, err := execute(shop, out, line)
		require.NoError(t, err)
	}
	shop.Flush()
	require.NoError(t, shop.Inspect(func(state *appstate.AppData) {
		state.SetCatalog(catalog[1:])
	}))

	_, err := resolveProduct(shop, catalog[0].ID)
	assert.Error(t, err, "下架商品不在目录中")

	_, err = execute(shop, out, "remove "+catalog[0].ID)
	require.NoError(t, err)
	shop.Flush()

	var ids []string
	require.NoError(t, shop.Inspect(func(state *appstate.AppData) { ids = state.PurchaseIDs() }))
	assert.Equal(t, []string{catalog[1].ID}, ids)

	// 序号按购物车排列
	_, err = execute(shop, out, "remove 1")
	require.NoError(t, err)
	shop.Flush()
	require.NoError(t, shop.Inspect(func(state *appstate.AppData) { ids = state.PurchaseIDs() }))
	assert.Empty(t, ids)

	_, err = execute(shop, out, "remove 1")
	assert.Error(t, err)
}

// TestExecute_List 测试 list 输出目录
func TestExecute_List(t *testing.T) {
	shop, out := startConsoleShop(t)
	out.Reset()

	quit, err := execute(shop, out, "list")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Contains(t, out.String(), "priceless")
	assert.Contains(t, out.String(), "750 synapses")
}
