package api

import (
	"go.uber.org/fx"

	"github.com/BMIWB/go-larek/config"
	"github.com/BMIWB/go-larek/internal/core/metrics"
	pkgif "github.com/BMIWB/go-larek/pkg/interfaces"
)

// Params 客户端依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config   `optional:"true"`
	Metrics    *metrics.Metrics `optional:"true"`
}

// Result 模块输出
type Result struct {
	fx.Out

	Client  *Client
	ShopAPI pkgif.ShopAPI
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("api",
		fx.Provide(ProvideClient),
	)
}

// ProvideClient 从配置创建客户端
func ProvideClient(p Params) (Result, error) {
	cfg := config.DefaultAPIConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.API
	}
	c, err := New(cfg, WithMetrics(p.Metrics))
	if err != nil {
		return Result{}, err
	}
	return Result{Client: c, ShopAPI: c}, nil
}
