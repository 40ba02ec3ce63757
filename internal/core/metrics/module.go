package metrics

import (
	"go.uber.org/fx"

	"github.com/BMIWB/go-larek/config"
)

// Params Metrics 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Module 是 metrics 的 Fx 模块
var Module = fx.Module("metrics",
	fx.Provide(NewFromParams),
)

// NewFromParams 从参数创建 Metrics
//
// 未提供配置时使用默认配置；禁用时返回 nil。
func NewFromParams(p Params) *Metrics {
	cfg := config.DefaultMetricsConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.Metrics
	}
	if !cfg.Enabled {
		return nil
	}
	return New(cfg.Namespace)
}
