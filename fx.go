package larek

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/BMIWB/go-larek/internal/core/eventbus"
	"github.com/BMIWB/go-larek/internal/core/loop"
	"github.com/BMIWB/go-larek/internal/core/metrics"
	"github.com/BMIWB/go-larek/internal/storefront/api"
	"github.com/BMIWB/go-larek/internal/storefront/appstate"
	"github.com/BMIWB/go-larek/internal/storefront/backend"
	"github.com/BMIWB/go-larek/internal/storefront/presenter"
	pkgif "github.com/BMIWB/go-larek/pkg/interfaces"
	"github.com/BMIWB/go-larek/pkg/lib/log"
)

var fxLogger = log.Logger("larek/fx")

// buildFxApp 构建 Fx 应用
//
// 加载顺序（按依赖）：
//  1. Metrics → EventBus → Loop
//  2. AppData → ShopAPI（HTTP 客户端、内存后端或自定义实现）
//  3. Renderer（可选）→ Presenter
//  4. 用户自定义 Fx 选项
//
// 停止时按反向顺序执行：Presenter 先在循环内取消订阅，随后停止循环，最后清空总线。
func buildFxApp(o *options, s *Shop) (*fx.App, error) {
	// ════════════════════════════════════════════════════════════════════════
	// 1. 配置验证（前置）
	// ════════════════════════════════════════════════════════════════════════
	if err := o.config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	modules := []fx.Option{
		fx.Supply(o.config),

		metrics.Module,
		eventbus.Module(),
		loop.Module(),
		appstate.Module(),
	}

	// ════════════════════════════════════════════════════════════════════════
	// 2. 网络协作方
	// ════════════════════════════════════════════════════════════════════════
	switch {
	case o.api != nil:
		custom := o.api
		modules = append(modules, fx.Provide(func() pkgif.ShopAPI { return custom }))
		fxLogger.Debug("使用自定义网络协作方")
	case o.memory:
		catalog := o.memoryCatalog
		if catalog == nil {
			catalog = backend.DefaultCatalog()
		}
		s.store = backend.NewStore(catalog)
		store := s.store
		modules = append(modules, fx.Provide(func() pkgif.ShopAPI { return store }))
		fxLogger.Debug("使用内存后端", "products", len(catalog))
	default:
		modules = append(modules, api.Module())
		fxLogger.Debug("使用 HTTP 客户端", "base_url", o.config.API.BaseURL)
	}

	// ════════════════════════════════════════════════════════════════════════
	// 3. 渲染层与 Presenter
	// ════════════════════════════════════════════════════════════════════════
	if o.view != nil {
		view := o.view
		modules = append(modules, fx.Provide(func() pkgif.Renderer { return view }))
	}
	modules = append(modules, presenter.Module())

	// ════════════════════════════════════════════════════════════════════════
	// 4. 用户自定义选项
	// ════════════════════════════════════════════════════════════════════════
	if len(o.userFxOptions) > 0 {
		modules = append(modules, o.userFxOptions...)
	}

	modules = append(modules,
		fx.Populate(&s.bus, &s.loop, &s.state, &s.presenter, &s.metrics, &s.api),
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	)

	app := fx.New(modules...)
	if err := app.Err(); err != nil {
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	return app, nil
}

// 编译期检查
var (
	_ pkgif.ShopAPI  = (*api.Client)(nil)
	_ pkgif.ShopAPI  = (*backend.Store)(nil)
	_ pkgif.Events   = (*eventbus.Bus)(nil)
	_ pkgif.Renderer = presenter.NopRenderer{}
)
