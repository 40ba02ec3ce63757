package presenter

import (
	"context"

	"go.uber.org/fx"

	"github.com/BMIWB/go-larek/internal/core/loop"
	"github.com/BMIWB/go-larek/internal/storefront/appstate"
	pkgif "github.com/BMIWB/go-larek/pkg/interfaces"
)

// Params Presenter 依赖参数
type Params struct {
	fx.In

	State  *appstate.AppData
	Events pkgif.Events
	API    pkgif.ShopAPI
	View   pkgif.Renderer `optional:"true"`
	Loop   *loop.Loop
}

// Module 返回 Fx 模块
//
// OnStart 在循环中订阅事件并请求目录，OnStop 取消订阅。
func Module() fx.Option {
	return fx.Module("presenter",
		fx.Provide(ProvidePresenter),
		fx.Invoke(registerLifecycle),
	)
}

// ProvidePresenter 创建 Presenter，未提供渲染层时使用 NopRenderer
func ProvidePresenter(p Params) *Presenter {
	view := p.View
	if view == nil {
		view = NopRenderer{}
	}
	return New(p.State, p.Events, p.API, view, p.Loop)
}

func registerLifecycle(lc fx.Lifecycle, p *Presenter, l *loop.Loop) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return l.Post(func() {
				p.Bind()
				p.LoadCatalog()
			})
		},
		OnStop: func(_ context.Context) error {
			if err := l.Call(p.Unbind); err != nil {
				// 循环已停止，直接在当前协程取消订阅
				p.Unbind()
			}
			return nil
		},
	})
}
