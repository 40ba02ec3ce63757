package appstate

import (
	"go.uber.org/fx"

	pkgif "github.com/BMIWB/go-larek/pkg/interfaces"
)

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("appstate",
		fx.Provide(func(events pkgif.Events) *AppData {
			return New(events)
		}),
	)
}
