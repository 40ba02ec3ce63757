package loop

import (
	"context"

	"go.uber.org/fx"

	"github.com/BMIWB/go-larek/config"
)

// Params Loop 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Module 返回 Fx 模块
//
// OnStart 启动循环协程，OnStop 停止并等待其退出。
func Module() fx.Option {
	return fx.Module("loop",
		fx.Provide(NewFromParams),
		fx.Invoke(registerLifecycle),
	)
}

// NewFromParams 从参数创建 Loop
func NewFromParams(p Params) *Loop {
	size := config.DefaultLoopConfig().QueueSize
	if p.UnifiedCfg != nil {
		size = p.UnifiedCfg.Loop.QueueSize
	}
	return New(size)
}

func registerLifecycle(lc fx.Lifecycle, l *Loop) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go l.Run(ctx)
			logger.Debug("事件循环已启动")
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-l.Done():
				logger.Debug("事件循环已停止")
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
