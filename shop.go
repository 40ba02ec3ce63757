package larek

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/fx"

	"github.com/BMIWB/go-larek/config"
	"github.com/BMIWB/go-larek/internal/core/eventbus"
	"github.com/BMIWB/go-larek/internal/core/loop"
	"github.com/BMIWB/go-larek/internal/core/metrics"
	"github.com/BMIWB/go-larek/internal/storefront/appstate"
	"github.com/BMIWB/go-larek/internal/storefront/backend"
	"github.com/BMIWB/go-larek/internal/storefront/presenter"
	pkgif "github.com/BMIWB/go-larek/pkg/interfaces"
	"github.com/BMIWB/go-larek/pkg/lib/log"
)

var logger = log.Logger("larek")

// initializeTimeout Fx 应用启动的最长时间
const initializeTimeout = 30 * time.Second

// ════════════════════════════════════════════════════════════════════════════
//                              Shop
// ════════════════════════════════════════════════════════════════════════════

// Shop 店面核心
//
// Shop 只能启动一次：Stop 之后进入关闭状态，需要重新 New。
type Shop struct {
	mu      sync.Mutex
	app     *fx.App
	config  *config.Config
	started bool
	closed  bool

	bus       *eventbus.Bus
	loop      *loop.Loop
	state     *appstate.AppData
	presenter *presenter.Presenter
	metrics   *metrics.Metrics
	api       pkgif.ShopAPI

	// store 仅在使用内存后端时非空
	store *backend.Store
}

// New 创建店面
//
// 只构建依赖图，不启动任何协程。
func New(opts ...Option) (*Shop, error) {
	o := newOptions()
	if err := o.apply(opts...); err != nil {
		return nil, err
	}

	s := &Shop{config: o.config}
	app, err := buildFxApp(o, s)
	if err != nil {
		return nil, err
	}
	s.app = app
	return s, nil
}

// Start 启动事件循环并加载商品目录
//
// 目录请求是异步的，需要等待结果时调用 Flush。
func (s *Shop) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrShopClosed
	}
	if s.started {
		return ErrAlreadyStarted
	}

	initCtx, cancel := context.WithTimeout(ctx, initializeTimeout)
	defer cancel()

	if err := s.app.Start(initCtx); err != nil {
		logger.Error("店面启动失败", "error", err)
		return fmt.Errorf("initialize failed: %w", err)
	}

	s.started = true
	logger.Info("店面已启动")
	return nil
}

// Stop 停止店面并释放资源
//
// 未执行的任务被丢弃，进行中的网络请求结果会被忽略。
func (s *Shop) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrShopClosed
	}
	if !s.started {
		return ErrNotStarted
	}

	s.closed = true
	s.started = false
	if err := s.app.Stop(ctx); err != nil {
		logger.Error("停止店面失败", "error", err)
		return fmt.Errorf("stop fx app: %w", err)
	}
	logger.Info("店面已停止")
	return nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              事件投递
// ════════════════════════════════════════════════════════════════════════════

// Dispatch 把一次用户意图投递到事件循环
//
// 立即返回；处理器 panic 只记录日志。
func (s *Shop) Dispatch(event string, payload any) error {
	if err := s.checkRunning(); err != nil {
		return err
	}
	return s.loop.Post(func() {
		if err := s.bus.Emit(event, payload); err != nil {
			logger.Warn("事件处理失败", "event", event, "error", err)
		}
	})
}

// Trigger 返回一个在事件循环上发布固定事件的函数
//
// 合并规则与 Events.Trigger 相同：同名字段以 ctxData 为准。
func (s *Shop) Trigger(event string, ctxData map[string]any) func(data map[string]any) {
	emit := s.bus.Trigger(event, ctxData)
	return func(data map[string]any) {
		if err := s.checkRunning(); err != nil {
			logger.Debug("店面未运行，忽略事件", "event", event)
			return
		}
		if err := s.loop.Post(func() { emit(data) }); err != nil {
			logger.Debug("投递事件失败", "event", event, "error", err)
		}
	}
}

// Inspect 在事件循环上读取应用状态并等待完成
//
// fn 不应长时间阻塞。
func (s *Shop) Inspect(fn func(state *appstate.AppData)) error {
	if err := s.checkRunning(); err != nil {
		return err
	}
	return s.loop.Call(func() { fn(s.state) })
}

// Flush 等待已投递的事件和进行中的网络请求全部处理完毕
func (s *Shop) Flush() {
	s.loop.Flush()
}

// ════════════════════════════════════════════════════════════════════════════
//                              访问器
// ════════════════════════════════════════════════════════════════════════════

// Events 返回事件总线
//
// 订阅者在事件循环协程内被调用。
func (s *Shop) Events() pkgif.Events {
	return s.bus
}

// API 返回当前使用的网络协作方
func (s *Shop) API() pkgif.ShopAPI {
	return s.api
}

// Metrics 返回指标，未启用时为 nil
func (s *Shop) Metrics() *metrics.Metrics {
	return s.metrics
}

// Config 返回生效的配置
func (s *Shop) Config() *config.Config {
	return s.config
}

// Orders 返回内存后端已接受的订单，未使用内存后端时为 nil
func (s *Shop) Orders() []backend.OrderRecord {
	if s.store == nil {
		return nil
	}
	return s.store.Orders()
}

func (s *Shop) checkRunning() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.closed:
		return ErrShopClosed
	case !s.started:
		return ErrNotStarted
	}
	return nil
}
