package backend

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/fx"

	"github.com/BMIWB/go-larek/config"
	"github.com/BMIWB/go-larek/internal/core/metrics"
)

// Server 后端 HTTP 服务
type Server struct {
	srv      *http.Server
	listener net.Listener
}

// NewServer 创建服务，metrics 非 nil 时挂载 /metrics
func NewServer(cfg config.ServerConfig, store *Store, m *metrics.Metrics) *Server {
	router := mux.NewRouter()
	RegisterRoutes(router, store, cfg.APIPrefix)
	if m != nil {
		router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	}

	return &Server{
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start 监听并在后台提供服务
func (s *Server) Start(_ context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	s.listener = ln
	logger.Info("后端服务已启动", "addr", ln.Addr().String())

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("后端服务异常退出", "err", err)
		}
	}()
	return nil
}

// Stop 优雅关闭
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Addr 返回实际监听地址
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.srv.Addr
	}
	return s.listener.Addr().String()
}

// ============================================================================
// Fx 模块
// ============================================================================

// Params 后端依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config   `optional:"true"`
	Metrics    *metrics.Metrics `optional:"true"`
}

// Module 返回 Fx 模块
//
// 提供 *Store 与 *Server，并在生命周期中启动/关闭服务。
func Module() fx.Option {
	return fx.Module("backend",
		fx.Provide(ProvideStore, ProvideServer),
		fx.Invoke(func(lc fx.Lifecycle, s *Server) {
			lc.Append(fx.Hook{OnStart: s.Start, OnStop: s.Stop})
		}),
	)
}

// ProvideStore 按配置加载目录
func ProvideStore(p Params) (*Store, error) {
	catalog := DefaultCatalog()
	if p.UnifiedCfg != nil && p.UnifiedCfg.Server.CatalogFile != "" {
		loaded, err := LoadCatalog(p.UnifiedCfg.Server.CatalogFile)
		if err != nil {
			return nil, err
		}
		catalog = loaded
	}
	return NewStore(catalog), nil
}

// ProvideServer 创建服务
func ProvideServer(p Params, store *Store) *Server {
	cfg := config.DefaultServerConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.Server
	}
	return NewServer(cfg, store, p.Metrics)
}
