// Package main 提供独立的内存后端服务
//
// 以 HTTP 形式提供商品目录和下单接口，供终端店面或前端开发调试使用；
// 启用指标时在 /metrics 暴露 Prometheus 指标。
//
// 使用方法:
//
//	larek-server -addr :8080 -catalog catalog.json
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	larek "github.com/BMIWB/go-larek"
	"github.com/BMIWB/go-larek/config"
	"github.com/BMIWB/go-larek/internal/core/metrics"
	"github.com/BMIWB/go-larek/internal/storefront/backend"
	"github.com/BMIWB/go-larek/pkg/lib/log"
)

var logger = log.Logger("larek/server")

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ 错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configFile := flag.String("config", "", "配置文件路径（同时读取 LAREK_* 环境变量）")
	addr := flag.String("addr", "", "监听地址覆盖")
	catalog := flag.String("catalog", "", "商品目录 JSON 文件覆盖")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *catalog != "" {
		cfg.Server.CatalogFile = *catalog
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := log.Setup(os.Stderr, cfg.Log.Format, cfg.Log.Level); err != nil {
		return err
	}

	fmt.Println("╔══════════════════════════════════════════════════════╗")
	fmt.Println("║            go-larek Backend Server                   ║")
	fmt.Println("╚══════════════════════════════════════════════════════╝")
	fmt.Println(larek.VersionInfo())

	var server *backend.Server
	app := fx.New(
		fx.Supply(cfg),
		metrics.Module,
		backend.Module(),
		fx.Populate(&server),
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	)
	if err := app.Err(); err != nil {
		return fmt.Errorf("构建服务失败: %w", err)
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}

	fmt.Printf("接口: http://%s%s\n", server.Addr(), cfg.Server.APIPrefix)
	if cfg.Metrics.Enabled {
		fmt.Printf("指标: http://%s/metrics\n", server.Addr())
	}
	fmt.Println("按 Ctrl+C 退出")

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-signalCh
	logger.Info("收到信号，正在关闭", "signal", sig.String())

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	return app.Stop(stopCtx)
}
