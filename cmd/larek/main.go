// Package main 提供 go-larek 终端店面
//
// 在终端中浏览目录、管理购物车并完成结账。默认通过 HTTP 访问接口，
// 使用 -memory 时改用内存后端。
//
// 使用方法:
//
//	larek -config larek.json
//	larek -memory
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	larek "github.com/BMIWB/go-larek"
	"github.com/BMIWB/go-larek/config"
	"github.com/BMIWB/go-larek/internal/storefront/appstate"
	"github.com/BMIWB/go-larek/internal/storefront/backend"
	"github.com/BMIWB/go-larek/pkg/lib/log"
	"github.com/BMIWB/go-larek/pkg/types"
)

var logger = log.Logger("larek/cmd")

var (
	configFile  = flag.String("config", "", "配置文件路径（同时读取 LAREK_* 环境变量）")
	memory      = flag.Bool("memory", false, "使用内存后端代替 HTTP 接口")
	catalogFile = flag.String("catalog", "", "内存后端的目录 JSON 文件")
	logLevel    = flag.String("log-level", "", "日志级别覆盖 (debug/info/warn/error)")
	showVersion = flag.Bool("version", false, "显示版本信息")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if *showVersion {
		fmt.Println(larek.VersionInfo())
		return nil
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	closeLog, err := setupLogging(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := []larek.Option{
		larek.WithConfig(cfg),
		larek.WithRenderer(newConsoleView(os.Stdout)),
	}
	if *memory {
		var catalog []types.ProductInfo
		if *catalogFile != "" {
			if catalog, err = backend.LoadCatalog(*catalogFile); err != nil {
				return err
			}
		}
		opts = append(opts, larek.WithInMemoryBackend(catalog))
	}

	shop, err := larek.New(opts...)
	if err != nil {
		return fmt.Errorf("创建店面失败: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fmt.Printf("📦 %s\n", larek.VersionInfo())
	logger.Info("启动店面", "version", larek.Version, "memory", *memory)

	if err := shop.Start(ctx); err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}
	defer func() { _ = shop.Stop(context.Background()) }()
	shop.Flush()

	printHelp(os.Stdout)
	return repl(ctx, shop, os.Stdin, os.Stdout)
}

// setupLogging 按配置设置默认 logger，返回关闭日志文件的函数
func setupLogging(cfg config.LogConfig) (func(), error) {
	var w io.Writer = os.Stderr
	closeFn := func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("打开日志文件失败: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}
	if err := log.Setup(w, cfg.Format, cfg.Level); err != nil {
		closeFn()
		return nil, err
	}
	return closeFn, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// 交互命令
// ═══════════════════════════════════════════════════════════════════════════

func printHelp(out io.Writer) {
	fmt.Fprint(out, `命令:
  list                 显示目录
  show <序号|ID>       查看商品详情
  add <序号|ID>        加入购物车
  remove <序号|ID>     移出购物车（序号按 basket 列表）
  basket               查看购物车
  order                开始结账
  pay card|cash        选择支付方式
  address <地址>       填写地址
  next                 提交配送表单
  email <邮箱>         填写邮箱
  phone <电话>         填写电话
  submit               提交订单
  help                 显示帮助
  quit                 退出
`)
}

func repl(ctx context.Context, shop *larek.Shop, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		fmt.Fprint(out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			quit, err := execute(shop, out, line)
			if err != nil {
				fmt.Fprintf(out, "! %v\n", err)
			}
			if quit {
				return nil
			}
			shop.Flush()
		}
	}
}

// execute 执行一条命令，返回是否退出
func execute(shop *larek.Shop, out io.Writer, line string) (bool, error) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "":
		return false, nil
	case "quit", "exit":
		return true, nil
	case "help":
		printHelp(out)
		return false, nil
	case "list":
		return false, shop.Inspect(func(state *appstate.AppData) {
			for i, p := range state.Catalog() {
				fmt.Fprintf(out, "%2d. [%s] %s  %s\n", i+1, p.Category, p.Title, formatPrice(p.Info()))
			}
		})
	case "show", "add":
		id, err := resolveProduct(shop, arg)
		if err != nil {
			return false, err
		}
		event := types.EventCardSelect
		if cmd == "add" {
			event = types.EventProductAdd
		}
		return false, shop.Dispatch(event, id)
	case "remove":
		id, err := resolveBasketItem(shop, arg)
		if err != nil {
			return false, err
		}
		return false, shop.Dispatch(types.EventProductRemove, id)
	case "basket":
		return false, shop.Dispatch(types.EventBasketOpen, nil)
	case "order":
		return false, shop.Dispatch(types.EventOrderOpen, nil)
	case "pay":
		return false, shop.Dispatch(types.EventPaymentChange, types.PaymentMethod(arg))
	case "address":
		return false, shop.Dispatch(types.EventAddressChange, arg)
	case "next":
		return false, shop.Dispatch(types.EventOrderSubmit, nil)
	case "email", "phone":
		return false, shop.Dispatch(types.ContactChangeEvent(types.ContactField(cmd)),
			types.FormChange{Field: cmd, Value: arg})
	case "submit":
		return false, shop.Dispatch(types.EventContactsSubmit, nil)
	default:
		return false, fmt.Errorf("未知命令 %q，输入 help 查看帮助", cmd)
	}
}

// resolveProduct 按目录序号或 ID 解析商品 ID
func resolveProduct(shop *larek.Shop, arg string) (string, error) {
	return pick(shop, arg, (*appstate.AppData).Catalog)
}

// resolveBasketItem 按购物车序号或 ID 解析商品 ID
//
// 目录刷新后购物车里可能留有已下架的商品，它们只能从购物车中找到。
func resolveBasketItem(shop *larek.Shop, arg string) (string, error) {
	return pick(shop, arg, (*appstate.AppData).Basket)
}

// pick 在 list 返回的商品中按 1 起始的序号或 ID 查找
func pick(shop *larek.Shop, arg string, list func(*appstate.AppData) []*appstate.Product) (string, error) {
	if arg == "" {
		return "", fmt.Errorf("缺少商品序号或 ID")
	}
	var (
		id    string
		found bool
	)
	err := shop.Inspect(func(state *appstate.AppData) {
		items := list(state)
		if n, err := strconv.Atoi(arg); err == nil {
			if n >= 1 && n <= len(items) {
				id, found = items[n-1].ID, true
			}
			return
		}
		for _, p := range items {
			if p.ID == arg {
				id, found = p.ID, true
				return
			}
		}
	})
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("商品 %q 不存在", arg)
	}
	return id, nil
}
