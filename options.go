package larek

import (
	"fmt"

	"go.uber.org/fx"

	"github.com/BMIWB/go-larek/config"
	pkgif "github.com/BMIWB/go-larek/pkg/interfaces"
	"github.com/BMIWB/go-larek/pkg/types"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	config *config.Config

	// api 自定义网络协作方，为空时按配置创建 HTTP 客户端
	api pkgif.ShopAPI

	// memory 使用内存后端
	memory        bool
	memoryCatalog []types.ProductInfo

	view pkgif.Renderer

	userFxOptions []fx.Option
}

func newOptions() *options {
	return &options{config: config.NewConfig()}
}

func (o *options) apply(opts ...Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return err
		}
	}
	if o.api != nil && o.memory {
		return ErrConflictingAPI
	}
	return nil
}

// WithConfig 使用给定配置
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return fmt.Errorf("config is nil")
		}
		o.config = cfg
		return nil
	}
}

// WithConfigFile 从文件和 LAREK_* 环境变量加载配置
//
// path 为空时只读取环境变量。
func WithConfigFile(path string) Option {
	return func(o *options) error {
		cfg, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		o.config = cfg
		return nil
	}
}

// WithAPI 使用自定义网络协作方
func WithAPI(api pkgif.ShopAPI) Option {
	return func(o *options) error {
		o.api = api
		return nil
	}
}

// WithInMemoryBackend 使用内存后端代替 HTTP 接口
//
// catalog 为 nil 时使用内置目录。
func WithInMemoryBackend(catalog []types.ProductInfo) Option {
	return func(o *options) error {
		o.memory = true
		o.memoryCatalog = catalog
		return nil
	}
}

// WithRenderer 设置渲染协作方
func WithRenderer(view pkgif.Renderer) Option {
	return func(o *options) error {
		o.view = view
		return nil
	}
}

// WithFxOptions 追加自定义 Fx 选项
func WithFxOptions(opts ...fx.Option) Option {
	return func(o *options) error {
		o.userFxOptions = append(o.userFxOptions, opts...)
		return nil
	}
}
