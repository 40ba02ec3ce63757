// Package backend 实现内存中的商店后端
//
// Store 直接实现 ShopAPI，可以作为进程内协作方使用；NewHandler 把它暴露为
// 与网络客户端兼容的 HTTP 接口。
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgif "github.com/BMIWB/go-larek/pkg/interfaces"
	"github.com/BMIWB/go-larek/pkg/lib/log"
	"github.com/BMIWB/go-larek/pkg/types"
)

var logger = log.Logger("storefront/backend")

// ============================================================================
// 错误定义
// ============================================================================

var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidOrder 订单无效
	ErrInvalidOrder = errors.New("invalid order")
)

// ============================================================================
// Store
// ============================================================================

// OrderRecord 已接受的订单
type OrderRecord struct {
	ID        string
	Order     types.Order
	CreatedAt time.Time
}

// orderForm 服务端订单校验规则
type orderForm struct {
	Payment string   `json:"payment" validate:"required,oneof=card cash"`
	Address string   `json:"address" validate:"required"`
	Email   string   `json:"email" validate:"required,email"`
	Phone   string   `json:"phone" validate:"required"`
	Items   []string `json:"items" validate:"required,min=1,dive,required"`
}

// Store 内存商店
type Store struct {
	mu      sync.RWMutex
	catalog []types.ProductInfo
	byID    map[string]types.ProductInfo
	orders  []OrderRecord

	clock    clock.Clock
	validate *validator.Validate
}

// Option Store 选项
type Option func(*Store)

// WithClock 使用指定时钟（测试中使用 clock.NewMock()）
func WithClock(c clock.Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

// NewStore 创建内存商店
func NewStore(catalog []types.ProductInfo, opts ...Option) *Store {
	s := &Store{
		clock:    clock.New(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	s.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	for _, opt := range opts {
		opt(s)
	}
	s.SetCatalog(catalog)
	return s
}

// SetCatalog 替换目录
func (s *Store) SetCatalog(catalog []types.ProductInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.catalog = slices.Clone(catalog)
	s.byID = make(map[string]types.ProductInfo, len(catalog))
	for _, p := range catalog {
		s.byID[p.ID] = p
	}
}

// GetProductList 返回完整目录
func (s *Store) GetProductList(_ context.Context) ([]types.ProductInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.catalog), nil
}

// GetProductItem 返回商品详情
func (s *Store) GetProductItem(_ context.Context, id string) (types.ProductInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return types.ProductInfo{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return p, nil
}

// OrderProducts 校验并接受订单
//
// 要求联系人与配送字段齐全、商品均存在且有价、总额等于目录价格之和。
func (s *Store) OrderProducts(_ context.Context, order types.Order) (types.OrderResult, error) {
	form := orderForm{
		Payment: string(order.Payment),
		Address: order.Address,
		Email:   order.Email,
		Phone:   order.Phone,
		Items:   order.Items,
	}
	if err := s.validate.Struct(form); err != nil {
		return types.OrderResult{}, fmt.Errorf("%w: %s", ErrInvalidOrder, describe(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, id := range order.Items {
		p, ok := s.byID[id]
		if !ok {
			return types.OrderResult{}, fmt.Errorf("%w: unknown product %s", ErrInvalidOrder, id)
		}
		if !p.Priced() {
			return types.OrderResult{}, fmt.Errorf("%w: product %s is not for sale", ErrInvalidOrder, id)
		}
		total = total.Add(p.Price.Decimal)
	}
	if !total.Equal(order.Total) {
		return types.OrderResult{}, fmt.Errorf("%w: total %s does not match %s", ErrInvalidOrder, order.Total, total)
	}

	rec := OrderRecord{
		ID:        uuid.NewString(),
		Order:     order.Clone(),
		CreatedAt: s.clock.Now(),
	}
	s.orders = append(s.orders, rec)
	logger.Info("订单已接受", "id", rec.ID, "items", len(order.Items), "total", total.String())

	return types.OrderResult{ID: rec.ID, Total: total}, nil
}

// Orders 返回已接受订单的快照
func (s *Store) Orders() []OrderRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.orders)
}

// describe 把校验错误转为 "field: tag" 列表
func describe(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fe.Field()+": "+fe.Tag())
	}
	return strings.Join(parts, ", ")
}

// ============================================================================
// 目录加载
// ============================================================================

// LoadCatalog 从 JSON 文件加载目录
//
// 文件可以是商品数组，也可以是 {total, items} 形式的列表响应。
func LoadCatalog(path string) ([]types.ProductInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var items []types.ProductInfo
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}

	var list types.ListResponse[types.ProductInfo]
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return list.Items, nil
}

// DefaultCatalog 内置演示目录
func DefaultCatalog() []types.ProductInfo {
	return []types.ProductInfo{
		{ID: "854cef69-976d-4c2a-a18c-2aa45046c390", Title: "+1 час в сутках", Category: "софт-скил",
			Description: "Если планируете решать задачи в тренажёре, берите два.", Image: "/5_Dots.svg", Price: types.NewPrice(750)},
		{ID: "c101ab44-ed99-4a54-990d-47aa2bb4e7d9", Title: "HEX-леденец", Category: "другое",
			Description: "Лизните этот леденец, чтобы мгновенно запоминать и узнавать любой цветовой код CSS.", Image: "/Shell.svg", Price: types.NewPrice(1450)},
		{ID: "b06cde61-912f-4663-9751-09956c0eed67", Title: "Мамка-таймер", Category: "софт-скил",
			Description: "Будет стоять над душой и не давать прокрастинировать.", Image: "/Asterisk_2.svg", Price: types.NoPrice},
		{ID: "412bcf81-7e75-4e70-bdb9-d3c73c9803b7", Title: "Фреймворк куки судьбы", Category: "дополнительное",
			Description: "Откройте эти куки, чтобы узнать, какой фреймворк вы должны изучить дальше.", Image: "/Soft_Flower.svg", Price: types.NewPrice(2500)},
		{ID: "1c521d84-c48d-48fa-8cfb-9d911fa515fd", Title: "Кнопка «Замьютить кота»", Category: "кнопка",
			Description: "Если орёт кот, нажмите кнопку.", Image: "/mute-cat.svg", Price: types.NewPrice(2000)},
		{ID: "f3867296-45c7-4603-bd34-29cea3a061d5", Title: "БЭМ-пылесос", Category: "другое",
			Description: "Будет стоять над душой и не давать прокрастинировать.", Image: "/Pill.svg", Price: types.NewPrice(1500)},
	}
}

// 确保 Store 实现 ShopAPI 接口
var _ pkgif.ShopAPI = (*Store)(nil)
