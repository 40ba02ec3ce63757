// Package api 实现商店接口的 HTTP 客户端
//
// 接口：
//   - GET  {base}/product/      → {total, items}
//   - GET  {base}/product/{id}  → 商品详情
//   - POST {base}/order         → {id, total}
//
// 商品图片路径拼接 CDN 前缀。详情结果缓存在 LRU 中，同一商品的并发请求
// 通过 singleflight 合并，所有请求经 rate.Limiter 限速。
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/BMIWB/go-larek/config"
	"github.com/BMIWB/go-larek/internal/core/metrics"
	pkgif "github.com/BMIWB/go-larek/pkg/interfaces"
	"github.com/BMIWB/go-larek/pkg/lib/log"
	"github.com/BMIWB/go-larek/pkg/types"
)

var logger = log.Logger("storefront/api")

// 接口名称（指标标签）
const (
	endpointProductList = "product_list"
	endpointProductItem = "product_item"
	endpointOrder       = "order"
)

// ============================================================================
// 错误定义
// ============================================================================

// ErrEmptyID 商品 ID 为空
var ErrEmptyID = errors.New("api: empty product id")

// Error 非 2xx 响应
type Error struct {
	Status  int
	Message string
}

// Error 实现 error 接口
func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// IsNotFound 是否为 404 响应
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// ============================================================================
// Client
// ============================================================================

// Client 商店接口客户端
type Client struct {
	baseURL string
	cdnURL  string

	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *lru.Cache[string, types.ProductInfo]
	group      singleflight.Group
	metrics    *metrics.Metrics
}

// Option 客户端选项
type Option func(*Client)

// WithHTTPClient 使用自定义 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithMetrics 记录请求指标
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New 创建客户端
func New(cfg config.APIConfig, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("api: invalid base url: %w", err)
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		cdnURL:     strings.TrimRight(cfg.CDNURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout.Duration()},
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)
	}
	if cfg.DetailCacheSize > 0 {
		cache, err := lru.New[string, types.ProductInfo](cfg.DetailCacheSize)
		if err != nil {
			return nil, fmt.Errorf("api: create cache: %w", err)
		}
		c.cache = cache
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetProductList 获取商品目录
func (c *Client) GetProductList(ctx context.Context) ([]types.ProductInfo, error) {
	var resp types.ListResponse[types.ProductInfo]
	if err := c.do(ctx, endpointProductList, http.MethodGet, "/product/", nil, &resp); err != nil {
		return nil, err
	}

	items := make([]types.ProductInfo, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, c.withCDN(item))
	}
	logger.Debug("目录已加载", "count", len(items), "total", resp.Total)
	return items, nil
}

// GetProductItem 获取商品详情
func (c *Client) GetProductItem(ctx context.Context, id string) (types.ProductInfo, error) {
	if id == "" {
		return types.ProductInfo{}, ErrEmptyID
	}
	if c.cache != nil {
		if item, ok := c.cache.Get(id); ok {
			c.metrics.ObserveRequest(endpointProductItem, metrics.OutcomeCache, 0)
			return item, nil
		}
	}

	v, err, shared := c.group.Do(id, func() (any, error) {
		var item types.ProductInfo
		if err := c.do(ctx, endpointProductItem, http.MethodGet, "/product/"+url.PathEscape(id), nil, &item); err != nil {
			return types.ProductInfo{}, err
		}
		item = c.withCDN(item)
		if c.cache != nil {
			c.cache.Add(id, item)
		}
		return item, nil
	})
	if err != nil {
		return types.ProductInfo{}, err
	}
	if shared {
		logger.Debug("合并并发详情请求", "id", id)
	}
	return v.(types.ProductInfo), nil
}

// OrderProducts 提交订单
func (c *Client) OrderProducts(ctx context.Context, order types.Order) (types.OrderResult, error) {
	var result types.OrderResult
	if err := c.do(ctx, endpointOrder, http.MethodPost, "/order", order, &result); err != nil {
		return types.OrderResult{}, err
	}
	logger.Info("订单已提交", "id", result.ID, "total", result.Total.String())
	return result, nil
}

// InvalidateProduct 丢弃缓存的商品详情
func (c *Client) InvalidateProduct(id string) {
	if c.cache != nil {
		c.cache.Remove(id)
	}
}

// ============================================================================
// 内部方法
// ============================================================================

func (c *Client) do(ctx context.Context, endpoint, method, path string, body, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := metrics.OutcomeOK
		if err != nil {
			outcome = metrics.OutcomeError
		}
		c.metrics.ObserveRequest(endpoint, outcome, time.Since(start))
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("api: rate limit: %w", err)
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("请求失败", "method", method, "path", path, "err", err)
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

// decodeError 从 {"error": "..."} 中取消息，否则使用状态文本
func decodeError(status int, data []byte) error {
	var body struct {
		Error string `json:"error"`
	}
	msg := http.StatusText(status)
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		msg = body.Error
	}
	return &Error{Status: status, Message: msg}
}

func (c *Client) withCDN(item types.ProductInfo) types.ProductInfo {
	if c.cdnURL == "" || item.Image == "" {
		return item
	}
	if strings.HasPrefix(item.Image, "http://") || strings.HasPrefix(item.Image, "https://") {
		return item
	}
	item.Image = c.cdnURL + "/" + strings.TrimLeft(item.Image, "/")
	return item
}

// 确保 Client 实现 ShopAPI 接口
var _ pkgif.ShopAPI = (*Client)(nil)
