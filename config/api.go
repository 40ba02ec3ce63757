package config

import (
	"fmt"
	"net/url"
	"time"
)

// APIConfig 网络协作方配置
type APIConfig struct {
	// BaseURL 接口根地址，例如 http://localhost:8080/api/weblarek
	BaseURL string `json:"base_url" mapstructure:"base_url"`

	// CDNURL 商品图片根地址，拼接在商品 image 字段前
	CDNURL string `json:"cdn_url" mapstructure:"cdn_url"`

	// Timeout 单个请求超时
	Timeout Duration `json:"timeout" mapstructure:"timeout"`

	// RateLimit 每秒允许的请求数，0 表示不限速
	RateLimit float64 `json:"rate_limit" mapstructure:"rate_limit"`

	// Burst 限速桶容量
	Burst int `json:"burst" mapstructure:"burst"`

	// DetailCacheSize 商品详情缓存条目数，0 表示关闭缓存
	DetailCacheSize int `json:"detail_cache_size" mapstructure:"detail_cache_size"`
}

// DefaultAPIConfig 返回默认的网络配置
func DefaultAPIConfig() APIConfig {
	return APIConfig{
		BaseURL:         "http://localhost:8080/api/weblarek",
		CDNURL:          "http://localhost:8080/content/weblarek",
		Timeout:         Duration(10 * time.Second),
		RateLimit:       20,
		Burst:           5,
		DetailCacheSize: 128,
	}
}

// Validate 验证网络配置
func (c *APIConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("api: base_url cannot be empty")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("api: invalid base_url: %w", err)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("api: timeout cannot be negative")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("api: rate_limit cannot be negative")
	}
	if c.RateLimit > 0 && c.Burst <= 0 {
		return fmt.Errorf("api: burst must be positive when rate_limit is set")
	}
	if c.DetailCacheSize < 0 {
		return fmt.Errorf("api: detail_cache_size cannot be negative")
	}
	return nil
}
