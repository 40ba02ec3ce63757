package config

import (
	"fmt"
	"strings"
)

// ServerConfig 内存后端的 HTTP 服务配置
type ServerConfig struct {
	// Addr 监听地址
	Addr string `json:"addr" mapstructure:"addr"`

	// APIPrefix 接口路径前缀
	APIPrefix string `json:"api_prefix" mapstructure:"api_prefix"`

	// CatalogFile 商品目录 JSON 文件，为空时使用内置目录
	CatalogFile string `json:"catalog_file" mapstructure:"catalog_file"`
}

// DefaultServerConfig 返回默认的服务配置
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:      ":8080",
		APIPrefix: "/api/weblarek",
	}
}

// Validate 验证服务配置
func (c *ServerConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("server: addr cannot be empty")
	}
	if c.APIPrefix != "" && !strings.HasPrefix(c.APIPrefix, "/") {
		return fmt.Errorf("server: api_prefix must start with /")
	}
	return nil
}
