// Package config 提供统一的配置管理
//
// 本包采用混合配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义，提供 DefaultXConfig() 与 Validate()
//   - 支持从 JSON 加载和保存配置
//   - Load() 通过 viper 叠加配置文件与 LAREK_* 环境变量
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.API.BaseURL = "https://larek.example/api/weblarek"
//
//	// 从 JSON 加载
//	cfg, err := config.FromJSON(data)
//
//	// 从文件和环境变量加载
//	cfg, err := config.Load("larek.json")
package config

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Config 是 go-larek 的完整配置结构
//
// 配置按照功能模块组织：
//   - API: 网络协作方（HTTP 客户端）
//   - Log: 日志输出
//   - Loop: 事件循环
//   - Metrics: Prometheus 指标
//   - Server: 内存后端的 HTTP 服务
type Config struct {
	// API 网络协作方配置
	API APIConfig `json:"api" mapstructure:"api"`

	// Log 日志配置
	Log LogConfig `json:"log" mapstructure:"log"`

	// Loop 事件循环配置
	Loop LoopConfig `json:"loop" mapstructure:"loop"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics" mapstructure:"metrics"`

	// Server 后端服务配置
	Server ServerConfig `json:"server" mapstructure:"server"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		API:     DefaultAPIConfig(),
		Log:     DefaultLogConfig(),
		Loop:    DefaultLoopConfig(),
		Metrics: DefaultMetricsConfig(),
		Server:  DefaultServerConfig(),
	}
}

// Validate 验证配置的有效性
//
// 检查所有子配置是否有效，如果发现无效配置则返回错误。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.API.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Loop.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return nil
}

// FromJSON 从 JSON 数据创建配置
//
// 未出现的字段保留默认值。
//
// 示例 JSON:
//
//	{
//	  "api": {"base_url": "http://localhost:8080/api/weblarek", "timeout": "5s"},
//	  "log": {"level": "debug"}
//	}
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// ToJSON 将配置序列化为带缩进的 JSON
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
