package config

import (
	"errors"
	"fmt"
)

// ValidateAll 验证整个配置的有效性
//
// 这是 Config.Validate() 的别名，提供更明确的语义。
func ValidateAll(c *Config) error {
	if c == nil {
		return errors.New("config is nil")
	}
	return c.Validate()
}

// ValidateAndFix 验证配置并尝试自动修复常见问题
//
// 可修复的问题：
//   - 超时时间为负 -> 使用默认值
//   - 启用限速但桶容量为 0 -> 使用默认桶容量
//   - 队列容量非正 -> 使用默认值
//   - 日志级别/格式为空 -> 使用默认值
func ValidateAndFix(c *Config) (*Config, error) {
	if c == nil {
		return NewConfig(), nil
	}

	if c.API.Timeout < 0 {
		c.API.Timeout = DefaultAPIConfig().Timeout
	}
	if c.API.RateLimit > 0 && c.API.Burst <= 0 {
		c.API.Burst = DefaultAPIConfig().Burst
	}
	if c.Loop.QueueSize <= 0 {
		c.Loop.QueueSize = DefaultLoopConfig().QueueSize
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogConfig().Level
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogConfig().Format
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed after fixes: %w", err)
	}
	return c, nil
}

// MustValidate 验证配置，如果失败则 panic
//
// 仅用于初始化阶段或测试代码。
func MustValidate(c *Config) {
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("config validation failed: %v", err))
	}
}
