package config

import "fmt"

// LoopConfig 事件循环配置
type LoopConfig struct {
	// QueueSize 任务队列容量
	QueueSize int `json:"queue_size" mapstructure:"queue_size"`
}

// DefaultLoopConfig 返回默认的事件循环配置
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{QueueSize: 256}
}

// Validate 验证事件循环配置
func (c *LoopConfig) Validate() error {
	if c.QueueSize <= 0 {
		return fmt.Errorf("loop: queue_size must be positive")
	}
	return nil
}
