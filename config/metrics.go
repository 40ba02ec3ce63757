package config

import (
	"fmt"
	"regexp"
)

var namespaceRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// MetricsConfig 指标配置
type MetricsConfig struct {
	// Enabled 是否启用指标收集
	Enabled bool `json:"enabled" mapstructure:"enabled"`

	// Namespace Prometheus 指标命名空间
	Namespace string `json:"namespace" mapstructure:"namespace"`
}

// DefaultMetricsConfig 返回默认的指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   true,
		Namespace: "larek",
	}
}

// Validate 验证指标配置
func (c *MetricsConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if !namespaceRe.MatchString(c.Namespace) {
		return fmt.Errorf("metrics: invalid namespace %q", c.Namespace)
	}
	return nil
}
