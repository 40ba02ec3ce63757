package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 LAREK_API_BASE_URL 覆盖 api.base_url
const EnvPrefix = "LAREK"

// Load 读取配置文件并叠加环境变量
//
// 优先级从低到高：默认值 → 配置文件 → LAREK_* 环境变量。
// path 为空时只使用默认值和环境变量。文件格式由扩展名决定（json/yaml/toml）。
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults, err := NewConfig().ToJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal defaults: %w", err)
	}
	v.SetConfigType("json")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("read defaults: %w", err)
	}

	if path != "" {
		if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
			v.SetConfigType(ext)
		}
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg, viper.DecodeHook(durationHook)); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var durationType = reflect.TypeOf(Duration(0))

// durationHook 把字符串（"30s"）或数字（纳秒）解码为 Duration
func durationHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != durationType {
		return data, nil
	}
	switch from.Kind() {
	case reflect.String, reflect.Int, reflect.Int64, reflect.Float64:
		return toDuration(data)
	default:
		return data, nil
	}
}
