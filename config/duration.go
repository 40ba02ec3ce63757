package config

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration 配置中的时长
//
// 配置文件与环境变量里写作 "10s"、"1m30s"；为兼容旧配置也接受纳秒整数。
// 序列化时总是输出字符串，ToJSON 的结果可以被 Load 原样读回。
type Duration time.Duration

// Duration 返回 time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// MarshalJSON 输出 "10s" 形式
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON 接受字符串或纳秒整数
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := toDuration(raw)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// toDuration JSON 解码与 viper 解码共用的转换
func toDuration(raw any) (Duration, error) {
	switch v := raw.(type) {
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", v, err)
		}
		return Duration(d), nil
	case float64:
		return Duration(int64(v)), nil
	case int:
		return Duration(v), nil
	case int64:
		return Duration(v), nil
	default:
		return 0, fmt.Errorf("invalid duration %v: want a string like \"10s\" or nanoseconds", raw)
	}
}
