package domain

import (
	"bytes"
	"encoding/json"
)

// Optional 可空字段的补丁值
// Set=false 表示请求中未出现该字段；Set=true 且 Value=nil 表示显式置空
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some 构造一个有值的 Optional
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null 构造一个显式置空的 Optional
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON 仅在字段出现时被调用，null 解析为置空
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// MarshalJSON 未设置或置空时输出 null
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// applyTo 在 Set 时覆盖 dst
func (o Optional[T]) applyTo(dst **T) {
	if !o.Set {
		return
	}
	if o.Value == nil {
		*dst = nil
		return
	}
	v := *o.Value
	*dst = &v
}

func assign[T any](src *T, dst *T) {
	if src != nil {
		*dst = *src
	}
}
