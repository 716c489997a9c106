package domain

import (
	"bytes"
	"encoding/json"
)

// Optional - поле запроса с тремя состояниями: отсутствует, null или значение.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some возвращает заполненное поле.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null возвращает поле, явно переданное как null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// Present сообщает, что поле передано и не равно null.
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}

// Ptr возвращает указатель на копию значения или nil.
func (o Optional[T]) Ptr() *T {
	if !o.Present() {
		return nil
	}
	v := o.Value
	return &v
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Null = true
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON нужен для тестов и логов: отсутствующее и null-поле пишутся как null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present() {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// putField добавляет поле в набор кандидатов; nil означает явный null.
func putField[T any](set map[string]any, name string, o Optional[T]) {
	if !o.Set {
		return
	}
	if o.Null {
		set[name] = nil
		return
	}
	set[name] = o.Value
}
