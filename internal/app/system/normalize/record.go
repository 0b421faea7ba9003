package normalize

import (
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/spf13/cast"
)

// Deriver is implemented by records that compute fields from the raw
// payload after tagged fields are copied, e.g. a status label from a code.
type Deriver interface {
	Derive(raw map[string]any)
}

// Into builds a T from raw. T must be a struct type.
//
// For every exported field with a `src:"a.b|c"` tag the first path that
// resolves to a non-null value is converted to the field's type. Values
// that cannot be converted are skipped. Afterwards Derive runs (when *T
// implements Deriver) and creasty/defaults fills every field that is still
// zero from its `default` tag. Into never panics on malformed input.
func Into[T any](raw map[string]any) T {
	var out T
	v := reflect.ValueOf(&out).Elem()
	if v.Kind() != reflect.Struct {
		return out
	}
	fill(v, raw)
	if d, ok := any(&out).(Deriver); ok {
		d.Derive(raw)
	}
	_ = defaults.Set(&out)
	return out
}

// List normalizes every object in items. Non-object entries are dropped.
// The result is never nil.
func List[T any](items []any) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, Into[T](m))
	}
	return out
}

// Lookup resolves a dot path such as "coupon_type.name" in raw.
func Lookup(raw map[string]any, path string) (any, bool) {
	var cur any = raw
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// First returns the first non-null value among the "|" separated paths.
func First(raw map[string]any, paths string) (any, bool) {
	for _, p := range strings.Split(paths, "|") {
		if val, ok := Lookup(raw, strings.TrimSpace(p)); ok && val != nil {
			return val, true
		}
	}
	return nil, false
}

// String is First converted to a trimmed string ("" when absent).
func String(raw map[string]any, paths string) string {
	val, ok := First(raw, paths)
	if !ok {
		return ""
	}
	s, err := cast.ToStringE(val)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func fill(v reflect.Value, raw map[string]any) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, ok := sf.Tag.Lookup("src")
		if !ok || !sf.IsExported() {
			continue
		}
		val, found := First(raw, tag)
		if !found {
			continue
		}
		assign(v.Field(i), val)
	}
}

func assign(f reflect.Value, val any) {
	if !f.CanSet() {
		return
	}
	switch f.Kind() {
	case reflect.String:
		if s, err := cast.ToStringE(val); err == nil {
			f.SetString(strings.TrimSpace(s))
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, err := cast.ToInt64E(val); err == nil {
			f.SetInt(n)
		}
	case reflect.Float32, reflect.Float64:
		if n, err := cast.ToFloat64E(val); err == nil {
			f.SetFloat(n)
		}
	case reflect.Bool:
		if b, err := cast.ToBoolE(val); err == nil {
			f.SetBool(b)
		}
	case reflect.Struct:
		if m, ok := val.(map[string]any); ok {
			fill(f, m)
			_ = defaults.Set(f.Addr().Interface())
		}
	case reflect.Ptr:
		if f.Type().Elem().Kind() != reflect.Struct {
			return
		}
		if m, ok := val.(map[string]any); ok {
			p := reflect.New(f.Type().Elem())
			fill(p.Elem(), m)
			_ = defaults.Set(p.Interface())
			f.Set(p)
		}
	case reflect.Slice:
		assignSlice(f, val)
	}
}

func assignSlice(f reflect.Value, val any) {
	items, ok := val.([]any)
	if !ok {
		return
	}
	elem := f.Type().Elem()
	out := reflect.MakeSlice(f.Type(), 0, len(items))
	for _, it := range items {
		ev := reflect.New(elem).Elem()
		if elem.Kind() == reflect.Struct {
			m, ok := it.(map[string]any)
			if !ok {
				continue
			}
			fill(ev, m)
			_ = defaults.Set(ev.Addr().Interface())
		} else {
			assign(ev, it)
		}
		out = reflect.Append(out, ev)
	}
	f.Set(out)
}
