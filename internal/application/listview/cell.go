package listview

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// CellValue is the closed set of values a column without a renderer can
// resolve to. Each variant formats itself.
type CellValue interface {
	Format() string
	isCellValue()
}

// TextValue is a string cell.
type TextValue string

// NumberValue is a numeric cell. Integers keep full precision.
type NumberValue struct {
	Int     int64
	Float   float64
	IsFloat bool
}

// BoolValue is a boolean cell.
type BoolValue bool

// EmptyValue is a nil or missing cell.
type EmptyValue struct{}

func (TextValue) isCellValue()   {}
func (NumberValue) isCellValue() {}
func (BoolValue) isCellValue()   {}
func (EmptyValue) isCellValue()  {}

// Format returns the string unchanged.
func (v TextValue) Format() string { return string(v) }

// Format renders integers in base 10 and floats in their shortest form.
func (v NumberValue) Format() string {
	if v.IsFloat {
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	}
	return strconv.FormatInt(v.Int, 10)
}

// Format renders "true" or "false".
func (v BoolValue) Format() string { return strconv.FormatBool(bool(v)) }

// Format renders the empty string.
func (EmptyValue) Format() string { return "" }

// ResolveValue classifies an arbitrary value into a CellValue. Pointers are
// dereferenced; nil becomes EmptyValue; anything that is not a string,
// number or bool is formatted with fmt (using String() when available).
func ResolveValue(v any) CellValue {
	if v == nil {
		return EmptyValue{}
	}
	if cv, ok := v.(CellValue); ok {
		return cv
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return EmptyValue{}
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return TextValue(rv.String())
	case reflect.Bool:
		return BoolValue(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NumberValue{Int: rv.Int()}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > 1<<63-1 {
			return NumberValue{Float: float64(u), IsFloat: true}
		}
		return NumberValue{Int: int64(u)}
	case reflect.Float32, reflect.Float64:
		return NumberValue{Float: rv.Float(), IsFloat: true}
	case reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return EmptyValue{}
		}
	}
	if s, ok := rv.Interface().(fmt.Stringer); ok {
		return TextValue(s.String())
	}
	return TextValue(fmt.Sprint(rv.Interface()))
}

// Lookup resolves a dotted key path against item. Struct fields match by
// exact name, then case-insensitively, then by json tag; maps with string
// keys match by key. A missing path yields nil.
func Lookup(item any, path string) any {
	if path == "" {
		return nil
	}
	cur := reflect.ValueOf(item)
	for part := range strings.SplitSeq(path, ".") {
		cur = indirect(cur)
		if !cur.IsValid() {
			return nil
		}
		switch cur.Kind() {
		case reflect.Struct:
			cur = structField(cur, part)
		case reflect.Map:
			if cur.Type().Key().Kind() != reflect.String {
				return nil
			}
			cur = cur.MapIndex(reflect.ValueOf(part).Convert(cur.Type().Key()))
		default:
			return nil
		}
		if !cur.IsValid() {
			return nil
		}
	}
	cur = indirect(cur)
	if !cur.IsValid() || !cur.CanInterface() {
		return nil
	}
	return cur.Interface()
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func structField(v reflect.Value, name string) reflect.Value {
	t := v.Type()
	if f, ok := t.FieldByName(name); ok && f.IsExported() {
		fv, err := v.FieldByIndexErr(f.Index)
		if err != nil {
			return reflect.Value{}
		}
		return fv
	}
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if strings.EqualFold(f.Name, name) || tag == name {
			return v.Field(i)
		}
	}
	return reflect.Value{}
}
