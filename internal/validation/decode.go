package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
)

var (
	timeType        = reflect.TypeOf(time.Time{})
	unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
)

// Accepted datetime inputs, tried in order. Inputs without an offset are UTC.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDateTime reads an ISO 8601 date or datetime with an optional offset.
// Fractional seconds are accepted after the seconds field.
func ParseDateTime(s string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not an ISO 8601 datetime", s)
}

// Decode unmarshals a JSON body into dst, a pointer to a struct, and
// validates it. Fields are decoded one at a time so a mistyped or unparsable
// value is reported next to every other violation instead of hiding them.
// Unknown fields are ignored.
func Decode(body []byte, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return &json.InvalidUnmarshalError{Type: reflect.TypeOf(dst)}
	}
	if err := json.Unmarshal(body, new(json.RawMessage)); err != nil {
		return &ValidationError{Fields: []FieldError{{
			Loc:  []any{"body"},
			Msg:  "invalid JSON: " + err.Error(),
			Type: "json_invalid",
		}}}
	}

	d := &decoder{failed: map[string]bool{}}
	d.value(body, rv.Elem(), nil)

	fields := d.fields
	if err := check(dst, "body", d.failed); err != nil {
		var ve *ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		fields = append(fields, ve.Fields...)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

type decoder struct {
	fields []FieldError
	failed map[string]bool
}

func (d *decoder) value(raw json.RawMessage, v reflect.Value, path []any) {
	t := v.Type()
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		v.Set(reflect.Zero(t))
		return
	}
	switch {
	case t == timeType:
		d.datetime(raw, v, path)
		return
	case reflect.PointerTo(t).Implements(unmarshalerType):
		d.leaf(raw, v, path)
		return
	}

	switch t.Kind() {
	case reflect.Ptr:
		p := reflect.New(t.Elem())
		before := len(d.fields)
		d.value(raw, p.Elem(), path)
		if len(d.fields) > before && d.failed[joinLoc(path)] {
			v.Set(reflect.Zero(t))
			return
		}
		v.Set(p)
	case reflect.Struct:
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			d.typeError(path, t, err)
			return
		}
		d.object(obj, v, path)
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			d.leaf(raw, v, path)
			return
		}
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			d.typeError(path, t, err)
			return
		}
		s := reflect.MakeSlice(t, len(items), len(items))
		for i, item := range items {
			d.value(item, s.Index(i), appendPath(path, i))
		}
		v.Set(s)
	default:
		d.leaf(raw, v, path)
	}
}

func (d *decoder) object(obj map[string]json.RawMessage, v reflect.Value, path []any) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if sf.Anonymous && name == "" && sf.Type.Kind() == reflect.Struct {
			d.object(obj, v.Field(i), path)
			continue
		}
		if name == "" {
			name = sf.Name
		}
		raw, ok := lookup(obj, name)
		if !ok {
			continue
		}
		d.value(raw, v.Field(i), appendPath(path, name))
	}
}

// lookup matches keys the way encoding/json does: exact first, then
// case-insensitively.
func lookup(obj map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if raw, ok := obj[name]; ok {
		return raw, true
	}
	for k, raw := range obj {
		if strings.EqualFold(k, name) {
			return raw, true
		}
	}
	return nil, false
}

func (d *decoder) leaf(raw json.RawMessage, v reflect.Value, path []any) {
	p := reflect.New(v.Type())
	if err := json.Unmarshal(raw, p.Interface()); err != nil {
		d.typeError(path, v.Type(), err)
		return
	}
	v.Set(p.Elem())
}

func (d *decoder) datetime(raw json.RawMessage, v reflect.Value, path []any) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		d.typeError(path, v.Type(), err)
		return
	}
	ts, err := ParseDateTime(s)
	if err != nil {
		d.add(path, "invalid datetime: "+err.Error(), "datetime_parsing")
		return
	}
	v.Set(reflect.ValueOf(ts))
}

func (d *decoder) typeError(path []any, t reflect.Type, err error) {
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		d.add(path, fmt.Sprintf("expected %s, got %s", jsonKind(t), te.Value), "type_error")
		return
	}
	d.add(path, err.Error(), "value_error")
}

func (d *decoder) add(path []any, msg, typ string) {
	d.failed[joinLoc(path)] = true
	d.fields = append(d.fields, FieldError{
		Loc:  append([]any{"body"}, path...),
		Msg:  msg,
		Type: typ,
	})
}

func appendPath(path []any, elem any) []any {
	out := make([]any, len(path), len(path)+1)
	copy(out, path)
	return append(out, elem)
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == timeType {
		return "datetime"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	}
	return t.String()
}
