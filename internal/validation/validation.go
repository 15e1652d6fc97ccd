// Package validation decodes request payloads into typed values and checks
// the `binding` struct tags on them, reporting every violation at once.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError is one violated constraint. Loc is the path to the value, rooted
// at "body" or "query".
type FieldError struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", joinLoc(f.Loc), f.Msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var (
	once sync.Once
	v    *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v = validator.New()
		v.SetTagName("binding")
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
	return v
}

// Struct validates an already populated value.
func Struct(dst any) error {
	return check(dst, "body", nil)
}

// Query maps URL query values onto dst using `form` tags (with their
// `default=` options) and validates the result.
func Query(values map[string][]string, dst any) error {
	if err := binding.MapFormWithTag(dst, values, "form"); err != nil {
		fe := FieldError{Loc: []any{"query"}, Msg: err.Error(), Type: "type_error"}
		var ne *strconv.NumError
		if errors.As(err, &ne) {
			fe.Msg = fmt.Sprintf("value %q is not a valid integer", ne.Num)
			fe.Type = "int_parsing"
		}
		return &ValidationError{Fields: []FieldError{fe}}
	}
	return check(dst, "query", nil)
}

// check runs the validator on dst. Violations at or below a path in failed
// are dropped: that value never decoded, so its type error already covers it.
func check(dst any, root string, failed map[string]bool) error {
	err := engine().Struct(dst)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	fields := make([]FieldError, 0, len(ves))
	for _, fe := range ves {
		path := namespacePath(fe.Namespace())
		if underFailed(path, failed) {
			continue
		}
		fields = append(fields, FieldError{
			Loc:  append([]any{root}, path...),
			Msg:  message(fe),
			Type: kind(fe),
		})
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min":
		return "must be greater than or equal to " + fe.Param()
	case "max":
		return "must be less than or equal to " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "email":
		return "value is not a valid email address"
	}
	return fmt.Sprintf("failed on %q", fe.Tag())
}

func kind(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "missing"
	case "min":
		return "greater_than_equal"
	case "max":
		return "less_than_equal"
	case "oneof":
		return "enum"
	}
	return "value_error"
}

// namespacePath turns "Barber.services[0].duration_minutes" into
// ["services", 0, "duration_minutes"].
func namespacePath(ns string) []any {
	segs := strings.Split(ns, ".")
	if len(segs) > 0 {
		segs = segs[1:]
	}
	out := make([]any, 0, len(segs))
	for _, s := range segs {
		for s != "" {
			open := strings.IndexByte(s, '[')
			if open < 0 {
				out = append(out, s)
				break
			}
			if open > 0 {
				out = append(out, s[:open])
			}
			end := strings.IndexByte(s[open:], ']')
			if end < 0 {
				out = append(out, s[open:])
				break
			}
			idx := s[open+1 : open+end]
			if n, err := strconv.Atoi(idx); err == nil {
				out = append(out, n)
			} else {
				out = append(out, idx)
			}
			s = s[open+end+1:]
		}
	}
	return out
}

func underFailed(path []any, failed map[string]bool) bool {
	for i := 0; i <= len(path) && len(failed) > 0; i++ {
		if failed[joinLoc(path[:i])] {
			return true
		}
	}
	return false
}

func joinLoc(loc []any) string {
	parts := make([]string, len(loc))
	for i, p := range loc {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, ".")
}
