// Package inputval validates form input structs declared with struct tags.
//
// Fields are checked in declaration order. Supported rules:
//
//	validate:"required"        non-blank after trimming (strings) or non-empty (slices)
//	validate:"max=200"         at most 200 runes
//	validate:"oneof=a|b|c"     one of the listed values
//
// The label tag names the field in messages; it defaults to the field name.
//
//	type caseInput struct {
//	    Title string `validate:"required,max=200" label:"Title"`
//	}
package inputval

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Result collects the messages produced by Validate.
type Result struct {
	Errors []string
}

// HasErrors reports whether any rule failed.
func (r Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "" when valid.
func (r Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0]
}

// Validate checks every tagged field of the struct v (or pointer to one).
// Untagged fields are ignored; unsupported rules panic, since they are
// programming errors.
func Validate(v any) Result {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		panic("inputval: Validate needs a struct")
	}

	var res Result
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		tag := f.Tag.Get("validate")
		if tag == "" {
			continue
		}
		label := f.Tag.Get("label")
		if label == "" {
			label = f.Name
		}
		if msg := check(rv.Field(i), tag, label); msg != "" {
			res.Errors = append(res.Errors, msg)
		}
	}
	return res
}

func check(fv reflect.Value, tag, label string) string {
	for _, rule := range strings.Split(tag, ",") {
		name, arg, _ := strings.Cut(strings.TrimSpace(rule), "=")
		switch name {
		case "required":
			if isBlank(fv) {
				return label + " is required."
			}
		case "max":
			n, err := strconv.Atoi(arg)
			if err != nil {
				panic(fmt.Sprintf("inputval: bad max %q", arg))
			}
			if fv.Kind() == reflect.String && utf8.RuneCountInString(fv.String()) > n {
				return fmt.Sprintf("%s must be at most %d characters.", label, n)
			}
		case "oneof":
			if fv.Kind() != reflect.String || fv.String() == "" {
				continue
			}
			ok := false
			for _, want := range strings.Split(arg, "|") {
				if fv.String() == want {
					ok = true
					break
				}
			}
			if !ok {
				return label + " is invalid."
			}
		default:
			panic(fmt.Sprintf("inputval: unknown rule %q", name))
		}
	}
	return ""
}

func isBlank(fv reflect.Value) bool {
	switch fv.Kind() {
	case reflect.String:
		return strings.TrimSpace(fv.String()) == ""
	case reflect.Slice, reflect.Map:
		return fv.Len() == 0
	default:
		return fv.IsZero()
	}
}
