// Package inputval validates decoded form structs with go-playground
// validator tags and turns failures into user-facing messages.
//
// Fields are named in messages by their `label` tag:
//
//	type couponForm struct {
//		Name  string `schema:"name" validate:"required,max=100" label:"Name"`
//		Price string `schema:"price" validate:"required,price" label:"Price"`
//	}
package inputval

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DateLayout is the format of date inputs.
const DateLayout = "2006-01-02"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func get() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
			return IsValidHTTPURL(fl.Field().String())
		})
		_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
			return IsValidPrice(fl.Field().String())
		})
		_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			if s == "" {
				return true
			}
			_, err := time.Parse(DateLayout, s)
			return err == nil
		})
		_ = v.RegisterValidation("dateafter", dateAfter)
		validate = v
	})
	return validate
}

// dateAfter passes when the field is empty, the named sibling is empty or
// unparseable, or the field is on or after the sibling.
func dateAfter(fl validator.FieldLevel) bool {
	end, err := time.Parse(DateLayout, fl.Field().String())
	if err != nil {
		return true
	}
	parent := reflect.Indirect(fl.Parent())
	other := parent.FieldByName(fl.Param())
	if !other.IsValid() || other.Kind() != reflect.String {
		return true
	}
	start, err := time.Parse(DateLayout, other.String())
	if err != nil {
		return true
	}
	return !end.Before(start)
}

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Message string
}

// Result collects every failed rule in field order.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// First returns the first message, or "".
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message.
func (r *Result) All() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// ByField maps Go field names to their first message, for inline errors.
func (r *Result) ByField() map[string]string {
	m := make(map[string]string, len(r.Errors))
	for _, e := range r.Errors {
		if _, ok := m[e.Field]; !ok {
			m[e.Field] = e.Message
		}
	}
	return m
}

// Validate checks s (a struct or pointer to struct) against its tags.
func Validate(s any) *Result {
	res := &Result{}
	err := get().Struct(s)
	if err == nil {
		return res
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Errors = append(res.Errors, FieldError{Message: err.Error()})
		return res
	}

	labels := labelsOf(s)
	for _, fe := range verrs {
		res.Errors = append(res.Errors, FieldError{
			Field:   fe.StructField(),
			Message: message(fe, labels),
		})
	}
	return res
}

func labelsOf(s any) map[string]string {
	t := reflect.TypeOf(s)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	labels := map[string]string{}
	if t == nil || t.Kind() != reflect.Struct {
		return labels
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if l := f.Tag.Get("label"); l != "" {
			labels[f.Name] = l
		} else {
			labels[f.Name] = f.Name
		}
	}
	return labels
}

func message(fe validator.FieldError, labels map[string]string) string {
	label := labels[fe.StructField()]
	if label == "" {
		label = fe.Field()
	}
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "email":
		return "A valid email address is required."
	case "max", "lte":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "min", "gte":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "eqfield":
		return fmt.Sprintf("%s must match %s.", label, labelFor(labels, fe.Param()))
	case "dateafter":
		return fmt.Sprintf("%s must be on or after %s.", label, labelFor(labels, fe.Param()))
	case "httpurl":
		return label + " must be a valid http or https URL."
	case "price":
		return label + " must be a non-negative amount."
	case "date":
		return label + " must be a date (YYYY-MM-DD)."
	case "numeric":
		return label + " must be a number."
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters.", label, fe.Param())
	}
	return label + " is invalid."
}

func labelFor(labels map[string]string, field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return field
}

// IsValidEmail reports whether s is a bare email address.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return get().Var(s, "email") == nil
}

// IsValidHTTPURL reports whether s is an absolute http(s) URL.
func IsValidHTTPURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsValidPrice reports whether s is a non-negative decimal amount.
func IsValidPrice(s string) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	return err == nil && !d.IsNegative()
}
