package validate

import (
	"errors"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// FieldError is one failed rule, keyed by the JSON field name.
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

// Errors collects every failed rule of a struct.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		s := fe.Field + " failed " + fe.Tag
		if fe.Param != "" {
			s += "=" + fe.Param
		}
		parts = append(parts, s)
	}
	return "validation: " + strings.Join(parts, "; ")
}

// Has reports whether field failed. With tags, only those rules count.
func (e Errors) Has(field string, tags ...string) bool {
	for _, fe := range e {
		if fe.Field != field {
			continue
		}
		if len(tags) == 0 {
			return true
		}
		for _, t := range tags {
			if fe.Tag == t {
				return true
			}
		}
	}
	return false
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Struct validates s. A rule failure is returned as Errors; anything else as is.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()})
	}
	return out
}

// ParseFlag reads a "1"/"0" query flag. Absent means nil; any value other than "1" is false.
func ParseFlag(q url.Values, key string) *bool {
	if !q.Has(key) {
		return nil
	}
	v := strings.TrimSpace(q.Get(key)) == "1"
	return &v
}
