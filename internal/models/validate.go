package models

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// NewValidator returns a validator that checks decimal amounts as plain
// numbers, so tags like gt=0 work on prices.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// ValidationErrors flattens validator output into field -> message, the
// shape the JSON API returns.
func ValidationErrors(err error) map[string]string {
	out := make(map[string]string)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = err.Error()
		return out
	}
	for _, e := range verrs {
		out[e.Field()] = "Field '" + e.Field() + "' failed on the '" + e.Tag() + "' tag"
	}
	return out
}
