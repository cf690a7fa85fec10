package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

// ValidationError carries field-level messages keyed by the request field name.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (v *ValidationError) Add(field, message string) {
	if _, exists := v.Fields[field]; !exists {
		v.Fields[field] = message
	}
}

func (v *ValidationError) Empty() bool {
	return v == nil || len(v.Fields) == 0
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, v.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var validate = validator.New()

func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// money: non-negative amount with at most two decimal places
	validate.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		_, err := ParseMoney(fl.Field().String())
		return err == nil
	})
}

// ParseMoney parses amounts like "12", "12.5" or "12.50".
func ParseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errors.New("amount is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, errors.New("amount must not be negative")
	}
	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		return decimal.Zero, errors.New("amount has more than two decimal places")
	}
	return d.Round(2), nil
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errs []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []*ErrorResponse{{FailedField: "", Tag: "invalid", Value: err.Error()}}
		}
		for _, fe := range verrs {
			errs = append(errs, &ErrorResponse{
				FailedField: fieldPath(fe.Namespace()),
				Tag:         fe.Tag(),
				Value:       fe.Param(),
			})
		}
	}
	return errs
}

// Check validates data and returns a *ValidationError, or nil when data is valid.
func Check(data interface{}) error {
	errs := ValidateStruct(data)
	if len(errs) == 0 {
		return nil
	}
	verr := NewValidationError()
	for _, fe := range errs {
		verr.Add(fe.FailedField, message(fe.Tag, fe.Value))
	}
	return verr
}

// fieldPath drops the top-level struct name: "SaleInput.items[0].quantity" -> "items[0].quantity".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func message(tag, param string) string {
	switch tag {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "uuid", "oneof":
		return "Select a valid choice."
	case "money":
		return "Enter a valid amount."
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", param)
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", param)
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s items or characters.", param)
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", param)
	default:
		return fmt.Sprintf("Failed on '%s'.", tag)
	}
}
