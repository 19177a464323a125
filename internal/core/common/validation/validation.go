package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	errors "github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/category"
	"github.com/shopspring/decimal"
)

// DatePattern is a shape check only; "9999-99-99" passes.
var DatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

const (
	MsgDateFormat     = "Date must be in YYYY-MM-DD format."
	MsgAmountPositive = "Amount must be a positive number."
)

// Amounts must fit a float64: the decimal order of magnitude stays between
// the smallest subnormal and the largest finite value.
const (
	minAmountMagnitude = -323
	maxAmountMagnitude = 309
)

var ErrAmountRange = fmt.Errorf("amount is outside the float64 range")

type ValidatorFunc func(interface{}) *errors.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []*FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]*FieldValidator, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := &FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return fv
}

func (fv *FieldValidator) RequiredWithMessage(message string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) == "" {
				return errors.NewValidationFieldError(fv.FieldName, message, errors.ErrCodeRequiredField)
			}
		case *string:
			if v == nil || strings.TrimSpace(*v) == "" {
				return errors.NewValidationFieldError(fv.FieldName, message, errors.ErrCodeRequiredField)
			}
		case nil:
			return errors.NewValidationFieldError(fv.FieldName, message, errors.ErrCodeRequiredField)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Matches(re *regexp.Regexp, message string, code errors.ErrorCode) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(string); ok && !re.MatchString(v) {
			return errors.NewValidationFieldError(fv.FieldName, message, code)
		}
		return nil
	})
	return fv
}

// PositiveDecimal accepts strings that parse as a finite float64 greater than zero.
func (fv *FieldValidator) PositiveDecimal(message string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		var d decimal.Decimal
		switch v := value.(type) {
		case string:
			parsed, err := ParseAmount(v)
			if err != nil {
				return errors.NewValidationFieldError(fv.FieldName, message, errors.ErrCodeInvalidAmount)
			}
			d = parsed
		case decimal.Decimal:
			if !InAmountRange(v) {
				return errors.NewValidationFieldError(fv.FieldName, message, errors.ErrCodeInvalidAmount)
			}
			d = v
		default:
			return errors.NewValidationFieldError(fv.FieldName, message, errors.ErrCodeInvalidAmount)
		}
		if !d.IsPositive() {
			return errors.NewValidationFieldError(fv.FieldName, message, errors.ErrCodeInvalidAmount)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) OneOf(options []string, message string, code errors.ErrorCode) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := value.(string)
		if !ok {
			return errors.NewValidationFieldError(fv.FieldName, message, code)
		}
		for _, o := range options {
			if v == o {
				return nil
			}
		}
		return errors.NewValidationFieldError(fv.FieldName, message, code)
	})
	return fv
}

// First runs validators in declaration order and stops at the first failure.
func (v *ValidationBuilder) First() *errors.AppError {
	for _, field := range v.fields {
		for _, validator := range field.Validators {
			if err := validator(field.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

// ValidateDate reports whether s has the YYYY-MM-DD shape. Calendar validity is not checked.
func ValidateDate(s string) bool {
	validator := NewValidator()
	validator.Field("date", s).Matches(DatePattern, MsgDateFormat, errors.ErrCodeInvalidDate)
	return validator.First() == nil
}

// ValidateAmount parses s as a positive decimal.
func ValidateAmount(s string) (decimal.Decimal, *errors.AppError) {
	return PositiveAmount("amount", s, MsgAmountPositive)
}

// PositiveAmount parses raw for field, failing with message when it is not a positive number.
func PositiveAmount(field, raw, message string) (decimal.Decimal, *errors.AppError) {
	validator := NewValidator()
	validator.Field(field, raw).PositiveDecimal(message)
	if err := validator.First(); err != nil {
		return decimal.Zero, err
	}
	amount, _ := ParseAmount(raw)
	return amount, nil
}

// ParseAmount reads raw as a number a float64 could hold and returns its exact
// decimal value. Overflow, underflow, Inf and NaN are rejected.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return decimal.Zero, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero, ErrAmountRange
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if !InAmountRange(d) || (f == 0 && !d.IsZero()) {
		return decimal.Zero, ErrAmountRange
	}
	return d, nil
}

// InAmountRange bounds the order of magnitude of d without expanding it.
func InAmountRange(d decimal.Decimal) bool {
	if d.IsZero() {
		return true
	}
	magnitude := int64(d.NumDigits()) + int64(d.Exponent())
	return magnitude >= minAmountMagnitude && magnitude <= maxAmountMagnitude
}

func ValidateCategory(name string) *errors.AppError {
	validator := NewValidator()
	validator.Field("category", name).
		OneOf(category.Names(), CategoryMessage(), errors.ErrCodeInvalidCategory)
	return validator.First()
}

func CategoryMessage() string {
	return fmt.Sprintf("Category must be one of: %s", strings.Join(category.Names(), ", "))
}
