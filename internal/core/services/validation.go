package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Omniportal2025/omniportal-sub001/internal/apperrors"
	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// validate is shared by every service; validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = newValidator()

// amountScale is the number of decimal places the amount columns hold.
const amountScale = 2

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	rules := map[string]validator.Func{
		"duedate": func(fl validator.FieldLevel) bool {
			return domain.DueDate(fl.Field().String()).Valid()
		},
		"vat": func(fl validator.FieldLevel) bool {
			return domain.VATClassification(fl.Field().String()).Valid()
		},
		"posdecimal": func(fl validator.FieldLevel) bool {
			d, ok := parseStoredAmount(fl.Field().String())
			return ok && d.IsPositive()
		},
		"nonnegdecimal": func(fl validator.FieldLevel) bool {
			d, ok := parseStoredAmount(fl.Field().String())
			return ok && !d.IsNegative()
		},
		// emptyornonneg accepts "" so an optional amount can be cleared.
		"emptyornonneg": func(fl validator.FieldLevel) bool {
			if strings.TrimSpace(fl.Field().String()) == "" {
				return true
			}
			d, ok := parseStoredAmount(fl.Field().String())
			return ok && !d.IsNegative()
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register validation %q: %v", tag, err))
		}
	}
	return v
}

// parseStoredAmount parses s and reports whether it fits the amount columns
// without rounding.
func parseStoredAmount(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.Equal(d.Truncate(amountScale)) {
		return decimal.Zero, false
	}
	return d, true
}

// validateStruct runs tag validation and folds the first failure into a
// ValidationError naming the field.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return apperrors.NewValidationFailedError(describeFieldError(fieldErrs[0]))
	}
	return apperrors.NewValidationFailedError(err.Error())
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "posdecimal":
		return fmt.Sprintf("%s must be a positive amount with at most %d decimal places", field, amountScale)
	case "nonnegdecimal", "emptyornonneg":
		return fmt.Sprintf("%s must be a non-negative amount with at most %d decimal places", field, amountScale)
	case "duedate":
		return fmt.Sprintf("%s must be one of 5th, 15th, 30th", field)
	case "vat":
		return fmt.Sprintf("%s must be Vatable or Non Vat", field)
	case "datetime":
		return fmt.Sprintf("%s must match %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", field)
}

// parseAmount parses a decimal that has already passed tag validation.
func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
