package domain

import (
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks intake candidates before they reach a repository.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator reporting fields by their JSON names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsInf(f, 0) && !math.IsNaN(f)
	})
	return &Validator{validate: v}
}

// Validate returns the normalized donation or a *ValidationError naming every
// rejected field. It has no side effects.
func (v *Validator) Validate(c DonationCandidate) (ValidDonation, error) {
	if err := v.validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return ValidDonation{}, toValidationError(verrs)
		}
		return ValidDonation{}, err
	}
	valid := ValidDonation{
		DonorName: *c.DonorName,
		Amount:    *c.Amount,
		Currency:  *c.Currency,
	}
	if c.Message != nil {
		valid.Message = cloneString(c.Message)
	}
	return valid, nil
}

func toValidationError(verrs validator.ValidationErrors) *ValidationError {
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "notblank":
		return "must not be empty"
	case "gt":
		return "must be greater than " + fe.Param()
	case "finite":
		return "must be a finite number"
	default:
		return "invalid value"
	}
}
