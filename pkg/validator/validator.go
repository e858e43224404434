package validator

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()

	// briefing_quality accepts the three supported tiers or empty (defaulted later)
	_ = v.RegisterValidation("briefing_quality", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", "compact", "standard", "deep":
			return true
		}
		return false
	})

	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
