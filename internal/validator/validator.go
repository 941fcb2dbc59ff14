// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var verificationCodeRegex = regexp.MustCompile(`^[0-9]{6}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("category_type", validateCategoryType)
		_ = v.RegisterValidation("verification_code", validateVerificationCode)
	}
}

func validateCategoryType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateVerificationCode(fl validator.FieldLevel) bool {
	return verificationCodeRegex.MatchString(fl.Field().String())
}
