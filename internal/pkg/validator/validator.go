package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Product category validation
	validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		category := fl.Field().String()
		validCategories := []string{
			"tools", "games", "ai", "productivity", "education",
			"design", "development", "marketing", "finance",
		}
		for _, c := range validCategories {
			if category == c {
				return true
			}
		}
		return false
	})

	// Banner placement validation
	validate.RegisterValidation("placement", func(fl validator.FieldLevel) bool {
		placement := fl.Field().String()
		validPlacements := []string{"main-left", "main-right", "product"}
		for _, p := range validPlacements {
			if placement == p {
				return true
			}
		}
		return false
	})

	// Listing sort key validation
	validate.RegisterValidation("sort", func(fl validator.FieldLevel) bool {
		sort := fl.Field().String()
		validSorts := []string{"newest", "popular", ""}
		for _, s := range validSorts {
			if sort == s {
				return true
			}
		}
		return false
	})

	// Username validation: lowercase letters, digits, underscore, 3-30 chars
	validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		username := fl.Field().String()
		if len(username) < 3 || len(username) > 30 {
			return false
		}
		for _, r := range username {
			if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '_' {
				return false
			}
		}
		return true
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "url":
			errors[field] = "Invalid URL format"
		case "category":
			errors[field] = "Invalid category"
		case "placement":
			errors[field] = "Invalid placement. Must be: main-left, main-right, or product"
		case "sort":
			errors[field] = "Invalid sort. Must be: newest or popular"
		case "username":
			errors[field] = "Username must be 3-30 lowercase letters, digits, or underscores"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
