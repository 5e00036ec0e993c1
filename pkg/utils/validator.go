package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire format of every date field.
const DateLayout = "2006-01-02"

// earliestReleaseDate is the day cinema was born; no film predates it.
var earliestReleaseDate = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("notblank", validNotBlank)
	v.RegisterValidation("login", validLogin)
	v.RegisterValidation("birthdate", validBirthdate)
	v.RegisterValidation("releasedate", validReleaseDate)
	return v
}

// validNotBlank rejects strings that are empty or whitespace only.
func validNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validLogin rejects blank logins and logins containing whitespace.
func validLogin(fl validator.FieldLevel) bool {
	login := fl.Field().String()
	return strings.TrimSpace(login) != "" && !strings.ContainsAny(login, " \t")
}

// validBirthdate accepts a yyyy-mm-dd date not in the future.
func validBirthdate(fl validator.FieldLevel) bool {
	date, err := time.Parse(DateLayout, fl.Field().String())
	if err != nil {
		return false
	}
	return !date.After(time.Now())
}

// validReleaseDate accepts a yyyy-mm-dd date not before 1895-12-28.
func validReleaseDate(fl validator.FieldLevel) bool {
	date, err := time.Parse(DateLayout, fl.Field().String())
	if err != nil {
		return false
	}
	return !date.Before(earliestReleaseDate)
}

func ValidateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			errors[err.Field()] = getErrorMessage(err)
		}
	}

	return errors
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("Minimum length is %s", err.Param())
	case "max":
		return fmt.Sprintf("Maximum length is %s", err.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", err.Param())
	case "notblank":
		return "This field cannot be blank"
	case "login":
		return "Login must be non-empty and contain no whitespace"
	case "birthdate":
		return "Birthday must be a yyyy-mm-dd date not in the future"
	case "releasedate":
		return "Release date must be a yyyy-mm-dd date not before 1895-12-28"
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

// formats validation errors map into single string
func FormatValidationErrors(errors map[string]string) string {
	var msgs []string
	for field, msg := range errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}
