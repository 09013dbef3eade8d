package validator

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^[a-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+(?:\.[a-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+)*@(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$`)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Errors []FieldError `json:"errors"`
}

func NewValidationResult() *ValidationResult {
	return &ValidationResult{Errors: []FieldError{}}
}

func (v *ValidationResult) AddError(field, message string) {
	v.Errors = append(v.Errors, FieldError{Field: field, Message: message})
}

func (v *ValidationResult) HasError() bool {
	return len(v.Errors) > 0
}

// MinLength checks the trimmed rune length of value.
func (v *ValidationResult) MinLength(field, value string, min int, message string) {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < min {
		v.AddError(field, message)
	}
}

func (v *ValidationResult) Required(field, value string, message string) {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, message)
	}
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
