package validator

import (
	"meteocal/core/validator"
	"meteocal/modules/auth/dto"
)

func ValidateRegisterRequest(req *dto.RegisterRequest) *validator.ValidationResult {
	result := validator.NewValidationResult()
	result.MinLength("first_name", req.FirstName, 3, "The first name must have at least 3 characters")
	result.MinLength("last_name", req.LastName, 3, "The last name must have at least 3 characters")
	if !validator.IsValidEmail(req.Email) {
		result.AddError("email", "Invalid email")
	}
	if len(req.Password) < 8 {
		result.AddError("password", "Password must have at least 8 characters")
	}
	return result
}

func ValidateLoginRequest(req *dto.LoginRequest) *validator.ValidationResult {
	result := validator.NewValidationResult()
	result.Required("email", req.Email, "Email is required")
	result.Required("password", req.Password, "Password is required")
	return result
}
