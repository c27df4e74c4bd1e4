package dto

// RegisterRequest represents a new account registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents an issued identity token
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

// StudentResponse represents the caller-visible part of an account
type StudentResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ChangePasswordRequest resets the password for the given email. The target
// email must belong to the authenticated caller.
type ChangePasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateProfileRequest updates the caller's name and, when non-empty,
// the password.
type UpdateProfileRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"omitempty,min=8"`
}
