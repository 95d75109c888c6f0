package model

// User represents a user row in the database.
type User struct {
	ID             int64
	Username       string
	Email          string
	FirstName      string
	LastName       string
	HashedPassword string
	Role           string
	IsActive       bool
	PhoneNumber    string
}

// CreateUserRequest represents a user registration request.
type CreateUserRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Email       string `json:"email" validate:"required,email,max=50"`
	FirstName   string `json:"first_name" validate:"required,min=1,max=50"`
	LastName    string `json:"last_name" validate:"required,min=1,max=50"`
	Password    string `json:"password" validate:"required,min=6"`
	Role        string `json:"role" validate:"required,min=1,max=50"`
	PhoneNumber string `json:"phone_number" validate:"required,min=6,max=10"`
}

// Validate checks the registration request against its field constraints.
func (r CreateUserRequest) Validate() error {
	return validate.Struct(r)
}

// TokenResponse represents a successful login response.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserResponse represents user data safe for API responses (no hash).
type UserResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsActive    bool   `json:"is_active"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phone_number"`
}

// ChangePasswordRequest represents a password change for the current user.
type ChangePasswordRequest struct {
	Password    string `json:"password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// Validate checks the password change request.
func (r ChangePasswordRequest) Validate() error {
	return validate.Struct(r)
}

// UpdatePhoneRequest represents a phone number update for the current user.
type UpdatePhoneRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,min=6,max=10"`
}

// Validate checks the phone update request.
func (r UpdatePhoneRequest) Validate() error {
	return validate.Struct(r)
}
