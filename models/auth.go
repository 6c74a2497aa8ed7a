package models

// LoginRequest represents the payload for admin login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Admin is the account summary returned alongside a login token
type Admin struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Token string `json:"token"`
	Admin *Admin `json:"admin,omitempty"`
}

// ErrorResponse is the storefront's error body shape
type ErrorResponse struct {
	Message string `json:"message"`
}
