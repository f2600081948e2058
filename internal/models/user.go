package models

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Type     string `json:"type"` // "admin" or anything else
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}
