package dto

// RegisterRequest carries the registration payload. Shape is checked by
// binding; content rules live in the domain.
type RegisterRequest struct {
	FullName     string `json:"fullName" binding:"required"`
	EmailAddress string `json:"emailAddress" binding:"required"`
	AccountType  string `json:"accountType" binding:"omitempty,oneof=personal business savings"`
	Password     string `json:"password" binding:"required"`
}

// LoginRequest carries the login credentials
type LoginRequest struct {
	EmailAddress string `json:"emailAddress" binding:"required"`
	Password     string `json:"password" binding:"required"`
}

// AuthData pairs the user payload with its issued token
type AuthData struct {
	User      UserData `json:"user"`
	AuthToken string   `json:"authToken"`
}
