package dto

// LoginRequest carries the credentials for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@kampus.ac.id"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// RefreshTokenRequest carries the refresh token for POST /auth/refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ChangePasswordRequest carries the passwords for PUT /auth/password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UpdateUserStatusRequest carries the flag for PUT /users/{id}/status
type UpdateUserStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// TokenResponse is the token pair issued on login and refresh
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
	TokenType        string `json:"tokenType" example:"Bearer"`
}

// ProfileResponse describes the authenticated account and its linked record
type ProfileResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role" example:"STUDENT"`
	// LinkedID is the lecturer/student record backing the account; 0 for admins.
	LinkedID int64 `json:"linkedId,omitempty"`
}
