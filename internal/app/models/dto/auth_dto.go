package dto

import "github.com/yigit/invigilate/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"drasharao"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string          `json:"accessToken"`
	TokenType   string          `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64           `json:"expiresIn" example:"43200"`
	Faculty     *models.Faculty `json:"faculty"`
}
