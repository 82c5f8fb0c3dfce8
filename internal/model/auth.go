package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthRequest types
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type RegisterRequest struct {
	FirstName   string    `json:"first_name" binding:"required"`
	LastName    string    `json:"last_name" binding:"required"`
	MiddleName  string    `json:"middle_name"`
	DateOfBirth time.Time `json:"date_of_birth" binding:"required,pastdate" time_format:"2006-01-02"`
	Gender      string    `json:"gender" binding:"required"`
	Email       string    `json:"email" binding:"required,email"`
	Phone       string    `json:"phone" binding:"required"`
	Address     string    `json:"address" binding:"required"`
	Password    string    `json:"password" binding:"required,min=8"`
	Role        string    `json:"role" binding:"required,oneof=patient doctor"`
}

// TokenResponse is returned on successful login.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	UserID      uuid.UUID `json:"user_id"`
}

// TokenClaims represents JWT claims
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
}
