package model

import (
	"time"
)

// User role constants
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

// User represents a system user. Every user owns their own archive
// regardless of role; doctors can additionally be granted read access to
// other users' archives.
type User struct {
	Base
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	MiddleName   string    `json:"middle_name" db:"middle_name"`
	DateOfBirth  time.Time `json:"date_of_birth" db:"date_of_birth"`
	Gender       string    `json:"gender" db:"gender"`
	Email        string    `json:"email" db:"email"`
	Phone        string    `json:"phone" db:"phone"`
	Address      string    `json:"address" db:"address"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
}

// UpdateUserRequest represents profile update parameters. All fields are
// overwritten unconditionally; partial update is not supported.
type UpdateUserRequest struct {
	FirstName   string    `json:"first_name" binding:"required"`
	LastName    string    `json:"last_name" binding:"required"`
	MiddleName  string    `json:"middle_name"`
	DateOfBirth time.Time `json:"date_of_birth" binding:"required,pastdate" time_format:"2006-01-02"`
	Gender      string    `json:"gender" binding:"required"`
	Phone       string    `json:"phone" binding:"required"`
	Address     string    `json:"address" binding:"required"`
}

// ChangePasswordRequest re-proves knowledge of the current password before
// replacing it.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}
