package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is an authentication account.
type User struct {
	BaseModel
	Username     string     `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"type:varchar(255)" json:"email"`
	Password     string     `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FullName     string     `gorm:"type:varchar(255)" json:"full_name"`
	IsSuperuser  bool       `json:"is_superuser"`
	IsActive     bool       `json:"is_active"`
	TokenVersion string     `gorm:"type:varchar(64)" json:"-"` // rotated on login/logout
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`

	Profile *UserProfile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Client  *Client      `gorm:"foreignKey:UserID" json:"client,omitempty"`
}

// UserProfile gives a staff (or client) account its role.
type UserProfile struct {
	BaseModel
	UserID     uuid.UUID `gorm:"type:varchar(36);uniqueIndex;not null" json:"user_id"`
	Role       Role      `gorm:"type:varchar(20);not null;index" json:"role"`
	Department string    `gorm:"type:varchar(100)" json:"department"`
	Active     bool      `json:"active"`
	HireDate   time.Time `json:"hire_date"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID          uuid.UUID    `json:"id"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	FullName    string       `json:"full_name"`
	IsSuperuser bool         `json:"is_superuser"`
	IsActive    bool         `json:"is_active"`
	LastLoginAt *time.Time   `json:"last_login_at,omitempty"`
	Profile     *UserProfile `json:"profile,omitempty"`
	ClientID    *uuid.UUID   `json:"client_id,omitempty"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		IsSuperuser: u.IsSuperuser,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		Profile:     u.Profile,
	}
	if u.Client != nil {
		id := u.Client.ID
		resp.ClientID = &id
	}
	return resp
}
