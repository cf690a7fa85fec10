package model

import "github.com/google/uuid"

// Supplier is independent of products in this system.
type Supplier struct {
	BaseModel
	Name    string `gorm:"type:varchar(100);not null" json:"name"`
	Company string `gorm:"type:varchar(150);index" json:"company"`
	Phone   string `gorm:"type:varchar(30)" json:"phone"`
	Email   string `gorm:"type:varchar(255)" json:"email"`
}

// Client is a customer, optionally linked to a login account.
type Client struct {
	BaseModel
	FirstName string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string     `gorm:"type:varchar(100);not null;index" json:"last_name"`
	Email     string     `gorm:"type:varchar(255)" json:"email"`
	Phone     string     `gorm:"type:varchar(30)" json:"phone"`
	UserID    *uuid.UUID `gorm:"type:varchar(36);uniqueIndex" json:"user_id,omitempty"`
}

func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}
