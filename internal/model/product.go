package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null;index" json:"name"`

	Products []Product `json:"products,omitempty"`
}

type Product struct {
	BaseModel
	Name        string          `gorm:"type:varchar(200);not null;index" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	Active      bool            `json:"active"`
	CategoryID  uuid.UUID       `gorm:"type:varchar(36);not null;index" json:"category_id"`
	Category    *Category       `json:"category,omitempty"`
}
