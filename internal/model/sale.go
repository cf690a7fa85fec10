package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a sales header. Total is derived from its line items.
type Sale struct {
	BaseModel
	SoldAt   time.Time       `gorm:"not null;index" json:"sold_at"`
	Total    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	ClientID *uuid.UUID      `gorm:"type:varchar(36);index" json:"client_id,omitempty"`
	Client   *Client         `json:"client,omitempty"`
	SoldByID uuid.UUID       `gorm:"type:varchar(36);not null;index" json:"sold_by_id"`
	SoldBy   *User           `gorm:"foreignKey:SoldByID" json:"sold_by,omitempty"`

	Items []SaleLineItem `json:"items,omitempty"`
}

// SaleLineItem is one product/quantity pair of a sale, priced at sale time.
type SaleLineItem struct {
	BaseModel
	SaleID    uuid.UUID       `gorm:"type:varchar(36);not null;index" json:"sale_id"`
	Sale      *Sale           `json:"sale,omitempty"`
	ProductID uuid.UUID       `gorm:"type:varchar(36);not null;index" json:"product_id"`
	Product   *Product        `json:"product,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}
