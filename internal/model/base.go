package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel handles ID (UUID) and standard Audit Trails
type BaseModel struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // Soft Delete support

	// Audit User Tracking
	CreatedBy string `gorm:"type:varchar(150)" json:"created_by,omitempty"`
	UpdatedBy string `gorm:"type:varchar(150)" json:"updated_by,omitempty"`
	DeletedBy string `gorm:"type:varchar(150)" json:"-"`
}

// BeforeCreate assigns a UUID unless one was set by the caller.
func (base *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	return
}

// Migrate creates or updates every table the store needs.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&UserProfile{},
		&Category{},
		&Product{},
		&Supplier{},
		&Client{},
		&Sale{},
		&SaleLineItem{},
	)
}
