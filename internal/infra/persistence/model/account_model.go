package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. IDs are UUIDv7 assigned by the application.
// It is an exported type so the schema can be migrated from other packages.
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role         string    `gorm:"type:varchar(20);not null;index"`
	FirstName    string    `gorm:"type:varchar(100);not null"`
	LastName     string    `gorm:"type:varchar(100)"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_accounts_email"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`

	// Captain columns, null for riders.
	CaptainStatus   *string `gorm:"type:varchar(20)"`
	VehicleColor    *string `gorm:"type:varchar(50)"`
	VehiclePlate    *string `gorm:"type:varchar(50)"`
	VehicleCapacity *int
	VehicleType     *string `gorm:"type:varchar(20)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
