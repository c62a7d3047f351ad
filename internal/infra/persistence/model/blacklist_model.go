package model

import "time"

// BlacklistedTokenModel mirrors the 'blacklisted_tokens' table.
type BlacklistedTokenModel struct {
	Token     string    `gorm:"type:text;primaryKey"`
	CreatedAt time.Time `gorm:"not null;index:idx_blacklisted_tokens_created_at"`
}

// TableName explicitly sets the table name for GORM.
func (BlacklistedTokenModel) TableName() string {
	return "blacklisted_tokens"
}

// Models lists every persistence model for schema migration.
func Models() []any {
	return []any{
		&AccountModel{},
		&BlacklistedTokenModel{},
	}
}
