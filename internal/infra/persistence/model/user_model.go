// Package model holds the GORM persistence models. They never leave the infra layer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. The id is derived by the application, not by PostgreSQL.
// Seq is filled by the database and records insertion order.
// Username is indexed for lookups but not unique: only inserts check it.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"type:varchar(255);index:idx_users_username_lookup;not null"`
	Seq       int64     `gorm:"autoIncrement;not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// LegacyUsernameUniqueIndex is the unique index older schemas put on username.
const LegacyUsernameUniqueIndex = "idx_users_username"
