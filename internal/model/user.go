package model

import "time"

// User stores account metadata. The ID mirrors the identifier used by the
// remote store so locally cached tasks stay attached to the right owner.
type User struct {
	ID        string `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex"`
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
