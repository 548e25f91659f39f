package models

import "time"

// User roles. Administrators manage users; they hold no accounts of their own
// and are rejected from every account-facing endpoint.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"default:'user'" json:"-"`
	Accounts  []Account `gorm:"foreignKey:UserID" json:"accounts"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
