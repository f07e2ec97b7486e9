package domain

import "time"

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RolePhysio Role = "PHYSIOTHERAPIST"
)

type User struct {
	ID            string `gorm:"primaryKey"`
	Email         string `gorm:"uniqueIndex"`
	PasswordHash  string
	FirstName     string
	LastName      string
	Role          Role `gorm:"index"`
	PhoneNumber   string
	LicenseNumber string
	Active        bool `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
