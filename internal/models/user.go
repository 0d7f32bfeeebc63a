package models

import "gorm.io/gorm"

const (
	RoleAgent = "agent"
	RoleAdmin = "admin"
)

type User struct {
	gorm.Model

	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string // empty for accounts created through Google login
	FirstName    string
	LastName     string
	Role         string `gorm:"not null;default:agent"`
	IsActive     bool   `gorm:"not null;default:true"`

	// Relationships
	Leads []Lead `gorm:"foreignKey:AgentID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
