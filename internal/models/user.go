package models

import "time"

// User represents an operator account able to manage the inventory.
type User struct {
	BaseModel
	Name         string     `gorm:"not null" json:"nome"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Active       bool       `gorm:"default:true" json:"ativo"`
	LastLogin    *time.Time `json:"ultimo_login"`
}
