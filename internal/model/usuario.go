package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RolAdmin   = "admin"
	RolUsuario = "user"
)

// Usuario stores registered customers and administrators.
// Rol: "admin" | "user"
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Rol          string    `gorm:"type:varchar(10);not null;default:'user'"`
	// ImagenPerfil is the public path under /uploads/users; nil until uploaded
	ImagenPerfil *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
