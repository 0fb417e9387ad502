package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MaxImagenesProducto = 5
	StockPorDefecto     = 5
)

// Producto is a catalog entry. Imagenes and Caracteristicas live in jsonb
// columns; NombreCompleto is derived and never stored.
// Stock and Disponible carry no gorm default: GORM would replace an explicit
// zero value with it on insert. The service fills the defaults instead.
type Producto struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Categoria       string          `gorm:"index;not null"`
	Marca           string          `gorm:"index;not null"`
	Modelo          string          `gorm:"index;not null"`
	Precio          decimal.Decimal `gorm:"type:decimal(12,2);index;not null"`
	Descripcion     string          `gorm:"type:text;not null"`
	Imagenes        []string        `gorm:"type:jsonb;serializer:json;not null"`
	Stock           int             `gorm:"not null"`
	Disponible      bool            `gorm:"not null"`
	Destacado       bool            `gorm:"not null;default:false"`
	Caracteristicas []string        `gorm:"type:jsonb;serializer:json"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NombreCompleto returns "<marca> <modelo>".
func (p *Producto) NombreCompleto() string {
	return p.Marca + " " + p.Modelo
}
