package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted at checkout.
const (
	MetodoPaypal      = "paypal"
	MetodoMercadoPago = "mercadopago"
	MetodoWompi       = "wompi"
)

// MetodoPagoValido reports whether m is one of the accepted payment methods.
func MetodoPagoValido(m string) bool {
	switch m {
	case MetodoPaypal, MetodoMercadoPago, MetodoWompi:
		return true
	}
	return false
}

// Orden is a checkout made by a user. Items is a snapshot of the cart taken at
// creation time; later product edits never change it.
type Orden struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	Items      []OrdenItem     `gorm:"type:jsonb;serializer:json;not null"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoPago string          `gorm:"type:varchar(20);not null"`
	Pagado     bool            `gorm:"not null;default:false"`
	PagadoEn   *time.Time
	CreatedAt  time.Time `gorm:"index"`
}

func (Orden) TableName() string { return "ordenes" }

// OrdenItem is one denormalized cart line.
type OrdenItem struct {
	ProductoID uuid.UUID       `json:"productId"`
	Nombre     string          `json:"name"`
	Precio     decimal.Decimal `json:"price"`
	Cantidad   int             `json:"quantity"`
}
