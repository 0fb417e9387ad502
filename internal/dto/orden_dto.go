package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OrdenItemRequest struct {
	ProductID string          `json:"productId" validate:"required,uuid"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"     validate:"min=0"`
	Quantity  int             `json:"quantity"  validate:"min=0"`
}

// CrearOrdenRequest is stored as submitted: Total is not checked against the
// items. A nil Total is rejected by the service.
type CrearOrdenRequest struct {
	Items         []OrdenItemRequest `json:"items"         validate:"required,min=1,dive"`
	Total         *decimal.Decimal   `json:"total"`
	PaymentMethod string             `json:"paymentMethod" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrdenItemResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type OrdenResponse struct {
	ID            string              `json:"id"`
	User          string              `json:"user"`
	Items         []OrdenItemResponse `json:"items"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod string              `json:"paymentMethod"`
	IsPaid        bool                `json:"isPaid"`
	PaidAt        *time.Time          `json:"paidAt"`
	CreatedAt     time.Time           `json:"createdAt"`
}

type CrearOrdenResponse struct {
	Ok    bool          `json:"ok"`
	Order OrdenResponse `json:"order"`
}

type ListarOrdenesResponse struct {
	Ok     bool            `json:"ok"`
	Orders []OrdenResponse `json:"orders"`
}
