package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CrearProductoRequest accepts precio as a JSON number or a numeric string.
type CrearProductoRequest struct {
	Categoria       string          `json:"categoria"       validate:"required"`
	Marca           string          `json:"marca"           validate:"required"`
	Modelo          string          `json:"modelo"          validate:"required"`
	Precio          decimal.Decimal `json:"precio"          validate:"required,gt=0"`
	Descripcion     string          `json:"descripcion"     validate:"required,min=20"`
	Imagenes        []string        `json:"imagenes"        validate:"required,min=1,max=5,dive,required"`
	Stock           *int            `json:"stock"           validate:"omitempty,min=0"`
	Disponible      *bool           `json:"disponible"`
	Destacado       *bool           `json:"destacado"`
	Caracteristicas []string        `json:"caracteristicas" validate:"omitempty,dive,required"`
}

// ActualizarProductoRequest is a partial update: nil fields are left untouched.
type ActualizarProductoRequest struct {
	Categoria       *string          `json:"categoria"       validate:"omitempty,min=1"`
	Marca           *string          `json:"marca"           validate:"omitempty,min=1"`
	Modelo          *string          `json:"modelo"          validate:"omitempty,min=1"`
	Precio          *decimal.Decimal `json:"precio"          validate:"omitempty,min=0"`
	Descripcion     *string          `json:"descripcion"`
	Imagenes        *[]string        `json:"imagenes"        validate:"omitempty,min=1,max=5"`
	Stock           *int             `json:"stock"           validate:"omitempty,min=0"`
	Disponible      *bool            `json:"disponible"`
	Destacado       *bool            `json:"destacado"`
	Caracteristicas *[]string        `json:"caracteristicas"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// ProductoFilter backs GET /api/products: exact matches, inclusive price range.
type ProductoFilter struct {
	Categoria string   `form:"categoria"`
	Marca     string   `form:"marca"`
	MinPrice  *float64 `form:"minPrice" validate:"omitempty,min=0"`
	MaxPrice  *float64 `form:"maxPrice" validate:"omitempty,min=0"`
}

// BusquedaAvanzadaFilter backs GET /api/products/search/advanced.
// Marca and Modelo match case-insensitive substrings.
type BusquedaAvanzadaFilter struct {
	Categoria string   `form:"categoria"`
	Marca     string   `form:"marca"`
	Modelo    string   `form:"modelo"`
	MinPrice  *float64 `form:"minPrice"  validate:"omitempty,min=0"`
	MaxPrice  *float64 `form:"maxPrice"  validate:"omitempty,min=0"`
	SortBy    string   `form:"sortBy,default=precio" validate:"oneof=precio marca modelo categoria stock createdAt"`
	SortOrder string   `form:"sortOrder,default=asc" validate:"oneof=asc desc"`
	Page      int      `form:"page,default=1"   validate:"min=1"`
	Limit     int      `form:"limit,default=10" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID              string          `json:"id"`
	Categoria       string          `json:"categoria"`
	Marca           string          `json:"marca"`
	Modelo          string          `json:"modelo"`
	NombreCompleto  string          `json:"nombreCompleto"`
	Precio          decimal.Decimal `json:"precio"`
	Descripcion     string          `json:"descripcion"`
	Imagenes        []string        `json:"imagenes"`
	Stock           int             `json:"stock"`
	Disponible      bool            `json:"disponible"`
	Destacado       bool            `json:"destacado"`
	Caracteristicas []string        `json:"caracteristicas"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type BusquedaAvanzadaResponse struct {
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
	Products   []ProductoResponse `json:"products"`
}

type ImagenesResponse struct {
	Imagenes []string `json:"imagenes"`
}

type MensajeResponse struct {
	Message string `json:"message"`
}
