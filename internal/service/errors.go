package service

import "errors"

// Sentinel errors wrapped by the typed apierror values the services return.
var (
	ErrEmailRegistrado      = errors.New("email already registered")
	ErrUsuarioNoEncontrado  = errors.New("user not found")
	ErrPasswordIncorrecta   = errors.New("wrong password")
	ErrImagenRequerida      = errors.New("image required")
	ErrProductoNoEncontrado = errors.New("product not found")
	ErrOrdenNoEncontrada    = errors.New("order not found")
	ErrDatosInvalidos       = errors.New("invalid input")
	ErrTokenInvalido        = errors.New("invalid token")
)
