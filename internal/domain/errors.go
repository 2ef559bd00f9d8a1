package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// ErrInvalidOperation: la operación es imposible bajo el estado actual
	// (ej. el stock quedaría negativo). Reintentar con la misma entrada
	// reproduce el mismo fallo.
	ErrInvalidOperation = errors.New("operación inválida para el estado actual")

	// ErrInsufficientStock es un ErrInvalidOperation concreto: errors.Is lo
	// detecta con cualquiera de los dos centinelas.
	ErrInsufficientStock = fmt.Errorf("stock insuficiente: %w", ErrInvalidOperation)
)
