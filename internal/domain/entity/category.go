package entity

import "time"

// Category representa una categoría de productos (clasificación simple).
// Nombre único por usuario (constraint en DB).
type Category struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
