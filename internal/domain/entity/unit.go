package entity

import "time"

// Unit representa una unidad de medida (ej. kilogramo/kg, unidad/und).
// Nombre único por usuario (constraint en DB).
type Unit struct {
	ID           string
	UserID       string
	Name         string
	Abbreviation string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
