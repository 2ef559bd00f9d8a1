package dto

import "time"

// CreateUnitRequest entrada para crear una unidad de medida.
type CreateUnitRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=100"`
	Abbreviation string `json:"abbreviation" validate:"omitempty,max=10"`
}

// UpdateUnitRequest entrada para actualizar una unidad de medida.
type UpdateUnitRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=100"`
	Abbreviation *string `json:"abbreviation" validate:"omitempty,max=10"`
}

// UnitResponse salida de una unidad de medida.
type UnitResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Abbreviation string    `json:"abbreviation,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UnitListResponse lista paginada de unidades.
type UnitListResponse struct {
	Items []UnitResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
