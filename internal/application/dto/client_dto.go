package dto

import "time"

// ClientRequest entrada para crear o actualizar un cliente.
type ClientRequest struct {
	Name    string `json:"name" validate:"notblank,max=150"`
	DNI     string `json:"dni" validate:"notblank,max=20"`
	Phone   string `json:"phone" validate:"max=30"`
	Email   string `json:"email" validate:"omitempty,email,max=150"`
	Address string `json:"address" validate:"max=255"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	DNI          string    `json:"dni"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Address      string    `json:"address"`
	RegisteredAt time.Time `json:"registered_at"`
}

// ClientListResponse lista paginada de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
