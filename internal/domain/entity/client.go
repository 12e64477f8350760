package entity

import "time"

// Client es el paciente o comprador al que se le registra una venta. DNI es único.
type Client struct {
	ID           int64
	Name         string
	DNI          string
	Phone        string
	Email        string
	Address      string
	RegisteredAt time.Time
}
