package models

import "time"

type Client struct {
	ID          int       `json:"id"`
	FullName    string    `json:"full_name"`
	PhoneNumber string    `json:"phone_number"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateClientRequest represents the request body for creating a client
type CreateClientRequest struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// UpdateClientRequest represents the request body for updating a client
type UpdateClientRequest struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// ClientDetail is a client with every payment and purchase and their totals.
type ClientDetail struct {
	Client    Client     `json:"client"`
	Payments  []Payment  `json:"payments"`
	Purchases []Purchase `json:"purchases"`
	Summary   Summary    `json:"summary"`
}
