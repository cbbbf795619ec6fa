package models

import "time"

// Offer is a curated marketing asset bundle published for subscriber
// consumption. The classification fields are free text and optional; empty
// strings are stored as NULL.
type Offer struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Thumbnail string    `json:"thumbnail,omitempty"` // Public URL of the thumbnail blob
	DriveLink string    `json:"drive_link"`          // External asset link
	Tipo      string    `json:"tipo,omitempty"`
	Estrutura string    `json:"estrutura,omitempty"`
	Idioma    string    `json:"idioma,omitempty"`
	Nicho     string    `json:"nicho,omitempty"`
	Trafego   string    `json:"trafego,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// OfferInput carries the offer fields supplied on create and edit. The
// thumbnail itself travels as a multipart file part, not in this payload.
type OfferInput struct {
	Title     string `json:"title" validate:"required,min=2,max=200"`
	DriveLink string `json:"drive_link" validate:"required,url"`
	Tipo      string `json:"tipo,omitempty" validate:"omitempty,max=100"`
	Estrutura string `json:"estrutura,omitempty" validate:"omitempty,max=100"`
	Idioma    string `json:"idioma,omitempty" validate:"omitempty,max=100"`
	Nicho     string `json:"nicho,omitempty" validate:"omitempty,max=100"`
	Trafego   string `json:"trafego,omitempty" validate:"omitempty,max=100"`
}

// OfferFilter narrows an offer listing. Classification fields match exactly,
// Search is a case-insensitive substring match over the title; all conditions
// are ANDed. The zero value matches everything.
type OfferFilter struct {
	Tipo      string
	Estrutura string
	Idioma    string
	Nicho     string
	Trafego   string
	Search    string
}
