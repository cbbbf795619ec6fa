package models

import "time"

// Creative is a specific ad asset, optionally tied to one Offer. OfferID is
// nil for an unassociated creative.
type Creative struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	DriveLink string    `json:"drive_link"`
	Nicho     string    `json:"nicho,omitempty"`
	Trafego   string    `json:"trafego,omitempty"`
	Idioma    string    `json:"idioma,omitempty"`
	OfferID   *string   `json:"oferta_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Offer is the embedded association, populated on reads that join the
	// offers table. Nil when the creative is unassociated.
	Offer *Offer `json:"oferta,omitempty"`
}

// CreativeInput carries the creative fields supplied on create and edit.
// OfferID is the optional association; an empty string clears it.
type CreativeInput struct {
	Title     string `json:"title" validate:"required,min=2,max=200"`
	DriveLink string `json:"drive_link" validate:"required,url"`
	Nicho     string `json:"nicho,omitempty" validate:"omitempty,max=100"`
	Trafego   string `json:"trafego,omitempty" validate:"omitempty,max=100"`
	Idioma    string `json:"idioma,omitempty" validate:"omitempty,max=100"`
	OfferID   string `json:"oferta_id,omitempty" validate:"omitempty,uuid"`
}

// CreativeFilter narrows a creative listing. Search matches the creative title
// or the joined offer title, case-insensitive.
type CreativeFilter struct {
	Nicho   string
	Trafego string
	Idioma  string
	OfferID string
	Search  string
}
