package models

import (
	"encoding/json"
	"errors"
	"time"
)

// AssociationKind discriminates what a landing page is tied to.
type AssociationKind string

const (
	AssociationNone     AssociationKind = ""
	AssociationOffer    AssociationKind = "oferta"
	AssociationCreative AssociationKind = "criativo"
)

// ErrAmbiguousAssociation is returned when a stored row carries both foreign
// keys at once, which violates the landing page invariant.
var ErrAmbiguousAssociation = errors.New("landing page references both an offer and a creative")

// Association is the tagged union {Offer(id) | Creative(id) | None}. The zero
// value is None. Constructing it through the helpers below keeps the
// discriminant and the id consistent.
type Association struct {
	kind AssociationKind
	id   string
}

// AssociateOffer ties a landing page to the offer with the given id.
func AssociateOffer(id string) Association {
	return Association{kind: AssociationOffer, id: id}
}

// AssociateCreative ties a landing page to the creative with the given id.
func AssociateCreative(id string) Association {
	return Association{kind: AssociationCreative, id: id}
}

// ParseAssociation rebuilds the union from stored columns. Exactly the foreign
// key matching the kind must be set; a row with both keys set is a
// data-integrity violation.
func ParseAssociation(kind AssociationKind, offerID, creativeID *string) (Association, error) {
	if offerID != nil && creativeID != nil {
		return Association{}, ErrAmbiguousAssociation
	}
	switch kind {
	case AssociationNone:
		if offerID != nil || creativeID != nil {
			return Association{}, errors.New("unassociated landing page carries a foreign key")
		}
		return Association{}, nil
	case AssociationOffer:
		if offerID == nil {
			return Association{}, errors.New("association_type is oferta but oferta_id is null")
		}
		return AssociateOffer(*offerID), nil
	case AssociationCreative:
		if creativeID == nil {
			return Association{}, errors.New("association_type is criativo but criativo_id is null")
		}
		return AssociateCreative(*creativeID), nil
	default:
		return Association{}, errors.New("unknown association_type: " + string(kind))
	}
}

// Kind returns the discriminant.
func (a Association) Kind() AssociationKind { return a.kind }

// OfferID returns the associated offer id, if any.
func (a Association) OfferID() (string, bool) {
	if a.kind != AssociationOffer {
		return "", false
	}
	return a.id, true
}

// CreativeID returns the associated creative id, if any.
func (a Association) CreativeID() (string, bool) {
	if a.kind != AssociationCreative {
		return "", false
	}
	return a.id, true
}

// Columns maps the union back onto the stored (kind, oferta_id, criativo_id)
// triple, the foreign key not matching the kind left nil.
func (a Association) Columns() (AssociationKind, *string, *string) {
	switch a.kind {
	case AssociationOffer:
		id := a.id
		return a.kind, &id, nil
	case AssociationCreative:
		id := a.id
		return a.kind, nil, &id
	default:
		return AssociationNone, nil, nil
	}
}

// LandingPage is an external URL tracked for association with an Offer or a
// Creative (or neither).
type LandingPage struct {
	ID          string
	Title       string
	PageURL     string
	Association Association
	CreatedAt   time.Time

	// Titles of the associated entities, populated on reads that join.
	OfferTitle    string
	CreativeTitle string
}

// MarshalJSON flattens the association union back into the discriminated
// column shape clients expect.
func (lp LandingPage) MarshalJSON() ([]byte, error) {
	kind, offerID, creativeID := lp.Association.Columns()
	return json.Marshal(struct {
		ID              string    `json:"id"`
		Title           string    `json:"title"`
		PageURL         string    `json:"page_url"`
		AssociationType string    `json:"association_type,omitempty"`
		OfferID         *string   `json:"oferta_id,omitempty"`
		CreativeID      *string   `json:"criativo_id,omitempty"`
		OfferTitle      string    `json:"oferta_title,omitempty"`
		CreativeTitle   string    `json:"criativo_title,omitempty"`
		CreatedAt       time.Time `json:"created_at"`
	}{
		ID:              lp.ID,
		Title:           lp.Title,
		PageURL:         lp.PageURL,
		AssociationType: string(kind),
		OfferID:         offerID,
		CreativeID:      creativeID,
		OfferTitle:      lp.OfferTitle,
		CreativeTitle:   lp.CreativeTitle,
		CreatedAt:       lp.CreatedAt,
	})
}

// LandingPageInput carries the landing page fields supplied on create and
// edit. AssociationType selects which of the two ids is meaningful; the
// service rejects payloads where the selected id is missing.
type LandingPageInput struct {
	Title           string `json:"title" validate:"required,min=2,max=200"`
	PageURL         string `json:"page_url" validate:"required,url"`
	AssociationType string `json:"association_type,omitempty" validate:"omitempty,oneof=oferta criativo"`
	OfferID         string `json:"oferta_id,omitempty" validate:"omitempty,uuid"`
	CreativeID      string `json:"criativo_id,omitempty" validate:"omitempty,uuid"`
}

// Association validates the discriminated pair and builds the union.
func (in *LandingPageInput) Association() (Association, error) {
	switch AssociationKind(in.AssociationType) {
	case AssociationNone:
		return Association{}, nil
	case AssociationOffer:
		if in.OfferID == "" {
			return Association{}, errors.New("association_type oferta requires oferta_id")
		}
		return AssociateOffer(in.OfferID), nil
	case AssociationCreative:
		if in.CreativeID == "" {
			return Association{}, errors.New("association_type criativo requires criativo_id")
		}
		return AssociateCreative(in.CreativeID), nil
	default:
		return Association{}, errors.New("unknown association_type: " + in.AssociationType)
	}
}
