package repository

import offerdomain "edupath-backend/internal/offer/domain"

// OfferRepository defines storage operations for fee offers.
type OfferRepository interface {
	Create(offer *offerdomain.Offer) error
	// FindByID returns nil, nil when no record exists.
	FindByID(id string) (*offerdomain.Offer, error)
	Update(offer *offerdomain.Offer) error
	ListByStudent(studentID string) ([]*offerdomain.Offer, error)
}
