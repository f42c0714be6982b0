package usecase

import (
	offerdomain "edupath-backend/internal/offer/domain"
	offerdto "edupath-backend/internal/offer/dto"
)

// OfferUsecase manages fee offers and their status transitions.
type OfferUsecase interface {
	Create(studentID string, req *offerdto.CreateOfferRequest) (*offerdomain.Offer, error)
	Get(id string) (*offerdomain.Offer, error)
	ListByStudent(studentID string) ([]*offerdomain.Offer, error)
	// Send moves a draft offer to sent.
	Send(id string) (*offerdomain.Offer, error)
	// Respond records the student's answer on a sent offer.
	Respond(id, response string) (*offerdomain.Offer, error)
}
