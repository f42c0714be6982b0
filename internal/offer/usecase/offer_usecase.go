package usecase

import (
	"errors"
	"fmt"
	"time"

	offerdomain "edupath-backend/internal/offer/domain"
	offerdto "edupath-backend/internal/offer/dto"
	"edupath-backend/internal/offer/repository"
)

var (
	ErrOfferNotFound = errors.New("offer not found")
	ErrInvalidState  = errors.New("invalid offer state")
)

// offerUsecase implements OfferUsecase
type offerUsecase struct {
	offerRepo repository.OfferRepository
	now       func() time.Time
}

func NewOfferUsecase(offerRepo repository.OfferRepository) OfferUsecase {
	return &offerUsecase{
		offerRepo: offerRepo,
		now:       time.Now,
	}
}

func (u *offerUsecase) Create(studentID string, req *offerdto.CreateOfferRequest) (*offerdomain.Offer, error) {
	offer := &offerdomain.Offer{
		StudentID:   studentID,
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Status:      offerdomain.StatusDraft,
	}
	if err := u.offerRepo.Create(offer); err != nil {
		return nil, err
	}
	return offer, nil
}

func (u *offerUsecase) Get(id string) (*offerdomain.Offer, error) {
	offer, err := u.offerRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}
	return offer, nil
}

func (u *offerUsecase) ListByStudent(studentID string) ([]*offerdomain.Offer, error) {
	return u.offerRepo.ListByStudent(studentID)
}

func (u *offerUsecase) Send(id string) (*offerdomain.Offer, error) {
	offer, err := u.Get(id)
	if err != nil {
		return nil, err
	}
	if offer.Status != offerdomain.StatusDraft {
		return nil, fmt.Errorf("%w: cannot send a %s offer", ErrInvalidState, offer.Status)
	}

	offer.Status = offerdomain.StatusSent
	if err := u.offerRepo.Update(offer); err != nil {
		return nil, err
	}
	return offer, nil
}

func (u *offerUsecase) Respond(id, response string) (*offerdomain.Offer, error) {
	if response != offerdomain.StatusAccepted && response != offerdomain.StatusDeclined {
		return nil, fmt.Errorf("%w: unknown response %q", ErrInvalidState, response)
	}

	offer, err := u.Get(id)
	if err != nil {
		return nil, err
	}
	if offer.Status != offerdomain.StatusSent {
		return nil, fmt.Errorf("%w: cannot respond to a %s offer", ErrInvalidState, offer.Status)
	}

	respondedAt := u.now()
	offer.Status = response
	offer.RespondedAt = &respondedAt
	if err := u.offerRepo.Update(offer); err != nil {
		return nil, err
	}
	return offer, nil
}
