package repository

import (
	"errors"
	"time"

	offerdomain "edupath-backend/internal/offer/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// offerRepository implements OfferRepository
type offerRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &offerRepository{
		db: db,
	}
}

func (r *offerRepository) Create(offer *offerdomain.Offer) error {
	offer.ID = uuid.New().String()
	offer.CreatedAt = time.Now()
	offer.UpdatedAt = time.Now()
	return r.db.Create(offer).Error
}

func (r *offerRepository) FindByID(id string) (*offerdomain.Offer, error) {
	var offer offerdomain.Offer
	err := r.db.Where("id = ?", id).First(&offer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &offer, nil
}

func (r *offerRepository) Update(offer *offerdomain.Offer) error {
	offer.UpdatedAt = time.Now()
	return r.db.Save(offer).Error
}

func (r *offerRepository) ListByStudent(studentID string) ([]*offerdomain.Offer, error) {
	var offers []*offerdomain.Offer
	err := r.db.Where("student_id = ?", studentID).Order("created_at DESC").Find(&offers).Error
	if err != nil {
		return nil, err
	}
	return offers, nil
}
