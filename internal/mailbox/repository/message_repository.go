package repository

import (
	"errors"
	"time"

	"edupath-backend/internal/mailbox/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// messageRepository implements MessageRepository
type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{
		db: db,
	}
}

func (r *messageRepository) Upsert(msg *domain.EmailMessage) error {
	now := time.Now()
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	msg.CreatedAt = now
	msg.UpdatedAt = now

	// Conflict on the natural key keeps repeated syncs idempotent: the
	// update path only refreshes the mutable fields.
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "gmail_message_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"snippet", "body", "label_ids", "updated_at",
		}),
	}).Create(msg).Error
}

func (r *messageRepository) ListByStudent(studentID string, limit, offset int) ([]*domain.EmailMessage, int64, error) {
	var total int64
	if err := r.db.Model(&domain.EmailMessage{}).
		Where("student_id = ?", studentID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []*domain.EmailMessage
	err := r.db.Where("student_id = ?", studentID).
		Order("internal_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

func (r *messageRepository) ListAllByStudent(studentID string) ([]*domain.EmailMessage, error) {
	var messages []*domain.EmailMessage
	err := r.db.Where("student_id = ?", studentID).
		Order("internal_date DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) FindByGmailID(studentID, gmailMessageID string) (*domain.EmailMessage, error) {
	var msg domain.EmailMessage
	err := r.db.Where("student_id = ? AND gmail_message_id = ?", studentID, gmailMessageID).First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepository) CountByStudent(studentID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.EmailMessage{}).
		Where("student_id = ?", studentID).
		Count(&count).Error
	return count, err
}
