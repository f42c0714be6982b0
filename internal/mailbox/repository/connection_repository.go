package repository

import (
	"errors"
	"time"

	"edupath-backend/internal/mailbox/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// connectionRepository implements ConnectionRepository
type connectionRepository struct {
	db *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{
		db: db,
	}
}

func (r *connectionRepository) FindByStudentID(studentID string) (*domain.GmailConnection, error) {
	var conn domain.GmailConnection
	err := r.db.Where("student_id = ?", studentID).First(&conn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conn, nil
}

func (r *connectionRepository) Save(conn *domain.GmailConnection) error {
	if conn.ID == "" {
		conn.ID = uuid.New().String()
	}
	conn.CreatedAt = time.Now()
	conn.UpdatedAt = time.Now()
	return r.db.Create(conn).Error
}

func (r *connectionRepository) Update(conn *domain.GmailConnection) error {
	conn.UpdatedAt = time.Now()
	return r.db.Save(conn).Error
}

func (r *connectionRepository) UpdateStatus(studentID, status string) error {
	return r.db.Model(&domain.GmailConnection{}).
		Where("student_id = ?", studentID).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()}).Error
}

func (r *connectionRepository) UpdateLastSync(studentID string, at time.Time) error {
	return r.db.Model(&domain.GmailConnection{}).
		Where("student_id = ?", studentID).
		Updates(map[string]interface{}{"last_sync_at": at, "updated_at": time.Now()}).Error
}

func (r *connectionRepository) Delete(studentID string) error {
	return r.db.Where("student_id = ?", studentID).Delete(&domain.GmailConnection{}).Error
}
