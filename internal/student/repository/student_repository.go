package repository

import (
	"errors"
	"time"

	studentdomain "edupath-backend/internal/student/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// studentRepository implements StudentRepository
type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{
		db: db,
	}
}

func (r *studentRepository) Create(student *studentdomain.Student) error {
	student.ID = uuid.New().String()
	if student.Status == "" {
		student.Status = studentdomain.StatusProspect
	}
	student.CreatedAt = time.Now()
	student.UpdatedAt = time.Now()
	return r.db.Create(student).Error
}

func (r *studentRepository) FindByID(id string) (*studentdomain.Student, error) {
	var student studentdomain.Student
	err := r.db.Where("id = ?", id).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) Update(student *studentdomain.Student) error {
	student.UpdatedAt = time.Now()
	return r.db.Save(student).Error
}

func (r *studentRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&studentdomain.Student{}).Error
}

func (r *studentRepository) List(consultantID, status string, limit, offset int) ([]*studentdomain.Student, int64, error) {
	query := r.db.Model(&studentdomain.Student{})
	if consultantID != "" {
		query = query.Where("consultant_id = ?", consultantID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var students []*studentdomain.Student
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&students).Error
	if err != nil {
		return nil, 0, err
	}
	return students, total, nil
}
