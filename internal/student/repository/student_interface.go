package repository

import studentdomain "edupath-backend/internal/student/domain"

// StudentRepository defines storage operations for student records.
type StudentRepository interface {
	Create(student *studentdomain.Student) error
	// FindByID returns nil, nil when no record exists.
	FindByID(id string) (*studentdomain.Student, error)
	Update(student *studentdomain.Student) error
	Delete(id string) error
	List(consultantID, status string, limit, offset int) ([]*studentdomain.Student, int64, error)
}
