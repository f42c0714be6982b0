package usecase

import (
	studentdomain "edupath-backend/internal/student/domain"
	studentdto "edupath-backend/internal/student/dto"
)

// StudentUsecase manages student records. Gmail connections hang off these
// records but are owned by the mailbox package.
type StudentUsecase interface {
	Create(req *studentdto.CreateStudentRequest) (*studentdomain.Student, error)
	Get(id string) (*studentdomain.Student, error)
	Update(id string, req *studentdto.UpdateStudentRequest) (*studentdomain.Student, error)
	Archive(id string) error
	Delete(id string) error
	List(query *studentdto.ListStudentsQuery) ([]*studentdomain.Student, int64, error)
}
