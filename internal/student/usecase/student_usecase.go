package usecase

import (
	"errors"

	studentdomain "edupath-backend/internal/student/domain"
	studentdto "edupath-backend/internal/student/dto"
	"edupath-backend/internal/student/repository"
)

var ErrStudentNotFound = errors.New("student not found")

const defaultListLimit = 20

// studentUsecase implements StudentUsecase
type studentUsecase struct {
	studentRepo repository.StudentRepository
}

func NewStudentUsecase(studentRepo repository.StudentRepository) StudentUsecase {
	return &studentUsecase{
		studentRepo: studentRepo,
	}
}

func (u *studentUsecase) Create(req *studentdto.CreateStudentRequest) (*studentdomain.Student, error) {
	student := &studentdomain.Student{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Country:      req.Country,
		Program:      req.Program,
		Status:       studentdomain.StatusProspect,
		ConsultantID: req.ConsultantID,
	}
	if err := u.studentRepo.Create(student); err != nil {
		return nil, err
	}
	return student, nil
}

func (u *studentUsecase) Get(id string) (*studentdomain.Student, error) {
	student, err := u.studentRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}
	return student, nil
}

func (u *studentUsecase) Update(id string, req *studentdto.UpdateStudentRequest) (*studentdomain.Student, error) {
	student, err := u.Get(id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.Country != nil {
		student.Country = *req.Country
	}
	if req.Program != nil {
		student.Program = *req.Program
	}
	if req.Status != nil {
		student.Status = *req.Status
	}
	if req.ConsultantID != nil {
		student.ConsultantID = *req.ConsultantID
	}

	if err := u.studentRepo.Update(student); err != nil {
		return nil, err
	}
	return student, nil
}

// Archive keeps the record (and its mailbox mirror) but takes the student out
// of active lists.
func (u *studentUsecase) Archive(id string) error {
	student, err := u.Get(id)
	if err != nil {
		return err
	}
	student.Status = studentdomain.StatusArchived
	return u.studentRepo.Update(student)
}

func (u *studentUsecase) Delete(id string) error {
	student, err := u.Get(id)
	if err != nil {
		return err
	}
	return u.studentRepo.Delete(student.ID)
}

func (u *studentUsecase) List(query *studentdto.ListStudentsQuery) ([]*studentdomain.Student, int64, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}
	return u.studentRepo.List(query.ConsultantID, query.Status, limit, offset)
}
