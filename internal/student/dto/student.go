package dto

type CreateStudentRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	Country      string `json:"country"`
	Program      string `json:"program"`
	ConsultantID string `json:"consultant_id"`
}

type UpdateStudentRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Phone        *string `json:"phone"`
	Country      *string `json:"country"`
	Program      *string `json:"program"`
	Status       *string `json:"status" binding:"omitempty,oneof=prospect active enrolled archived"`
	ConsultantID *string `json:"consultant_id"`
}

type ListStudentsQuery struct {
	ConsultantID string `form:"consultant_id"`
	Status       string `form:"status"`
	Limit        int    `form:"limit"`
	Offset       int    `form:"offset"`
}
