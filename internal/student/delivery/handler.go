package delivery

import (
	"errors"
	"net/http"

	studentdto "edupath-backend/internal/student/dto"
	"edupath-backend/internal/student/usecase"

	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	studentUsecase usecase.StudentUsecase
}

func NewStudentHandler(studentUsecase usecase.StudentUsecase) *StudentHandler {
	return &StudentHandler{
		studentUsecase: studentUsecase,
	}
}

func (h *StudentHandler) Create(c *gin.Context) {
	var req studentdto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student, err := h.studentUsecase.Create(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, student)
}

func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.studentUsecase.Get(c.Param("studentId"))
	if err != nil {
		if errors.Is(err, usecase.ErrStudentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, student)
}

func (h *StudentHandler) Update(c *gin.Context) {
	var req studentdto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student, err := h.studentUsecase.Update(c.Param("studentId"), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrStudentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, student)
}

func (h *StudentHandler) Archive(c *gin.Context) {
	if err := h.studentUsecase.Archive(c.Param("studentId")); err != nil {
		if errors.Is(err, usecase.ErrStudentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "student archived"})
}

func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.studentUsecase.Delete(c.Param("studentId")); err != nil {
		if errors.Is(err, usecase.ErrStudentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "student deleted"})
}

func (h *StudentHandler) List(c *gin.Context) {
	var query studentdto.ListStudentsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	students, total, err := h.studentUsecase.List(&query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"students": students,
		"total":    total,
	})
}
