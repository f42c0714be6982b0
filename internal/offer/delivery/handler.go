package delivery

import (
	"errors"
	"net/http"

	authdelivery "edupath-backend/internal/auth/delivery"
	authdomain "edupath-backend/internal/auth/domain"
	offerdto "edupath-backend/internal/offer/dto"
	"edupath-backend/internal/offer/usecase"

	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	offerUsecase usecase.OfferUsecase
}

func NewOfferHandler(offerUsecase usecase.OfferUsecase) *OfferHandler {
	return &OfferHandler{
		offerUsecase: offerUsecase,
	}
}

func (h *OfferHandler) Create(c *gin.Context) {
	var req offerdto.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offer, err := h.offerUsecase.Create(c.Param("studentId"), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, offer)
}

func (h *OfferHandler) Get(c *gin.Context) {
	offer, err := h.offerUsecase.Get(c.Param("offerId"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	if user := authdelivery.UserFromContext(c); user != nil && user.Role == authdomain.RoleStudent && user.StudentID != offer.StudentID {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	c.JSON(http.StatusOK, offer)
}

func (h *OfferHandler) ListByStudent(c *gin.Context) {
	studentID := c.Param("studentId")
	if user := authdelivery.UserFromContext(c); user != nil && user.Role == authdomain.RoleStudent && user.StudentID != studentID {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	offers, err := h.offerUsecase.ListByStudent(studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

func (h *OfferHandler) Send(c *gin.Context) {
	offer, err := h.offerUsecase.Send(c.Param("offerId"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, offer)
}

func (h *OfferHandler) Respond(c *gin.Context) {
	var req offerdto.RespondOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Student accounts may only answer offers addressed to them.
	if user := authdelivery.UserFromContext(c); user != nil && user.Role == authdomain.RoleStudent {
		offer, err := h.offerUsecase.Get(c.Param("offerId"))
		if err != nil {
			h.writeError(c, err)
			return
		}
		if offer.StudentID != user.StudentID {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
	}

	offer, err := h.offerUsecase.Respond(c.Param("offerId"), req.Response)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, offer)
}

func (h *OfferHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrOfferNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
