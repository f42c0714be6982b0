package delivery

import (
	"errors"
	"io"
	"net/http"
	"time"

	authdelivery "edupath-backend/internal/auth/delivery"
	authdomain "edupath-backend/internal/auth/domain"
	"edupath-backend/internal/mailbox/domain"
	mailboxdto "edupath-backend/internal/mailbox/dto"
	"edupath-backend/internal/mailbox/usecase"

	"github.com/gin-gonic/gin"
)

type MailboxHandler struct {
	mailboxUsecase usecase.MailboxUsecase
}

func NewMailboxHandler(mailboxUsecase usecase.MailboxUsecase) *MailboxHandler {
	return &MailboxHandler{
		mailboxUsecase: mailboxUsecase,
	}
}

// requireStudentAccess enforces mailbox ownership: staff reach any student's
// mailbox, a student account only its own.
func (h *MailboxHandler) requireStudentAccess(c *gin.Context) (string, bool) {
	studentID := c.Param("studentId")
	user := authdelivery.UserFromContext(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return "", false
	}
	if user.Role == authdomain.RoleStudent && user.StudentID != studentID {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return "", false
	}
	return studentID, true
}

func (h *MailboxHandler) ConnectURL(c *gin.Context) {
	studentID, ok := h.requireStudentAccess(c)
	if !ok {
		return
	}

	authURL, err := h.mailboxUsecase.ConnectURL(studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, mailboxdto.ConnectURLResponse{AuthURL: authURL})
}

// Callback is the public OAuth redirect target. The signed state parameter,
// not the session, identifies the student.
func (h *MailboxHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code or state"})
		return
	}

	conn, err := h.mailboxUsecase.HandleCallback(c.Request.Context(), code, state)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, conn)
}

func (h *MailboxHandler) Disconnect(c *gin.Context) {
	studentID, ok := h.requireStudentAccess(c)
	if !ok {
		return
	}

	if err := h.mailboxUsecase.Disconnect(studentID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "mailbox disconnected"})
}

func (h *MailboxHandler) Status(c *gin.Context) {
	studentID, ok := h.requireStudentAccess(c)
	if !ok {
		return
	}

	conn, err := h.mailboxUsecase.Status(studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := mailboxdto.StatusResponse{Connected: false, Status: domain.StatusDisconnected}
	if conn != nil {
		resp.Status = conn.Status
		resp.Connected = conn.Status == domain.StatusConnected
		resp.Email = conn.Email
		if !conn.LastSyncAt.IsZero() {
			resp.LastSyncAt = conn.LastSyncAt.Format(time.RFC3339)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Sync is polled by the frontend, so the no-connection state comes back as a
// 200 with an error field rather than an HTTP failure.
func (h *MailboxHandler) Sync(c *gin.Context) {
	studentID, ok := h.requireStudentAccess(c)
	if !ok {
		return
	}

	result, err := h.mailboxUsecase.Sync(c.Request.Context(), studentID)
	if err != nil {
		if errors.Is(err, usecase.ErrNoValidConnection) {
			c.JSON(http.StatusOK, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *MailboxHandler) ListMessages(c *gin.Context) {
	studentID, ok := h.requireStudentAccess(c)
	if !ok {
		return
	}

	var query mailboxdto.ListMessagesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	messages, total, err := h.mailboxUsecase.ListMessages(studentID, query.Query, query.Limit, query.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"total":    total,
	})
}

func (h *MailboxHandler) GetMessage(c *gin.Context) {
	studentID, ok := h.requireStudentAccess(c)
	if !ok {
		return
	}

	msg, err := h.mailboxUsecase.GetMessage(studentID, c.Param("messageId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if msg == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		return
	}

	c.JSON(http.StatusOK, msg)
}

func (h *MailboxHandler) Send(c *gin.Context) {
	studentID, ok := h.requireStudentAccess(c)
	if !ok {
		return
	}

	var req mailboxdto.SendMessageRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attachments, err := h.readAttachments(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := domain.SendOptions{
		CC:          req.CC,
		BCC:         req.BCC,
		Attachments: attachments,
	}

	messageID, err := h.mailboxUsecase.Send(c.Request.Context(), studentID, req.To, req.Subject, req.Body, opts)
	if err != nil {
		if errors.Is(err, usecase.ErrNoValidConnection) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message_id": messageID})
}

func (h *MailboxHandler) readAttachments(c *gin.Context) ([]domain.Attachment, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	var attachments []domain.Attachment
	for _, fileHeader := range form.File["attachments"] {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, domain.Attachment{
			Filename: fileHeader.Filename,
			MimeType: fileHeader.Header.Get("Content-Type"),
			Content:  content,
		})
	}
	return attachments, nil
}
