package api

import (
	authDelivery "edupath-backend/internal/auth/delivery"
	authUsecasePkg "edupath-backend/internal/auth/usecase"
	mailboxDelivery "edupath-backend/internal/mailbox/delivery"
	mailboxUsecasePkg "edupath-backend/internal/mailbox/usecase"
	offerDelivery "edupath-backend/internal/offer/delivery"
	offerUsecasePkg "edupath-backend/internal/offer/usecase"
	studentDelivery "edupath-backend/internal/student/delivery"
	studentUsecasePkg "edupath-backend/internal/student/usecase"
)

// Handler bundles the per-feature HTTP handlers behind one wiring point for
// the router.
type Handler struct {
	authUsecase    authUsecasePkg.AuthUsecase
	authHandler    *authDelivery.AuthHandler
	studentHandler *studentDelivery.StudentHandler
	offerHandler   *offerDelivery.OfferHandler
	mailboxHandler *mailboxDelivery.MailboxHandler
}

func NewHandler(
	authUsecase authUsecasePkg.AuthUsecase,
	studentUsecase studentUsecasePkg.StudentUsecase,
	offerUsecase offerUsecasePkg.OfferUsecase,
	mailboxUsecase mailboxUsecasePkg.MailboxUsecase,
) *Handler {
	return &Handler{
		authUsecase:    authUsecase,
		authHandler:    authDelivery.NewAuthHandler(authUsecase),
		studentHandler: studentDelivery.NewStudentHandler(studentUsecase),
		offerHandler:   offerDelivery.NewOfferHandler(offerUsecase),
		mailboxHandler: mailboxDelivery.NewMailboxHandler(mailboxUsecase),
	}
}
