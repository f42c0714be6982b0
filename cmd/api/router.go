package api

import (
	"net/http"

	authDelivery "edupath-backend/internal/auth/delivery"
	authdomain "edupath-backend/internal/auth/domain"
	"edupath-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func SetupRoutes(r *gin.Engine, h *Handler, gatherer prometheus.Gatherer) {
	r.GET("/metrics", gin.WrapH(metrics.Handler(gatherer)))

	staffOnly := authDelivery.RequireRole(authdomain.RoleAdmin, authdomain.RoleConsultant)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.authHandler.Login)
			auth.POST("/register", h.authHandler.Register)
			auth.POST("/refresh", h.authHandler.RefreshToken)
			auth.POST("/logout", h.authHandler.Logout)
			auth.GET("/me", authDelivery.AuthMiddleware(h.authUsecase), h.authHandler.Me)
		}

		// OAuth redirect target; Google calls it, so no session auth. The
		// signed state parameter identifies the student.
		api.GET("/mailbox/callback", h.mailboxHandler.Callback)

		// Student routes (staff only)
		students := api.Group("/students")
		students.Use(authDelivery.AuthMiddleware(h.authUsecase))
		{
			students.POST("", staffOnly, h.studentHandler.Create)
			students.GET("", staffOnly, h.studentHandler.List)
			students.GET("/:studentId", staffOnly, h.studentHandler.Get)
			students.PUT("/:studentId", staffOnly, h.studentHandler.Update)
			students.POST("/:studentId/archive", staffOnly, h.studentHandler.Archive)
			students.DELETE("/:studentId", authDelivery.RequireRole(authdomain.RoleAdmin), h.studentHandler.Delete)

			// Offers hang off a student
			students.POST("/:studentId/offers", staffOnly, h.offerHandler.Create)
			students.GET("/:studentId/offers", h.offerHandler.ListByStudent)

			// Mailbox routes; per-student ownership is enforced in the
			// handler so student accounts reach their own mailbox
			mailbox := students.Group("/:studentId/mailbox")
			{
				mailbox.GET("/connect", h.mailboxHandler.ConnectURL)
				mailbox.POST("/disconnect", h.mailboxHandler.Disconnect)
				mailbox.GET("/status", h.mailboxHandler.Status)
				mailbox.POST("/sync", h.mailboxHandler.Sync)
				mailbox.GET("/messages", h.mailboxHandler.ListMessages)
				mailbox.GET("/messages/:messageId", h.mailboxHandler.GetMessage)
				mailbox.POST("/send", h.mailboxHandler.Send)
			}
		}

		// Offer routes
		offers := api.Group("/offers")
		offers.Use(authDelivery.AuthMiddleware(h.authUsecase))
		{
			offers.GET("/:offerId", h.offerHandler.Get)
			offers.POST("/:offerId/send", staffOnly, h.offerHandler.Send)
			offers.POST("/:offerId/respond", h.offerHandler.Respond)
		}
	}
}
