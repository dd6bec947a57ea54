package ui

import (
	"log"
	"net/http"

	"ikigai/app"

	"github.com/gin-gonic/gin"
)

// Server is the public API server for the questionnaire flow
type Server struct {
	router   *gin.Engine
	sessions *app.SessionService
	reports  *app.ReportService
	payments *app.PaymentService
}

// NewServer creates the public API server and registers its routes
func NewServer(sessions *app.SessionService, reports *app.ReportService, payments *app.PaymentService, ginMode string) *Server {
	gin.SetMode(ginMode)

	s := &Server{
		router:   gin.Default(),
		sessions: sessions,
		reports:  reports,
		payments: payments,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	{
		sessions := api.Group("/sessions")
		{
			sessions.POST("", s.handleCreateSession)
			sessions.GET("/:hash", s.handleGetSession)
			sessions.PATCH("/:hash/answers", s.handleUpdateAnswers)
			sessions.POST("/:hash/analyze", s.handleAnalyzeSession)
			sessions.GET("/:hash/pdf", s.handleSessionPDF)
			sessions.POST("/:hash/send-email", s.handleSendEmail)
		}

		payments := api.Group("/payments")
		{
			payments.POST("/create-checkout", s.handleCreateCheckout)
			payments.POST("/webhook", s.handlePaymentWebhook)
			payments.POST("/verify", s.handleVerifyPayment)
		}
	}
}

// Handler exposes the underlying http.Handler, used by tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the server on the given address
func (s *Server) Run(addr string) error {
	log.Printf("[API] Listening on %s", addr)
	return s.router.Run(addr)
}
