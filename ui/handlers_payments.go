package ui

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type createCheckoutRequest struct {
	SessionHash string `json:"sessionHash" binding:"required"`
	PlanID      string `json:"planId" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
}

type verifyPaymentRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// handleCreateCheckout creates a hosted checkout session
func (s *Server) handleCreateCheckout(c *gin.Context) {
	var req createCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	url, err := s.payments.CreateCheckout(c.Request.Context(), req.SessionHash, req.PlanID, req.Email)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// handlePaymentWebhook receives provider webhooks. The raw body is needed
// for signature verification, so this handler skips JSON binding.
func (s *Server) handlePaymentWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read payload"})
		return
	}

	if err := s.payments.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// handleVerifyPayment reports whether a checkout session was paid
func (s *Server) handleVerifyPayment(c *gin.Context) {
	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	status, err := s.payments.VerifyPayment(c.Request.Context(), req.SessionID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"paid":        status.Paid,
		"sessionHash": status.SessionHash,
	})
}
