package ui

import (
	"errors"
	"log"
	"net/http"

	apperrors "ikigai/internal/errors"

	"github.com/gin-gonic/gin"
)

// writeError maps application error codes onto HTTP responses. Server-side
// failures get a generic message; the full error chain stays in the logs.
func writeError(c *gin.Context, err error) {
	code := apperrors.GetCode(err)

	var appErr *apperrors.AppError
	message := "internal server error"
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	switch code {
	case apperrors.CodeValidationError, apperrors.CodePreconditionFailed:
		c.JSON(http.StatusBadRequest, gin.H{"error": message, "code": code})
	case apperrors.CodeNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": message, "code": code})
	case apperrors.CodeAIProvider:
		// Retryable by the caller; provider detail was stripped upstream.
		log.Printf("[API] AI provider failure: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": message, "code": code})
	case apperrors.CodePaymentError:
		log.Printf("[API] Payment provider failure: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": message, "code": code})
	case apperrors.CodeIllegalState:
		log.Printf("[API] INVARIANT VIOLATION: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "code": code})
	default:
		log.Printf("[API] Request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "code": code})
	}
}
