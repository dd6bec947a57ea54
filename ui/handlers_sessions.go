package ui

import (
	"fmt"
	"net/http"

	"ikigai/app"
	"ikigai/domain/session"

	"github.com/gin-gonic/gin"
)

type createSessionRequest struct {
	Name              string `json:"name" binding:"required"`
	Age               int    `json:"age" binding:"required"`
	CurrentProfession string `json:"currentProfession" binding:"required"`
	EducationArea     string `json:"educationArea"`
	LifeStage         string `json:"lifeStage" binding:"required"`
	CurrentSituation  string `json:"currentSituation"`
}

type sendEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// handleCreateSession starts a new questionnaire session
func (s *Server) handleCreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	// The enum check lives here at the boundary; the domain constructor
	// handles the rest of the context validation.
	lifeStage, err := session.ParseLifeStage(req.LifeStage)
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := s.sessions.Create(c.Request.Context(), app.CreateSessionInput{
		Name:              req.Name,
		Age:               req.Age,
		CurrentProfession: req.CurrentProfession,
		EducationArea:     req.EducationArea,
		LifeStage:         lifeStage,
		CurrentSituation:  req.CurrentSituation,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// handleGetSession looks a session up by its public hash
func (s *Server) handleGetSession(c *gin.Context) {
	snap, err := s.sessions.Get(c.Request.Context(), c.Param("hash"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// handleUpdateAnswers merges a partial answer set into the session
func (s *Server) handleUpdateAnswers(c *gin.Context) {
	var partial session.PartialAnswers
	if err := c.ShouldBindJSON(&partial); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	snap, err := s.sessions.UpdateAnswers(c.Request.Context(), c.Param("hash"), partial)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// handleAnalyzeSession triggers the AI analysis
func (s *Server) handleAnalyzeSession(c *gin.Context) {
	snap, err := s.sessions.Analyze(c.Request.Context(), c.Param("hash"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// handleSessionPDF renders and streams the PDF report
func (s *Server) handleSessionPDF(c *gin.Context) {
	hash := c.Param("hash")

	pdf, err := s.reports.RenderPDF(c.Request.Context(), hash)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="ikigai-%s.pdf"`, hash))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// handleSendEmail emails the result report to the given address
func (s *Server) handleSendEmail(c *gin.Context) {
	var req sendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if err := s.reports.SendResultEmail(c.Request.Context(), c.Param("hash"), req.Email); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "email sent"})
}
