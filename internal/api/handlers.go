package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinical-dss-server/internal/domain"
	"github.com/clinical-dss-server/internal/service"
)

// DifferentialRequest is the payload for a fresh differential calculation.
type DifferentialRequest struct {
	Symptoms []domain.SymptomKey    `json:"symptoms"`
	Context  *domain.PatientContext `json:"context,omitempty"`
}

// UpdateRequest refines an existing differential with one new finding.
type UpdateRequest struct {
	Differentials []domain.Differential `json:"differentials"`
	Finding       domain.SymptomKey     `json:"finding" binding:"required"`
	Present       bool                  `json:"present"`
}

// DistinguishRequest asks for the features separating two diagnoses.
type DistinguishRequest struct {
	Diagnosis1 string `json:"diagnosis_1" binding:"required"`
	Diagnosis2 string `json:"diagnosis_2" binding:"required"`
}

// RedFlagRequest is the payload for a red-flag screen of one presentation.
type RedFlagRequest struct {
	Presentation domain.Presentation `json:"presentation"`
}

// handleDifferential computes a ranked differential from reported symptoms.
func (s *Server) handleDifferential(c *gin.Context) {
	var req DifferentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	if err := req.Context.Validate(); err != nil {
		s.badRequest(c, err)
		return
	}

	differentials := s.assessments.Calculator().Calculate(req.Symptoms, req.Context)
	c.JSON(http.StatusOK, gin.H{
		"differentials": differentials,
	})
}

// handleDifferentialUpdate refines a differential with one confirmed or
// ruled-out finding.
func (s *Server) handleDifferentialUpdate(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	differentials := s.assessments.Calculator().Update(req.Differentials, req.Finding, req.Present)
	c.JSON(http.StatusOK, gin.H{
		"differentials": differentials,
	})
}

// handleDistinguish returns the features that separate two candidate
// diagnoses. Unknown pairs yield an empty list, not an error.
func (s *Server) handleDistinguish(c *gin.Context) {
	var req DistinguishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	contrasts := s.assessments.Calculator().Distinguish(req.Diagnosis1, req.Diagnosis2)
	c.JSON(http.StatusOK, gin.H{
		"distinguishing_features": contrasts,
	})
}

// handleRedFlags screens one presentation against the red-flag rules and
// reports the resulting triage level.
func (s *Server) handleRedFlags(c *gin.Context) {
	var req RedFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}

	matcher := s.assessments.Matcher()
	flags := matcher.Check(req.Presentation)

	actions := make([]string, 0, len(flags))
	for _, flag := range flags {
		actions = append(actions, matcher.ImmediateAction(flag))
	}

	c.JSON(http.StatusOK, gin.H{
		"red_flags":         flags,
		"triage_level":      matcher.TriageLevel(flags),
		"immediate_actions": actions,
	})
}

// handleAssess runs both engines for one encounter.
func (s *Server) handleAssess(c *gin.Context) {
	var req service.AssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	if err := req.Context.Validate(); err != nil {
		s.badRequest(c, err)
		return
	}

	result, err := s.assessments.Assess(c.Request.Context(), req)
	if err != nil {
		s.logger.WithError(err).Error("Assessment failed")
		apiErr := domain.NewAPIError(domain.ErrCodeInternalServer,
			"Assessment failed", "", c.GetString("request_id"))
		c.JSON(http.StatusInternalServerError, apiErr)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) badRequest(c *gin.Context, err error) {
	apiErr := domain.NewAPIError(domain.ErrCodeInvalidInput,
		"Invalid request payload", err.Error(), c.GetString("request_id"))
	c.JSON(http.StatusBadRequest, apiErr)
}
