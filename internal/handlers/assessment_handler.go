package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/assessment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AssessmentHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAssessmentHandler(db *gorm.DB, audit *audit.Dispatcher) *AssessmentHandler {
	return &AssessmentHandler{db: db, audit: audit}
}

type CreateAssessmentRequest struct {
	Title         string                    `json:"title" binding:"required"`
	Description   string                    `json:"description"`
	Questions     []assessment.Question     `json:"questions"`
	ScoringMethod *assessment.ScoringMethod `json:"scoring_method"`
}

type SubmitResponsesRequest struct {
	Responses assessment.Answers `json:"responses"`
}

func (h *AssessmentHandler) List(c *gin.Context) {
	var items []models.Assessment
	if err := h.db.WithContext(c.Request.Context()).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		httperr.Respond(c, httperr.Fetch("assessments", err))
		return
	}

	httpresp.List(c, items)
}

func (h *AssessmentHandler) load(c *gin.Context) (*models.Assessment, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		httperr.Respond(c, httperr.ErrBusiness("assessment_not_found"))
		return nil, false
	}

	var a models.Assessment
	err := h.db.WithContext(c.Request.Context()).Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Respond(c, httperr.ErrBusiness("assessment_not_found"))
		return nil, false
	}
	if err != nil {
		httperr.Respond(c, httperr.Fetch("assessments", err))
		return nil, false
	}
	return &a, true
}

func (h *AssessmentHandler) Get(c *gin.Context) {
	a, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, a)
}

// SubmitResponses validates the answers, scores them and stores the result.
func (h *AssessmentHandler) SubmitResponses(c *gin.Context) {
	a, ok := h.load(c)
	if !ok {
		return
	}

	var req SubmitResponsesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	questions, err := assessment.ParseQuestions(a.Questions)
	if err != nil {
		httperr.Respond(c, httperr.Fetch("assessments", err))
		return
	}
	rules, err := assessment.ParseScoringMethod(a.ScoringMethod)
	if err != nil {
		httperr.Respond(c, httperr.Fetch("assessments", err))
		return
	}

	if err := assessment.Validate(questions, req.Responses); err != nil {
		httperr.Respond(c, err)
		return
	}

	raw, err := json.Marshal(req.Responses)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid responses.")
		return
	}

	score := assessment.Score(req.Responses)
	recommendations := assessment.Recommend(rules, req.Responses)

	resp := models.AssessmentResponse{
		AssessmentID:    &a.ID,
		Responses:       raw,
		Score:           &score,
		Recommendations: &recommendations,
	}
	if userID := c.GetString(middleware.ContextUserID); userID != "" {
		resp.UserID = &userID
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&resp).Error; err != nil {
		httperr.Respond(c, httperr.WriteFailed(err))
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AssessmentHandler) Create(c *gin.Context) {
	var req CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := assessment.ValidateQuestions(req.Questions); err != nil {
		httperr.Respond(c, err)
		return
	}

	questions, err := json.Marshal(req.Questions)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid questions.")
		return
	}

	staffID := c.GetString(middleware.ContextUserID)
	a := models.Assessment{
		Title:     strings.TrimSpace(req.Title),
		Questions: questions,
		UserID:    &staffID,
	}
	if d := strings.TrimSpace(req.Description); d != "" {
		a.Description = &d
	}
	if req.ScoringMethod != nil {
		sm, err := json.Marshal(req.ScoringMethod)
		if err != nil {
			httperr.BadRequest(c, "invalid_request", "Invalid scoring method.")
			return
		}
		a.ScoringMethod = sm
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&a).Error; err != nil {
		httperr.Respond(c, httperr.WriteFailed(err))
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &staffID,
		Action:   "assessment_created",
		Entity:   "assessment",
		EntityID: &a.ID,
	})

	c.JSON(http.StatusCreated, a)
}
