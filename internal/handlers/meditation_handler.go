package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/storage"
)

type MeditationHandler struct {
	db     *gorm.DB
	audio  *storage.AudioStore
	logger *zap.Logger
}

func NewMeditationHandler(db *gorm.DB, audio *storage.AudioStore, logger *zap.Logger) *MeditationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MeditationHandler{db: db, audio: audio, logger: logger}
}

type CreateMeditationRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	Category        string `json:"category" binding:"required"`
	DifficultyLevel string `json:"difficulty_level"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
	AudioKey        string `json:"audio_key"`
}

type CompleteMeditationRequest struct {
	Rating *int `json:"rating" binding:"omitempty,min=1,max=5"`
}

func (h *MeditationHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context())
	if category := strings.ToLower(strings.TrimSpace(c.Query("category"))); category != "" {
		q = q.Where("category = ?", category)
	}

	var sessions []models.MeditationSession
	if err := q.Order("created_at DESC").Find(&sessions).Error; err != nil {
		httperr.Respond(c, httperr.Fetch("meditations", err))
		return
	}

	for i := range sessions {
		h.attachAudio(c, &sessions[i])
	}

	httpresp.List(c, sessions)
}

// attachAudio fills AudioURL; a presign failure leaves the session without audio.
func (h *MeditationHandler) attachAudio(c *gin.Context, m *models.MeditationSession) {
	if m.AudioKey == nil || *m.AudioKey == "" {
		return
	}
	url, err := h.audio.URL(c.Request.Context(), *m.AudioKey)
	if err != nil {
		h.logger.Warn("presign audio", zap.String("meditation_id", m.ID), zap.Error(err))
		return
	}
	if url != "" {
		m.AudioURL = &url
	}
}

func (h *MeditationHandler) Complete(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	id := c.Param("id")

	if _, err := uuid.Parse(id); err != nil {
		httperr.Respond(c, httperr.ErrBusiness("meditation_not_found"))
		return
	}

	// The body is optional.
	var req CompleteMeditationRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var session models.MeditationSession
	err := h.db.WithContext(c.Request.Context()).Where("id = ?", id).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Respond(c, httperr.ErrBusiness("meditation_not_found"))
		return
	}
	if err != nil {
		httperr.Respond(c, httperr.Fetch("meditations", err))
		return
	}

	completion := models.MeditationCompletion{
		MeditationSessionID: session.ID,
		UserID:              userID,
		Rating:              req.Rating,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&completion).Error; err != nil {
		httperr.Respond(c, httperr.WriteFailed(err))
		return
	}

	c.JSON(http.StatusCreated, completion)
}

func (h *MeditationHandler) Create(c *gin.Context) {
	var req CreateMeditationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	m := models.MeditationSession{
		Title:           strings.TrimSpace(req.Title),
		Category:        strings.ToLower(strings.TrimSpace(req.Category)),
		DurationMinutes: req.DurationMinutes,
	}
	if d := strings.TrimSpace(req.Description); d != "" {
		m.Description = &d
	}
	if lvl := strings.TrimSpace(req.DifficultyLevel); lvl != "" {
		m.DifficultyLevel = &lvl
	}
	if key := strings.TrimSpace(req.AudioKey); key != "" {
		m.AudioKey = &key
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&m).Error; err != nil {
		httperr.Respond(c, httperr.WriteFailed(err))
		return
	}

	h.attachAudio(c, &m)
	c.JSON(http.StatusCreated, m)
}
