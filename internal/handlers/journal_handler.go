package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type JournalHandler struct {
	db *gorm.DB
	tz string
}

func NewJournalHandler(db *gorm.DB, tz string) *JournalHandler {
	return &JournalHandler{db: db, tz: tz}
}

type CreateJournalEntryRequest struct {
	Date        string   `json:"date"`
	EnergyLevel *int     `json:"energy_level" binding:"omitempty,min=1,max=10"`
	Mood        *int     `json:"mood" binding:"omitempty,min=1,max=10"`
	SleepHours  *float64 `json:"sleep_hours" binding:"omitempty,min=0,max=24"`
	Symptoms    []string `json:"symptoms"`
	Notes       string   `json:"notes"`
}

func (h *JournalHandler) List(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	entries := []models.JournalEntry{}
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(&entries).Error; err != nil {
		httperr.Respond(c, httperr.Fetch("journal", err))
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *JournalHandler) Create(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = timezone.Today(h.tz)
	}
	if _, err := timezone.ParseDate(h.tz, date); err != nil {
		httperr.Respond(c, httperr.Invalid("date", "expected yyyy-MM-dd"))
		return
	}

	symptoms := make(pq.StringArray, 0, len(req.Symptoms))
	for _, s := range req.Symptoms {
		if s = strings.TrimSpace(s); s != "" {
			symptoms = append(symptoms, s)
		}
	}

	entry := models.JournalEntry{
		UserID:      userID,
		Date:        date,
		EnergyLevel: req.EnergyLevel,
		Mood:        req.Mood,
		SleepHours:  req.SleepHours,
		Symptoms:    symptoms,
	}
	if n := strings.TrimSpace(req.Notes); n != "" {
		entry.Notes = &n
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&entry).Error; err != nil {
		httperr.Respond(c, httperr.WriteFailed(err))
		return
	}

	c.JSON(http.StatusCreated, entry)
}
