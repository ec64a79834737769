package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/storage"
)

const (
	patientID    = "3c9e1d2a-7b4f-4e6a-9c01-5d8e2f7a6b13"
	meditationID = "5e2a7c91-4d3b-4f8e-a6c2-9b1d0e3f4a25"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

// asPatient stands in for AuthMiddleware.
func asPatient(c *gin.Context) {
	c.Set(middleware.ContextUserID, patientID)
	c.Next()
}

func journalRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockGorm(t)

	h := NewJournalHandler(db, "UTC")
	r := gin.New()
	r.Use(asPatient)
	r.GET("/me/journal", h.List)
	r.POST("/me/journal", h.Create)
	return r, mock
}

func TestJournal_ListNewestFirst(t *testing.T) {
	r, mock := journalRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "health_journal_entries" WHERE user_id = \$1 ORDER BY date DESC, created_at DESC`).
		WithArgs(patientID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "date", "energy_level", "symptoms"}).
			AddRow("e2", patientID, "2026-03-02", 7, "{headache}").
			AddRow("e1", patientID, "2026-02-27", 4, "{}"))

	w := doJSON(r, http.MethodGet, "/me/journal", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []models.JournalEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "2026-03-02", entries[0].Date)
	assert.Equal(t, []string{"headache"}, []string(entries[0].Symptoms))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournal_CreateRejectsOutOfRange(t *testing.T) {
	cases := map[string]map[string]any{
		"energy above 10": {"energy_level": 11},
		"energy below 1":  {"energy_level": 0},
		"mood above 10":   {"mood": 12},
		"mood below 1":    {"mood": 0},
		"sleep above 24":  {"sleep_hours": 24.5},
		"negative sleep":  {"sleep_hours": -1},
		"bad date":        {"date": "02/03/2026"},
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			r, mock := journalRouter(t)

			w := doJSON(r, http.MethodPost, "/me/journal", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet(), "nothing reaches the store")
		})
	}
}

func TestJournal_Create(t *testing.T) {
	r, mock := journalRouter(t)

	mock.ExpectExec(`INSERT INTO "health_journal_entries"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	w := doJSON(r, http.MethodPost, "/me/journal", map[string]any{
		"date":         "2026-03-02",
		"energy_level": 10,
		"mood":         1,
		"sleep_hours":  0,
		"symptoms":     []string{" headache ", "", "fatigue"},
		"notes":        "  slept badly ",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var entry models.JournalEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, patientID, entry.UserID)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, []string{"headache", "fatigue"}, []string(entry.Symptoms))
	require.NotNil(t, entry.Notes)
	assert.Equal(t, "slept badly", *entry.Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type fakePresigner struct{}

func (fakePresigner) PresignGetObject(
	ctx context.Context,
	params *s3.GetObjectInput,
	optFns ...func(*s3.PresignOptions),
) (*v4.PresignedHTTPRequest, error) {
	return &v4.PresignedHTTPRequest{URL: "https://audio.example/" + *params.Key, Method: http.MethodGet}, nil
}

func meditationRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockGorm(t)

	h := NewMeditationHandler(db, storage.NewAudioStore(fakePresigner{}, "meditations"), nil)
	r := gin.New()
	r.GET("/meditations", h.List)
	r.POST("/me/meditations/:id/complete", asPatient, h.Complete)
	return r, mock
}

func meditationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "category", "duration_minutes", "audio_key", "created_at"}).
		AddRow(meditationID, "Evening breath", "breathing", 10, "breath/evening.mp3", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)).
		AddRow("7a1b", "Box breathing", "breathing", 5, nil, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
}

func TestMeditations_ListByCategory(t *testing.T) {
	r, mock := meditationRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "meditation_sessions" WHERE category = \$1 ORDER BY created_at DESC`).
		WithArgs("breathing").
		WillReturnRows(meditationRows())

	w := doJSON(r, http.MethodGet, "/meditations?category=%20Breathing", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data  []models.MeditationSession `json:"data"`
		Total int                        `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 2, body.Total)
	assert.Equal(t, "Evening breath", body.Data[0].Title)
	require.NotNil(t, body.Data[0].AudioURL)
	assert.Equal(t, "https://audio.example/breath/evening.mp3", *body.Data[0].AudioURL)
	assert.Nil(t, body.Data[1].AudioURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMeditations_ListAll(t *testing.T) {
	r, mock := meditationRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "meditation_sessions" ORDER BY created_at DESC`).
		WillReturnRows(meditationRows())

	w := doJSON(r, http.MethodGet, "/meditations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMeditations_CompleteRating(t *testing.T) {
	for _, rating := range []int{0, 6} {
		r, mock := meditationRouter(t)

		w := doJSON(r, http.MethodPost, "/me/meditations/"+meditationID+"/complete", map[string]int{"rating": rating})
		assert.Equal(t, http.StatusBadRequest, w.Code, "rating %d", rating)
		assert.NoError(t, mock.ExpectationsWereMet())
	}

	r, mock := meditationRouter(t)
	mock.ExpectQuery(`SELECT \* FROM "meditation_sessions" WHERE id = \$1`).
		WillReturnRows(meditationRows())
	mock.ExpectExec(`INSERT INTO "meditation_completions"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	w := doJSON(r, http.MethodPost, "/me/meditations/"+meditationID+"/complete", map[string]int{"rating": 5})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var done models.MeditationCompletion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &done))
	assert.Equal(t, meditationID, done.MeditationSessionID)
	assert.Equal(t, patientID, done.UserID)
	require.NotNil(t, done.Rating)
	assert.Equal(t, 5, *done.Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMeditations_CompleteWithoutBodyOrSession(t *testing.T) {
	r, mock := meditationRouter(t)
	mock.ExpectQuery(`SELECT \* FROM "meditation_sessions" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := doJSON(r, http.MethodPost, "/me/meditations/"+meditationID+"/complete", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"error_code":"meditation_not_found"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
