package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func seededRepo() *fakeRepo {
	repo := newFakeRepo()
	repo.appointments = []models.Appointment{
		{ID: "a", ServiceID: massageID, Date: "2026-02-28", StartTime: "09:00", EndTime: "09:30", Status: "completed"},
		{ID: "b", ServiceID: massageID, Date: "2026-03-03", StartTime: "10:00", EndTime: "10:30", Status: "scheduled", ClientName: "Dana"},
		{ID: "c", ServiceID: massageID, Date: "2026-03-31", StartTime: "16:00", EndTime: "16:30", Status: "cancelled"},
		{ID: "d", ServiceID: massageID, Date: "2026-04-01", StartTime: "09:00", EndTime: "09:30", Status: "scheduled"},
	}
	return repo
}

func TestListAppointmentsByDate(t *testing.T) {
	uc := NewListAppointmentsByDate(seededRepo())

	got, err := uc.Execute(context.Background(), time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "Dana", got[0].ClientName)
	assert.Equal(t, "Massage", got[0].ServiceName)

	empty, err := uc.Execute(context.Background(), time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestListAppointmentsByMonth(t *testing.T) {
	uc := NewListAppointmentsByMonth(seededRepo())

	got, err := uc.Execute(context.Background(), 2026, 3)
	require.NoError(t, err)

	var ids []string
	for _, ap := range got {
		ids = append(ids, ap.ID)
	}
	assert.Equal(t, []string{"b", "c"}, ids, "cancelled bookings still show in the staff calendar")
}
