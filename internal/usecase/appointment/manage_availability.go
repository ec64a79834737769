package appointment

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AvailabilityDay struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type ManageAvailability struct {
	repo  domain.Repository
	audit AuditDispatcher
}

func NewManageAvailability(repo domain.Repository, audit AuditDispatcher) *ManageAvailability {
	return &ManageAvailability{repo: repo, audit: audit}
}

func (uc *ManageAvailability) List(ctx context.Context) ([]models.Availability, error) {
	windows, err := uc.repo.ListAvailability(ctx)
	if err != nil {
		return nil, httperr.Fetch("availability", err)
	}
	if windows == nil {
		windows = []models.Availability{}
	}
	return windows, nil
}

// Replace swaps the whole weekly schedule. Weekdays left out are closed.
func (uc *ManageAvailability) Replace(
	ctx context.Context,
	staffID string,
	days []AvailabilityDay,
) ([]models.Availability, error) {

	seen := make(map[int]bool, len(days))
	windows := make([]models.Availability, 0, len(days))

	for _, d := range days {
		if d.DayOfWeek < 0 || d.DayOfWeek > 6 {
			return nil, httperr.Invalid("day_of_week", "expected 0 (Sunday) to 6 (Saturday)")
		}
		if seen[d.DayOfWeek] {
			return nil, httperr.Invalid("day_of_week", fmt.Sprintf("day %d listed twice", d.DayOfWeek))
		}
		seen[d.DayOfWeek] = true

		start, err := domain.ParseClock(d.StartTime)
		if err != nil {
			return nil, httperr.Invalid("start_time", err.Error())
		}
		end, err := domain.ParseClock(d.EndTime)
		if err != nil {
			return nil, httperr.Invalid("end_time", err.Error())
		}
		if start >= end {
			return nil, httperr.Invalid("end_time", "must be after start_time")
		}

		windows = append(windows, models.Availability{
			DayOfWeek: d.DayOfWeek,
			StartTime: start.String(),
			EndTime:   end.String(),
		})
	}

	if err := uc.repo.ReplaceAvailability(ctx, windows); err != nil {
		return nil, httperr.WriteFailed(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &staffID,
		Action:   "availability_updated",
		Entity:   "availability",
		Metadata: map[string]any{"days": len(windows)},
	})

	return windows, nil
}
