package appointment

type AvailabilityInput struct {
	ServiceID string
	Date      string // yyyy-MM-dd
}

type TimeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Label     string `json:"label"`
}

type AvailabilityResult struct {
	Date    string     `json:"date"`
	Slots   []TimeSlot `json:"slots"`
	Message string     `json:"message,omitempty"`
}

const NoSlotsMessage = "no slots available"
