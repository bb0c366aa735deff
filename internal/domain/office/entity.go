package office

import "time"

type OfficeType string

const (
	OfficeTypeOffice OfficeType = "Office"
	OfficeTypeRemote OfficeType = "Remote"
	OfficeTypeHybrid OfficeType = "Hybrid"
)

// OfficeLocation is the geofence target of a punch.
// Coordinates are nullable; a location without them never admits a punch.
type OfficeLocation struct {
	ID            string     `json:"id"`
	OfficeName    string     `json:"office_name"`
	OfficeAddress string     `json:"office_address"`
	Latitude      *float64   `json:"latitude"`
	Longitude     *float64   `json:"longitude"`
	OfficeType    OfficeType `json:"office_type"`
	BranchCode    string     `json:"branch_code,omitempty"`
}

// Coordinates returns the registered point, ok=false when either axis is unset
func (o OfficeLocation) Coordinates() (lat, lng float64, ok bool) {
	if o.Latitude == nil || o.Longitude == nil {
		return 0, 0, false
	}
	return *o.Latitude, *o.Longitude, true
}

type EventType string

const (
	EventTypeHoliday  EventType = "Holiday"
	EventTypeMeeting  EventType = "Meeting"
	EventTypeTraining EventType = "Training"
	EventTypeOther    EventType = "Other"
)

// Event is a dated entry on an office's calendar. Only Holiday events affect attendance.
type Event struct {
	ID               string
	Title            string
	EventType        EventType
	StartDate        time.Time
	EndDate          time.Time
	OfficeLocationID string
}

// Covers reports whether day falls inside [StartDate, EndDate] by calendar date.
func (e Event) Covers(day time.Time) bool {
	d := dateKey(day)
	return dateKey(e.StartDate) <= d && d <= dateKey(e.EndDate)
}

func dateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
