package models

import "time"

// Lesson is a scheduled driving session. Date is "YYYY-MM-DD", StartTime and
// EndTime are 24-hour "HH:MM". Duration is always derived, never stored.
type Lesson struct {
	ID        int64     `json:"id"`
	DriverID  int64     `json:"driverId"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	CreatedAt time.Time `json:"createdAt"`
}
