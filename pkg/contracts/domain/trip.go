package domain

import (
	"time"
)

// TripRecord represents a single bikeshare trip parsed from a regional dataset
type TripRecord struct {
	Row                 int       `json:"row"`
	StartTime           time.Time `json:"start_time"`
	StartStation        string    `json:"start_station"`
	EndStation          string    `json:"end_station"`
	TripDurationSeconds float64   `json:"trip_duration_seconds"`
	UserType            string    `json:"user_type"`

	// Optional columns. Only meaningful when the owning dataset reports the
	// matching capability; blank cells stay empty / HasBirthYear=false.
	Gender       string  `json:"gender,omitempty"`
	BirthYear    float64 `json:"birth_year,omitempty"`
	HasBirthYear bool    `json:"-"`

	// Derived once from StartTime at load
	Month     int    `json:"month"`
	DayOfWeek string `json:"day_of_week"`
	Hour      int    `json:"hour"`
}

// Capabilities describes which optional columns a dataset carries.
// Presence is decided once per dataset from the header, never per row.
type Capabilities struct {
	HasGender    bool `json:"has_gender"`
	HasBirthYear bool `json:"has_birth_year"`
}

// NewTripRecord builds a record and fills in the fields derived from start.
func NewTripRecord(row int, start time.Time) TripRecord {
	return TripRecord{
		Row:       row,
		StartTime: start,
		Month:     int(start.Month()),
		DayOfWeek: start.Weekday().String(),
		Hour:      start.Hour(),
	}
}

// Route returns the (start, end) station pair of the trip
func (t TripRecord) Route() StationPair {
	return StationPair{Start: t.StartStation, End: t.EndStation}
}
