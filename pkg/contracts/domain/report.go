package domain

import (
	"time"
)

// TemporalStats holds the most frequent time buckets of a filtered view
type TemporalStats struct {
	MostCommonMonth      int    `json:"most_common_month"`
	MostCommonMonthCount int    `json:"most_common_month_count"`
	MostCommonDay        string `json:"most_common_day"`
	MostCommonDayCount   int    `json:"most_common_day_count"`
	MostCommonHour       int    `json:"most_common_hour"`
	MostCommonHourCount  int    `json:"most_common_hour_count"`
}

// StationPair identifies a route by its start and end stations
type StationPair struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// String renders the pair the way the console report does
func (p StationPair) String() string {
	return p.Start + " to " + p.End
}

// StationStats holds the most popular stations and trip
type StationStats struct {
	MostCommonStart      string      `json:"most_common_start"`
	MostCommonStartCount int         `json:"most_common_start_count"`
	MostCommonEnd        string      `json:"most_common_end"`
	MostCommonEndCount   int         `json:"most_common_end_count"`
	MostCommonTrip       StationPair `json:"most_common_trip"`
	MostCommonTripCount  int         `json:"most_common_trip_count"`
}

// DurationStats holds aggregate trip durations in seconds
type DurationStats struct {
	TotalSeconds    float64 `json:"total_seconds"`
	MeanSeconds     float64 `json:"mean_seconds"`
	ShortestSeconds float64 `json:"shortest_seconds"`
	LongestSeconds  float64 `json:"longest_seconds"`
	Trips           int     `json:"trips"`
}

// FrequencyEntry is one row of a value_counts style table
type FrequencyEntry struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// GenderBreakdown is the gender frequency table.
// Available is false when the dataset has no Gender column.
type GenderBreakdown struct {
	Available bool             `json:"available"`
	Counts    []FrequencyEntry `json:"counts,omitempty"`
}

// BirthYearStats summarizes rider birth years.
// Available is false when the dataset has no Birth Year column; Empty is true
// when the column exists but every value in the view is blank.
type BirthYearStats struct {
	Available  bool `json:"available"`
	Empty      bool `json:"empty,omitempty"`
	Earliest   int  `json:"earliest,omitempty"`
	MostRecent int  `json:"most_recent,omitempty"`
	MostCommon int  `json:"most_common,omitempty"`
}

// UserStats holds rider demographics
type UserStats struct {
	UserTypes []FrequencyEntry `json:"user_types"`
	Gender    GenderBreakdown  `json:"gender"`
	BirthYear BirthYearStats   `json:"birth_year"`
}

// Report bundles the four statistic groups for one filtered view.
// A nil section means the view was empty.
type Report struct {
	Region  string         `json:"region"`
	Month   string         `json:"month"`
	Day     string         `json:"day"`
	Trips   int            `json:"trips"`
	NoData  bool           `json:"no_data"`
	Time    *TemporalStats `json:"time,omitempty"`
	Station *StationStats  `json:"station,omitempty"`
	Trip    *DurationStats `json:"trip_duration,omitempty"`
	User    *UserStats     `json:"user,omitempty"`

	// Elapsed holds how long each section took, keyed by section name
	Elapsed map[string]time.Duration `json:"-"`
}

// Report section names
const (
	SectionTime     = "time"
	SectionStation  = "station"
	SectionDuration = "trip_duration"
	SectionUser     = "user"
)
