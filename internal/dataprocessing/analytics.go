package dataprocessing

import (
	"sort"

	apperrors "bikeshare/internal/errors"
	"bikeshare/pkg/contracts/domain"
)

// tally counts values while remembering the order they were first seen
type tally[K comparable] struct {
	counts map[K]int
	order  []K
}

func newTally[K comparable]() *tally[K] {
	return &tally[K]{counts: make(map[K]int)}
}

func (t *tally[K]) add(k K) {
	if _, seen := t.counts[k]; !seen {
		t.order = append(t.order, k)
	}
	t.counts[k]++
}

// mode returns the most frequent value. Ties go to the value seen first.
func (t *tally[K]) mode() (K, int, bool) {
	var best K
	bestCount := 0
	for _, k := range t.order {
		if c := t.counts[k]; c > bestCount {
			best, bestCount = k, c
		}
	}
	return best, bestCount, bestCount > 0
}

// sorted returns values by descending count, ties in first-seen order
func (t *tally[K]) sorted() []K {
	out := make([]K, len(t.order))
	copy(out, t.order)
	sort.SliceStable(out, func(i, j int) bool {
		return t.counts[out[i]] > t.counts[out[j]]
	})
	return out
}

func frequencyTable(t *tally[string]) []domain.FrequencyEntry {
	keys := t.sorted()
	entries := make([]domain.FrequencyEntry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, domain.FrequencyEntry{Value: k, Count: t.counts[k]})
	}
	return entries
}

// leader tracks the first key to reach the highest running count
type leader[K comparable] struct {
	counts    map[K]int
	best      K
	bestCount int
}

func newLeader[K comparable]() *leader[K] {
	return &leader[K]{counts: make(map[K]int)}
}

func (l *leader[K]) add(k K) {
	l.counts[k]++
	if c := l.counts[k]; c > l.bestCount {
		l.best, l.bestCount = k, c
	}
}

func emptyView(section string) error {
	return apperrors.NewEmptyViewError(section)
}

// TemporalStats returns the most common month, day of week and start hour
func TemporalStats(view *FilteredView) (domain.TemporalStats, error) {
	if view.Len() == 0 {
		return domain.TemporalStats{}, emptyView(domain.SectionTime)
	}

	months := newTally[int]()
	days := newTally[string]()
	hours := newTally[int]()
	for i := 0; i < view.Len(); i++ {
		r := view.At(i)
		months.add(r.Month)
		days.add(r.DayOfWeek)
		hours.add(r.Hour)
	}

	var stats domain.TemporalStats
	stats.MostCommonMonth, stats.MostCommonMonthCount, _ = months.mode()
	stats.MostCommonDay, stats.MostCommonDayCount, _ = days.mode()
	stats.MostCommonHour, stats.MostCommonHourCount, _ = hours.mode()
	return stats, nil
}

// StationStats returns the most used start and end stations and the most
// common route. Blank station cells are skipped.
func StationStats(view *FilteredView) (domain.StationStats, error) {
	if view.Len() == 0 {
		return domain.StationStats{}, emptyView(domain.SectionStation)
	}

	starts := newTally[string]()
	ends := newTally[string]()
	routes := newLeader[domain.StationPair]()
	for i := 0; i < view.Len(); i++ {
		r := view.At(i)
		if r.StartStation != "" {
			starts.add(r.StartStation)
		}
		if r.EndStation != "" {
			ends.add(r.EndStation)
		}
		if r.StartStation != "" && r.EndStation != "" {
			routes.add(r.Route())
		}
	}

	var stats domain.StationStats
	stats.MostCommonStart, stats.MostCommonStartCount, _ = starts.mode()
	stats.MostCommonEnd, stats.MostCommonEndCount, _ = ends.mode()
	stats.MostCommonTrip, stats.MostCommonTripCount = routes.best, routes.bestCount
	return stats, nil
}

// DurationStats returns total, mean and extreme trip durations in seconds
func DurationStats(view *FilteredView) (domain.DurationStats, error) {
	n := view.Len()
	if n == 0 {
		return domain.DurationStats{}, emptyView(domain.SectionDuration)
	}

	first := view.At(0).TripDurationSeconds
	stats := domain.DurationStats{
		ShortestSeconds: first,
		LongestSeconds:  first,
		Trips:           n,
	}
	for i := 0; i < n; i++ {
		d := view.At(i).TripDurationSeconds
		stats.TotalSeconds += d
		if d < stats.ShortestSeconds {
			stats.ShortestSeconds = d
		}
		if d > stats.LongestSeconds {
			stats.LongestSeconds = d
		}
	}
	stats.MeanSeconds = stats.TotalSeconds / float64(n)
	return stats, nil
}

// UserStats returns the user type and gender breakdowns and birth year
// summary. Optional columns missing from the dataset are reported as
// unavailable rather than empty.
func UserStats(view *FilteredView) (domain.UserStats, error) {
	if view.Len() == 0 {
		return domain.UserStats{}, emptyView(domain.SectionUser)
	}

	caps := view.Capabilities()
	types := newTally[string]()
	genders := newTally[string]()
	years := newTally[float64]()
	var earliest, latest float64

	for i := 0; i < view.Len(); i++ {
		r := view.At(i)
		if r.UserType != "" {
			types.add(r.UserType)
		}
		if caps.HasGender && r.Gender != "" {
			genders.add(r.Gender)
		}
		if caps.HasBirthYear && r.HasBirthYear {
			if len(years.order) == 0 || r.BirthYear < earliest {
				earliest = r.BirthYear
			}
			if len(years.order) == 0 || r.BirthYear > latest {
				latest = r.BirthYear
			}
			years.add(r.BirthYear)
		}
	}

	stats := domain.UserStats{
		UserTypes: frequencyTable(types),
		Gender:    domain.GenderBreakdown{Available: caps.HasGender},
		BirthYear: domain.BirthYearStats{Available: caps.HasBirthYear},
	}
	if caps.HasGender {
		stats.Gender.Counts = frequencyTable(genders)
	}
	if caps.HasBirthYear {
		if common, _, ok := years.mode(); ok {
			stats.BirthYear.Earliest = int(earliest)
			stats.BirthYear.MostRecent = int(latest)
			stats.BirthYear.MostCommon = int(common)
		} else {
			stats.BirthYear.Empty = true
		}
	}
	return stats, nil
}
