package dataprocessing

import (
	"strings"
	"time"

	"bikeshare/internal/config"
	"bikeshare/pkg/contracts/domain"
)

// Months is the month filter vocabulary. The published datasets only cover
// the first half of the year.
var Months = []string{"january", "february", "march", "april", "may", "june"}

// Weekdays is the day filter vocabulary
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Filter selects trips by month and day of week. "all" disables a predicate.
type Filter struct {
	Month string `json:"month"`
	Day   string `json:"day"`
}

// NewFilter normalizes month and day. Empty values mean "all".
func NewFilter(month, day string) Filter {
	return Filter{Month: normalizeTerm(month), Day: normalizeTerm(day)}
}

// AllFilter selects every trip
func AllFilter() Filter {
	return Filter{Month: config.FilterAll, Day: config.FilterAll}
}

// IsAll reports whether the filter selects every trip
func (f Filter) IsAll() bool {
	return f.monthIsAll() && f.dayIsAll()
}

func (f Filter) monthIsAll() bool {
	return f.Month == "" || strings.EqualFold(f.Month, config.FilterAll)
}

func (f Filter) dayIsAll() bool {
	return f.Day == "" || strings.EqualFold(f.Day, config.FilterAll)
}

func normalizeTerm(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return config.FilterAll
	}
	return v
}

// MonthNumber returns the 1-based calendar month for a filter month name
func MonthNumber(name string) (int, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, m := range Months {
		if m == name {
			return i + 1, true
		}
	}
	return 0, false
}

// MonthName returns the English name of calendar month n, or "" when out of range
func MonthName(n int) string {
	if n < 1 || n > 12 {
		return ""
	}
	return time.Month(n).String()
}

// IsWeekday reports whether name is in the day vocabulary
func IsWeekday(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, d := range Weekdays {
		if d == name {
			return true
		}
	}
	return false
}

// FilteredView is an ordered, read-only selection of a store's rows.
// It holds indices only; records stay in the store.
type FilteredView struct {
	store   *RecordStore
	indices []int
	filter  Filter
}

// Apply selects the store's rows matching every active predicate of f,
// preserving file order. The store is not modified. A month or day outside
// the vocabulary selects nothing.
func Apply(store *RecordStore, f Filter) *FilteredView {
	indices := make([]int, 0, store.Len())
	match := f.matcher()
	for i := range store.records {
		if match(&store.records[i]) {
			indices = append(indices, i)
		}
	}
	return &FilteredView{store: store, indices: indices, filter: f}
}

// Refine narrows the view further. The resulting filter combines both
// selections; applying the same filter twice is a no-op.
func (v *FilteredView) Refine(f Filter) *FilteredView {
	match := f.matcher()
	indices := make([]int, 0, len(v.indices))
	for _, i := range v.indices {
		if match(&v.store.records[i]) {
			indices = append(indices, i)
		}
	}

	combined := v.filter
	if !f.monthIsAll() {
		combined.Month = f.Month
	}
	if !f.dayIsAll() {
		combined.Day = f.Day
	}
	return &FilteredView{store: v.store, indices: indices, filter: combined}
}

func (f Filter) matcher() func(*domain.TripRecord) bool {
	month := 0
	if !f.monthIsAll() {
		n, ok := MonthNumber(f.Month)
		if !ok {
			return func(*domain.TripRecord) bool { return false }
		}
		month = n
	}
	day := ""
	if !f.dayIsAll() {
		day = strings.TrimSpace(f.Day)
	}

	return func(r *domain.TripRecord) bool {
		if month != 0 && r.Month != month {
			return false
		}
		if day != "" && !strings.EqualFold(r.DayOfWeek, day) {
			return false
		}
		return true
	}
}

// Len returns the number of selected rows
func (v *FilteredView) Len() int {
	return len(v.indices)
}

// At returns the i-th selected record
func (v *FilteredView) At(i int) domain.TripRecord {
	return v.store.records[v.indices[i]]
}

// Slice copies the selected records in [from, to), clipped to the view
func (v *FilteredView) Slice(from, to int) []domain.TripRecord {
	if from < 0 {
		from = 0
	}
	if to > len(v.indices) {
		to = len(v.indices)
	}
	if from >= to {
		return []domain.TripRecord{}
	}
	out := make([]domain.TripRecord, 0, to-from)
	for _, i := range v.indices[from:to] {
		out = append(out, v.store.records[i])
	}
	return out
}

// Rows returns the store positions of the selected records
func (v *FilteredView) Rows() []int {
	out := make([]int, len(v.indices))
	copy(out, v.indices)
	return out
}

// Filter returns the filter that produced the view
func (v *FilteredView) Filter() Filter {
	return v.filter
}

// Store returns the backing record store
func (v *FilteredView) Store() *RecordStore {
	return v.store
}

// Capabilities reports the optional columns of the backing dataset
func (v *FilteredView) Capabilities() domain.Capabilities {
	return v.store.caps
}
