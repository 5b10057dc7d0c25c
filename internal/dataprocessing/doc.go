// Package dataprocessing is the analytics core of the bikeshare explorer.
// It loads one regional trip dataset, narrows it with temporal filters and
// computes descriptive statistics over the result.
//
// # Architecture
//
// The package is organized into four components:
//
//  1. RecordStore: every trip of one dataset, read from CSV or XLSX
//  2. Filter engine: Apply and Refine produce a FilteredView of row indices
//  3. Aggregations: TemporalStats, StationStats, DurationStats, UserStats
//  4. Cursor: pages through a FilteredView five rows at a time
//
// # Usage
//
//	loader := dataprocessing.NewLoader(cfg.Datasets, logger)
//	store, err := loader.Load(ctx, "chicago")
//	if err != nil {
//	    return err
//	}
//	view := dataprocessing.Apply(store, dataprocessing.NewFilter("march", "friday"))
//	stats, err := dataprocessing.TemporalStats(view)
//
// # Error Handling
//
// Load failures are *errors.AppError values of type LOAD and match
// errors.ErrLoad. Statistics over a view with no rows return an EMPTY_VIEW
// error matching errors.ErrEmptyView instead of dividing by zero.
//
// A dataset lacking the optional Gender or Birth Year columns is not an
// error: the store's Capabilities say so and UserStats reports those parts
// as unavailable.
package dataprocessing
