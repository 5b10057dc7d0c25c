package dataprocessing

import (
	"math"

	"bikeshare/internal/config"
	"bikeshare/pkg/contracts/domain"
)

// PageSize is the number of raw rows shown per step
const PageSize = config.PageSize

// MaxPage is the highest page number whose offset fits in an int
const MaxPage = math.MaxInt / PageSize

// PageOffset returns the row offset of page n. Pages beyond MaxPage
// saturate at math.MaxInt, which is past the end of any view.
func PageOffset(n int) int {
	if n > MaxPage {
		return math.MaxInt
	}
	if n < 0 {
		return 0
	}
	return n * PageSize
}

// Page is one batch of raw rows
type Page struct {
	Offset int                 `json:"offset"`
	Rows   []domain.TripRecord `json:"rows"`
	Done   bool                `json:"done"`
}

// Cursor walks a filtered view PageSize rows at a time. It performs no I/O;
// the caller decides whether to advance again.
type Cursor struct {
	view     *FilteredView
	position int
}

// NewCursor starts a cursor at the first row of view
func NewCursor(view *FilteredView) *Cursor {
	return &Cursor{view: view}
}

// NewCursorAt starts a cursor at the given row offset
func NewCursorAt(view *FilteredView, position int) *Cursor {
	if position < 0 {
		position = 0
	}
	return &Cursor{view: view, position: position}
}

// Advance returns the next batch and moves past it. Once the view is
// exhausted every call returns an empty batch with Done set.
func (c *Cursor) Advance() Page {
	page := Page{Offset: c.position, Rows: []domain.TripRecord{}}
	if c.position < c.view.Len() {
		page.Rows = c.view.Slice(c.position, c.position+PageSize)
		c.position += PageSize
	}
	page.Done = c.Done()
	return page
}

// Position returns the offset of the next batch
func (c *Cursor) Position() int {
	return c.position
}

// Done reports whether every row has been returned
func (c *Cursor) Done() bool {
	return c.position >= c.view.Len()
}

// Remaining returns how many rows are still to be returned
func (c *Cursor) Remaining() int {
	if r := c.view.Len() - c.position; r > 0 {
		return r
	}
	return 0
}
