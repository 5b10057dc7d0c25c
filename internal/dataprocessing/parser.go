package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "bikeshare/internal/errors"
	"bikeshare/pkg/contracts/domain"
)

// Column names as they appear in the published datasets
const (
	ColumnStartTime    = "Start Time"
	ColumnStartStation = "Start Station"
	ColumnEndStation   = "End Station"
	ColumnTripDuration = "Trip Duration"
	ColumnUserType     = "User Type"
	ColumnGender       = "Gender"
	ColumnBirthYear    = "Birth Year"
)

var requiredColumns = []string{
	ColumnStartTime,
	ColumnStartStation,
	ColumnEndStation,
	ColumnTripDuration,
	ColumnUserType,
}

// startTimeLayouts are tried in order. Fractional seconds are accepted by
// time.Parse after any seconds field.
var startTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/06 15:04",
	"2006-01-02",
}

const utf8BOM = "\uFEFF"

// columnMap holds the position of every known column, -1 when absent
type columnMap struct {
	startTime    int
	startStation int
	endStation   int
	duration     int
	userType     int
	gender       int
	birthYear    int
}

func (c columnMap) capabilities() domain.Capabilities {
	return domain.Capabilities{
		HasGender:    c.gender >= 0,
		HasBirthYear: c.birthYear >= 0,
	}
}

// mapColumns locates columns by trimmed, case-insensitive header name.
// Unknown headers, including the unnamed index column, are ignored.
func mapColumns(header []string) (columnMap, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	lookup := func(name string) int {
		if i, ok := index[strings.ToLower(name)]; ok {
			return i
		}
		return -1
	}

	for _, name := range requiredColumns {
		if lookup(name) < 0 {
			return columnMap{}, apperrors.NewLoadError(fmt.Sprintf("missing required column %q", name), nil).
				WithContext("column", name)
		}
	}

	return columnMap{
		startTime:    lookup(ColumnStartTime),
		startStation: lookup(ColumnStartStation),
		endStation:   lookup(ColumnEndStation),
		duration:     lookup(ColumnTripDuration),
		userType:     lookup(ColumnUserType),
		gender:       lookup(ColumnGender),
		birthYear:    lookup(ColumnBirthYear),
	}, nil
}

// rowParser turns raw cells into trip records
type rowParser struct {
	cols        columnMap
	excelSerial bool
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func (p rowParser) parse(index, line int, row []string) (domain.TripRecord, error) {
	raw := cell(row, p.cols.startTime)
	start, err := p.parseStartTime(raw)
	if err != nil {
		return domain.TripRecord{}, rowError(line, ColumnStartTime, raw, err)
	}

	rec := domain.NewTripRecord(index, start)
	rec.StartStation = cell(row, p.cols.startStation)
	rec.EndStation = cell(row, p.cols.endStation)
	rec.UserType = cell(row, p.cols.userType)

	raw = cell(row, p.cols.duration)
	duration, err := strconv.ParseFloat(raw, 64)
	if err == nil && (duration < 0 || math.IsNaN(duration) || math.IsInf(duration, 0)) {
		err = errors.New("duration must be a non-negative number")
	}
	if err != nil {
		return domain.TripRecord{}, rowError(line, ColumnTripDuration, raw, err)
	}
	rec.TripDurationSeconds = duration

	if p.cols.gender >= 0 {
		rec.Gender = cell(row, p.cols.gender)
	}

	if p.cols.birthYear >= 0 {
		if raw = cell(row, p.cols.birthYear); raw != "" {
			year, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsNaN(year) {
				return domain.TripRecord{}, rowError(line, ColumnBirthYear, raw, err)
			}
			rec.BirthYear = year
			rec.HasBirthYear = true
		}
	}

	return rec, nil
}

// parseStartTime parses a timezone-naive timestamp as UTC
func (p rowParser) parseStartTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty start time")
	}
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	if p.excelSerial {
		if serial, err := strconv.ParseFloat(value, 64); err == nil {
			return excelize.ExcelDateToTime(serial, false)
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func rowError(line int, column, value string, cause error) *apperrors.AppError {
	return apperrors.NewLoadError(
		fmt.Sprintf("line %d: invalid %s %q", line, column, value),
		apperrors.NewParsingError(column, cause),
	).WithContext("line", line).WithContext("column", column)
}

// ParseCSV reads a comma-separated dataset. source is used only for
// diagnostics and Source().
func ParseCSV(r io.Reader, source string) (*RecordStore, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apperrors.NewLoadError("dataset is empty", nil).WithContext("source", source)
	}
	if err != nil {
		return nil, apperrors.NewLoadError("failed to read header", err).WithContext("source", source)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, withSource(err, source)
	}

	parser := rowParser{cols: cols}
	store := &RecordStore{source: source, caps: cols.capabilities()}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewLoadError("failed to read row", err).WithContext("source", source)
		}
		if blankRow(row) {
			continue
		}

		line, _ := reader.FieldPos(0)
		rec, err := parser.parse(len(store.records), line, row)
		if err != nil {
			return nil, withSource(err, source)
		}
		store.records = append(store.records, rec)
	}

	return store, nil
}

// ParseXLSX reads the first worksheet whose header row carries the required
// columns. Start times may be text or Excel date serials.
func ParseXLSX(path string) (*RecordStore, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewLoadError("failed to open workbook", err).WithContext("source", path)
	}
	defer f.Close()

	var (
		rows    [][]string
		cols    columnMap
		lastErr error = apperrors.NewLoadError("workbook has no sheets", nil)
	)
	found := false
	for _, sheet := range f.GetSheetList() {
		sheetRows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			lastErr = apperrors.NewLoadError(fmt.Sprintf("failed to read sheet %q", sheet), err)
			continue
		}
		if len(sheetRows) == 0 {
			lastErr = apperrors.NewLoadError("dataset is empty", nil)
			continue
		}
		if cols, err = mapColumns(sheetRows[0]); err != nil {
			lastErr = err
			continue
		}
		rows = sheetRows[1:]
		found = true
		break
	}
	if !found {
		return nil, withSource(lastErr, path)
	}

	parser := rowParser{cols: cols, excelSerial: true}
	store := &RecordStore{source: path, caps: cols.capabilities()}

	for i, row := range rows {
		if blankRow(row) {
			continue
		}
		// rows excludes the header, so file line numbers start at 2
		rec, err := parser.parse(len(store.records), i+2, row)
		if err != nil {
			return nil, withSource(err, path)
		}
		store.records = append(store.records, rec)
	}

	return store, nil
}

func withSource(err error, source string) error {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr.WithContext("source", source)
	}
	return err
}
