package exporter

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"bikeshare/internal/dataprocessing"
	"bikeshare/pkg/contracts/domain"
)

// Separator closes every block of console output
var Separator = strings.Repeat("-", 40)

const startTimeLayout = "2006-01-02 15:04:05"

// TextExporter renders reports and pages as plain console text
type TextExporter struct {
	w io.Writer
}

// NewTextExporter creates an exporter writing to w
func NewTextExporter(w io.Writer) *TextExporter {
	return &TextExporter{w: w}
}

// section describes how one statistic group is introduced and closed
type section struct {
	name   string
	title  string
	footer string
}

var sections = []section{
	{domain.SectionTime, "Checking out the most popular times of travel...", "That took %s seconds."},
	{domain.SectionStation, "Now, let's see the most popular stations and trips...", "This analysis took %s seconds."},
	{domain.SectionDuration, "Evaluating trip durations...", "Analysis completed in %s seconds."},
	{domain.SectionUser, "Gathering user information...", "User stats collected in %s seconds."},
}

// WriteReport writes the four statistic groups of r. A report without data
// is rendered as a single notice.
func (e *TextExporter) WriteReport(r *domain.Report) error {
	var b strings.Builder

	if r.NoData {
		fmt.Fprintf(&b, "\nNo data available for %s (month: %s, day: %s).\n", r.Region, r.Month, r.Day)
		b.WriteString(Separator + "\n")
		return e.write(b.String())
	}

	for _, s := range sections {
		fmt.Fprintf(&b, "\n%s\n\n", s.title)
		switch s.name {
		case domain.SectionTime:
			writeTemporal(&b, r.Time)
		case domain.SectionStation:
			writeStations(&b, r.Station)
		case domain.SectionDuration:
			writeDurations(&b, r.Trip)
		case domain.SectionUser:
			writeUsers(&b, r.User)
		}
		fmt.Fprintf(&b, "\n"+s.footer+"\n", formatFloat(r.Elapsed[s.name].Seconds()))
		b.WriteString(Separator + "\n")
	}

	return e.write(b.String())
}

func writeTemporal(b *strings.Builder, s *domain.TemporalStats) {
	if s == nil {
		return
	}
	fmt.Fprintf(b, "Most Common Month: %s\n", dataprocessing.MonthName(s.MostCommonMonth))
	fmt.Fprintf(b, "Most Common Day of Week: %s\n", s.MostCommonDay)
	fmt.Fprintf(b, "Most Common Start Hour: %d\n", s.MostCommonHour)
}

func writeStations(b *strings.Builder, s *domain.StationStats) {
	if s == nil {
		return
	}
	fmt.Fprintf(b, "Most Common Start Station: %s\n", s.MostCommonStart)
	fmt.Fprintf(b, "Most Common End Station: %s\n", s.MostCommonEnd)
	fmt.Fprintf(b, "Most Common Trip: %s\n", s.MostCommonTrip)
}

func writeDurations(b *strings.Builder, s *domain.DurationStats) {
	if s == nil {
		return
	}
	fmt.Fprintf(b, "Total travel time: %s seconds\n", formatSeconds(s.TotalSeconds))
	fmt.Fprintf(b, "Average travel time: %s seconds\n", formatFloat(s.MeanSeconds))
}

func writeUsers(b *strings.Builder, s *domain.UserStats) {
	if s == nil {
		return
	}
	b.WriteString("User Types:\n")
	writeFrequencies(b, s.UserTypes)

	switch {
	case !s.Gender.Available:
		b.WriteString("\nNo gender data available for this city.\n")
	case len(s.Gender.Counts) == 0:
		b.WriteString("\nNo gender data recorded for these trips.\n")
	default:
		b.WriteString("\nGender Breakdown:\n")
		writeFrequencies(b, s.Gender.Counts)
	}

	switch {
	case !s.BirthYear.Available:
		b.WriteString("\nNo birth year data available for this city.\n")
	case s.BirthYear.Empty:
		b.WriteString("\nNo birth year data recorded for these trips.\n")
	default:
		fmt.Fprintf(b, "\nYear of Birth:\nEarliest: %d\nMost Recent: %d\nMost Common: %d\n",
			s.BirthYear.Earliest, s.BirthYear.MostRecent, s.BirthYear.MostCommon)
	}
}

func writeFrequencies(b *strings.Builder, entries []domain.FrequencyEntry) {
	tw := tabwriter.NewWriter(b, 0, 0, 4, ' ', 0)
	for _, entry := range entries {
		fmt.Fprintf(tw, "%s\t%s\n", entry.Value, formatInt(entry.Count))
	}
	tw.Flush()
}

// WritePage writes one batch of raw rows as an aligned table. Optional
// columns are shown only when the dataset has them.
func (e *TextExporter) WritePage(page dataprocessing.Page, caps domain.Capabilities) error {
	if len(page.Rows) == 0 {
		return e.write("No more rows to display.\n")
	}

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	header := []string{"", "Start Time", "Trip Duration", "Start Station", "End Station", "User Type"}
	if caps.HasGender {
		header = append(header, "Gender")
	}
	if caps.HasBirthYear {
		header = append(header, "Birth Year")
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, rec := range page.Rows {
		cols := []string{
			formatInt(rec.Row),
			rec.StartTime.Format(startTimeLayout),
			formatDuration(rec.TripDurationSeconds),
			rec.StartStation,
			rec.EndStation,
			rec.UserType,
		}
		if caps.HasGender {
			cols = append(cols, rec.Gender)
		}
		if caps.HasBirthYear {
			year := ""
			if rec.HasBirthYear {
				year = formatInt(int(rec.BirthYear))
			}
			cols = append(cols, year)
		}
		fmt.Fprintln(tw, strings.Join(cols, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	return e.write(b.String())
}

func (e *TextExporter) write(s string) error {
	_, err := io.WriteString(e.w, s)
	return err
}
