package exporter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/dataprocessing"
	"bikeshare/pkg/contracts/domain"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		Region: "chicago",
		Month:  "all",
		Day:    "all",
		Trips:  6,
		Time: &domain.TemporalStats{
			MostCommonMonth: 6,
			MostCommonDay:   "Monday",
			MostCommonHour:  15,
		},
		Station: &domain.StationStats{
			MostCommonStart: "Wood St & Hubbard St",
			MostCommonEnd:   "Damen Ave & Chicago Ave",
			MostCommonTrip:  domain.StationPair{Start: "Wood St & Hubbard St", End: "Damen Ave & Chicago Ave"},
		},
		Trip: &domain.DurationStats{TotalSeconds: 3817, MeanSeconds: 636.1666, Trips: 6},
		User: &domain.UserStats{
			UserTypes: []domain.FrequencyEntry{{Value: "Subscriber", Count: 5}, {Value: "Customer", Count: 1}},
			Gender: domain.GenderBreakdown{
				Available: true,
				Counts:    []domain.FrequencyEntry{{Value: "Male", Count: 4}, {Value: "Female", Count: 1}},
			},
			BirthYear: domain.BirthYearStats{Available: true, Earliest: 1981, MostRecent: 1992, MostCommon: 1992},
		},
		Elapsed: map[string]time.Duration{
			domain.SectionTime:     10 * time.Millisecond,
			domain.SectionStation:  20 * time.Millisecond,
			domain.SectionDuration: 0,
			domain.SectionUser:     1500 * time.Millisecond,
		},
	}
}

func TestTextExporter_WriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextExporter(&buf).WriteReport(sampleReport()))
	out := buf.String()

	for _, want := range []string{
		"Checking out the most popular times of travel...",
		"Most Common Month: June\n",
		"Most Common Day of Week: Monday\n",
		"Most Common Start Hour: 15\n",
		"That took 0.01 seconds.",
		"Now, let's see the most popular stations and trips...",
		"Most Common Trip: Wood St & Hubbard St to Damen Ave & Chicago Ave\n",
		"This analysis took 0.02 seconds.",
		"Evaluating trip durations...",
		"Total travel time: 3,817 seconds\n",
		"Average travel time: 636.17 seconds\n",
		"Analysis completed in 0.00 seconds.",
		"Gathering user information...",
		"User Types:\nSubscriber    5\nCustomer      1\n",
		"Gender Breakdown:\nMale      4\nFemale    1\n",
		"Year of Birth:\nEarliest: 1981\nMost Recent: 1992\nMost Common: 1992\n",
		"User stats collected in 1.50 seconds.",
	} {
		assert.Contains(t, out, want)
	}

	assert.Equal(t, 4, strings.Count(out, Separator+"\n"))

	// sections appear in a fixed order
	assert.Less(t, strings.Index(out, "times of travel"), strings.Index(out, "stations and trips"))
	assert.Less(t, strings.Index(out, "stations and trips"), strings.Index(out, "trip durations"))
	assert.Less(t, strings.Index(out, "trip durations"), strings.Index(out, "user information"))
}

func TestTextExporter_WriteReportUnavailableColumns(t *testing.T) {
	tests := []struct {
		name      string
		gender    domain.GenderBreakdown
		birthYear domain.BirthYearStats
		want      []string
	}{
		{
			name: "columns absent",
			want: []string{
				"No gender data available for this city.",
				"No birth year data available for this city.",
			},
		},
		{
			name:      "columns present but blank",
			gender:    domain.GenderBreakdown{Available: true},
			birthYear: domain.BirthYearStats{Available: true, Empty: true},
			want: []string{
				"No gender data recorded for these trips.",
				"No birth year data recorded for these trips.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := sampleReport()
			report.User.Gender = tt.gender
			report.User.BirthYear = tt.birthYear

			var buf bytes.Buffer
			require.NoError(t, NewTextExporter(&buf).WriteReport(report))

			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
			assert.NotContains(t, buf.String(), "Year of Birth:")
		})
	}
}

func TestTextExporter_WriteReportNoData(t *testing.T) {
	report := &domain.Report{Region: "chicago", Month: "february", Day: "sunday", NoData: true}

	var buf bytes.Buffer
	require.NoError(t, NewTextExporter(&buf).WriteReport(report))

	assert.Equal(t, "\nNo data available for chicago (month: february, day: sunday).\n"+Separator+"\n", buf.String())
}

func TestTextExporter_WritePage(t *testing.T) {
	start := time.Date(2017, 6, 23, 15, 9, 32, 0, time.UTC)
	rec := domain.NewTripRecord(0, start)
	rec.TripDurationSeconds = 321
	rec.StartStation = "Wood St & Hubbard St"
	rec.EndStation = "Damen Ave & Chicago Ave"
	rec.UserType = "Subscriber"
	rec.Gender = "Male"
	rec.BirthYear = 1992
	rec.HasBirthYear = true

	blank := domain.NewTripRecord(1, start)
	blank.UserType = "Customer"

	page := dataprocessing.Page{Rows: []domain.TripRecord{rec, blank}}

	t.Run("with optional columns", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewTextExporter(&buf).WritePage(page, domain.Capabilities{HasGender: true, HasBirthYear: true}))

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[0], "Start Time")
		assert.Contains(t, lines[0], "Birth Year")
		assert.Contains(t, lines[1], "2017-06-23 15:09:32")
		assert.Contains(t, lines[1], "321")
		assert.Contains(t, lines[1], "1992")
		assert.NotContains(t, lines[2], "1992")
	})

	t.Run("without optional columns", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewTextExporter(&buf).WritePage(page, domain.Capabilities{}))

		assert.NotContains(t, buf.String(), "Gender")
		assert.NotContains(t, buf.String(), "Birth Year")
	})

	t.Run("empty page", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewTextExporter(&buf).WritePage(dataprocessing.Page{Done: true}, domain.Capabilities{}))
		assert.Equal(t, "No more rows to display.\n", buf.String())
	})
}
