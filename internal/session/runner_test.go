package session

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/dataprocessing"
	"bikeshare/internal/services"
	"bikeshare/internal/shared/testutil"
	"bikeshare/internal/validation"
)

func runSession(t *testing.T, input string) (string, *Runner) {
	t.Helper()

	logger := testutil.DiscardLogger()
	loader := dataprocessing.NewLoader(testutil.WriteDatasets(t), logger)
	svc := services.NewAnalysisService(loader, validation.NewSelectionValidator(loader.Regions()), logger)

	var out bytes.Buffer
	runner := NewRunner(svc, strings.NewReader(input), &out, logger)
	require.NoError(t, runner.Run(context.Background()))
	return out.String(), runner
}

func TestRunner_PageThroughThenReport(t *testing.T) {
	out, runner := runSession(t, "chicago\nall\nall\nyes\nyes\nno\nno\n")

	assert.Equal(t, StateDone, runner.State())
	assert.Contains(t, out, "Hello! Ready to dig into some bikeshare data?")
	assert.Contains(t, out, "Choose a city: Chicago, New York City, or Washington: ")
	assert.Contains(t, out, firstRowsAsk)
	assert.Equal(t, 1, strings.Count(out, moreRowsAsk))
	assert.Contains(t, out, "You have reached the end of the dataset.")
	assert.Contains(t, out, "Clinton St & Washington Blvd")
	assert.Contains(t, out, "Most Common Month: June")
	assert.Contains(t, out, "Would you like to restart the analysis?")
}

func TestRunner_RetriesInvalidAnswers(t *testing.T) {
	out, runner := runSession(t, "boston\nchicago\njuly\njanuary\nfunday\nall\nno\nno\nno\n")

	assert.Equal(t, StateDone, runner.State())
	assert.Contains(t, out, "Invalid city. Please try again.")
	assert.Contains(t, out, "Invalid month. Please try again.")
	assert.Contains(t, out, "Invalid day. Please try again.")
	assert.Contains(t, out, startOverAsk)
	assert.Contains(t, out, "Most Common Month: January")
	assert.Contains(t, out, "Most Common Day of Week: Wednesday")
}

func TestRunner_RestartWithEmptySelection(t *testing.T) {
	out, runner := runSession(t, "washington\nall\nall\nno\nyes\nchicago\nfebruary\nall\nno\nno\n")

	assert.Equal(t, StateDone, runner.State())
	assert.Equal(t, 2, strings.Count(out, "Hello!"))
	assert.Equal(t, 1, strings.Count(out, firstRowsAsk))
	assert.Contains(t, out, "You have reached the end of the dataset.")
	assert.Contains(t, out, "No data available for chicago (month: february, day: all).")
	assert.NotContains(t, out, "Most Common Month")
}

func TestRunner_MixedCaseAnswersAndUnterminatedInput(t *testing.T) {
	out, runner := runSession(t, "Chicago\nALL\nMonday\n YES \nno\nno")

	assert.Equal(t, StateDone, runner.State())
	assert.Contains(t, out, "Start Time")
	assert.Contains(t, out, "Christiana Ave & Lawrence Ave")
	assert.Contains(t, out, "Most Common Day of Week: Monday")
}

func TestRunner_OnlyYesMeansYes(t *testing.T) {
	for _, answer := range []string{"y", "yeah", "ok", ""} {
		t.Run(answer, func(t *testing.T) {
			out, runner := runSession(t, "chicago\nall\nmonday\n"+answer+"\nno\n")

			assert.Equal(t, StateDone, runner.State())
			assert.NotContains(t, out, "Start Time")
			assert.Contains(t, out, "Most Common Day of Week: Monday")
			assert.Equal(t, 1, strings.Count(out, firstRowsAsk))
		})
	}
}

func TestRunner_InputEndsEarly(t *testing.T) {
	out, runner := runSession(t, "chicago\n")

	assert.Equal(t, StateDone, runner.State())
	assert.Contains(t, out, monthPrompt)
	assert.NotContains(t, out, dayPrompt)
}

func TestRunner_LoadFailureReturnsToPrompt(t *testing.T) {
	out, runner := runSession(t, "new york city\nall\nall\n")

	assert.Equal(t, StateDone, runner.State())
	assert.Contains(t, out, "Could not load data for new york city")
	assert.Equal(t, 2, strings.Count(out, "Hello!"))
}

func TestRunner_LoadFailureIsLogged(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	loader := dataprocessing.NewLoader(testutil.WriteDatasets(t), logger)
	svc := services.NewAnalysisService(loader, validation.NewSelectionValidator(loader.Regions()), logger)

	var out bytes.Buffer
	runner := NewRunner(svc, strings.NewReader("new york city\nall\nall\n"), &out, logger)
	require.NoError(t, runner.Run(context.Background()))

	testutil.AssertLogContains(t, logs, slog.LevelError, "Load failed")
	testutil.AssertLogAttr(t, logs, "error_type", "LOAD")
	testutil.AssertLogAttr(t, logs, "component", "session")
}

func TestRunner_ContextCancelled(t *testing.T) {
	logger := testutil.DiscardLogger()
	loader := dataprocessing.NewLoader(testutil.WriteDatasets(t), logger)
	svc := services.NewAnalysisService(loader, validation.NewSelectionValidator(loader.Regions()), logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(svc, strings.NewReader("chicago\n"), &bytes.Buffer{}, logger)
	assert.ErrorIs(t, runner.Run(ctx), context.Canceled)
}

func TestCityPrompt(t *testing.T) {
	tests := []struct {
		regions []string
		want    string
	}{
		{[]string{"chicago"}, "Choose a city: Chicago: "},
		{[]string{"chicago", "washington"}, "Choose a city: Chicago or Washington: "},
		{[]string{"chicago", "new york city", "washington"}, "Choose a city: Chicago, New York City, or Washington: "},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cityPrompt(tt.regions))
	}
}
