package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "bikeshare/internal/errors"
)

func newTestValidator() *SelectionValidator {
	return NewSelectionValidator([]string{"washington", "Chicago", "new york city", "chicago"})
}

func TestSelectionValidator_Regions(t *testing.T) {
	assert.Equal(t, []string{"chicago", "new york city", "washington"}, newTestValidator().Regions())
}

func TestSelectionValidator_Validate(t *testing.T) {
	tests := []struct {
		name       string
		sel        Selection
		want       Selection
		wantFields []string
	}{
		{
			name: "normalizes valid input",
			sel:  Selection{Region: " New York City ", Month: "March", Day: "FRIDAY"},
			want: Selection{Region: "new york city", Month: "march", Day: "friday"},
		},
		{
			name: "empty filters mean all",
			sel:  Selection{Region: "chicago"},
			want: Selection{Region: "chicago", Month: "all", Day: "all"},
		},
		{
			name:       "unknown region",
			sel:        Selection{Region: "boston", Month: "all", Day: "all"},
			wantFields: []string{"region"},
		},
		{
			name:       "month outside the six-month vocabulary",
			sel:        Selection{Region: "chicago", Month: "july", Day: "all"},
			wantFields: []string{"month"},
		},
		{
			name:       "every field invalid",
			sel:        Selection{Region: "", Month: "smarch", Day: "funday", Page: -1},
			wantFields: []string{"region", "month", "day", "page"},
		},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Validate(tt.sel)
			if len(tt.wantFields) == 0 {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			require.Error(t, err)
			var apiErr *apierrors.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, 400, apiErr.StatusCode)

			details, ok := apiErr.Details.([]apierrors.ValidationError)
			require.True(t, ok)
			var fields []string
			for _, d := range details {
				fields = append(fields, d.Field)
				assert.NotEmpty(t, d.Message)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestSelectionValidator_SingleAnswers(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateRegion("Washington"))
	assert.NoError(t, v.ValidateMonth("all"))
	assert.NoError(t, v.ValidateMonth(" June "))
	assert.NoError(t, v.ValidateDay("sunday"))

	err := v.ValidateRegion("boston")
	require.Error(t, err)
	assert.ErrorIs(t, err, apierrors.ErrValidation)
	assert.Contains(t, err.Error(), `"boston" is not a known region; choose one of: chicago, new york city, washington`)

	err = v.ValidateMonth("december")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "january, february, march, april, may, june, all")

	err = v.ValidateDay("someday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"someday" is not a valid day`)

	err = v.ValidateRegion("   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "region is required")
}

func TestSelection_Filter(t *testing.T) {
	f := Selection{Region: "chicago", Month: "May", Day: ""}.Normalize().Filter()

	assert.Equal(t, "may", f.Month)
	assert.Equal(t, "all", f.Day)
}
