package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"bikeshare/internal/config"
	"bikeshare/internal/dataprocessing"
	apierrors "bikeshare/internal/errors"
)

// Selection is a user's choice of dataset and filters
type Selection struct {
	Region string `json:"region" validate:"required,region"`
	Month  string `json:"month" validate:"required,month"`
	Day    string `json:"day" validate:"required,weekday"`
	Page   int    `json:"page" validate:"gte=0"`
}

// Normalize trims and lower-cases every field; empty filters become "all"
func (s Selection) Normalize() Selection {
	return Selection{
		Region: config.NormalizeRegion(s.Region),
		Month:  termOrAll(s.Month),
		Day:    termOrAll(s.Day),
		Page:   s.Page,
	}
}

// Filter converts the selection into a filter
func (s Selection) Filter() dataprocessing.Filter {
	return dataprocessing.NewFilter(s.Month, s.Day)
}

func termOrAll(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return config.FilterAll
	}
	return v
}

// SelectionValidator checks selections against the closed vocabularies:
// configured regions, the month list and the weekday list, each plus "all"
// for the filters.
type SelectionValidator struct {
	validate *validator.Validate
	regions  []string
}

// NewSelectionValidator creates a validator accepting the given regions
func NewSelectionValidator(regions []string) *SelectionValidator {
	known := make(map[string]struct{}, len(regions))
	sorted := make([]string, 0, len(regions))
	for _, r := range regions {
		r = config.NormalizeRegion(r)
		if _, dup := known[r]; !dup {
			known[r] = struct{}{}
			sorted = append(sorted, r)
		}
	}
	sort.Strings(sorted)

	v := validator.New()

	// Register custom validators
	v.RegisterValidation("region", func(fl validator.FieldLevel) bool {
		_, ok := known[config.NormalizeRegion(fl.Field().String())]
		return ok
	})
	v.RegisterValidation("month", isMonth)
	v.RegisterValidation("weekday", isWeekday)

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &SelectionValidator{validate: v, regions: sorted}
}

// Regions returns the accepted region names in sorted order
func (v *SelectionValidator) Regions() []string {
	return v.regions
}

// Validate normalizes sel and checks every field. Failures are returned as
// a 400 API error listing each invalid field.
func (v *SelectionValidator) Validate(sel Selection) (Selection, error) {
	sel = sel.Normalize()
	if err := v.validate.Struct(sel); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return sel, err
		}

		validationErrors := make([]apierrors.ValidationError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			validationErrors = append(validationErrors, apierrors.ValidationError{
				Field:   fe.Field(),
				Message: v.formatValidationError(fe),
			})
		}
		return sel, apierrors.NewValidationErrors(validationErrors)
	}
	return sel, nil
}

// ValidateRegion checks one region answer
func (v *SelectionValidator) ValidateRegion(region string) error {
	return v.validateVar("region", config.NormalizeRegion(region), "required,region")
}

// ValidateMonth checks one month answer
func (v *SelectionValidator) ValidateMonth(month string) error {
	return v.validateVar("month", termOrAll(month), "month")
}

// ValidateDay checks one day answer
func (v *SelectionValidator) ValidateDay(day string) error {
	return v.validateVar("day", termOrAll(day), "weekday")
}

func (v *SelectionValidator) validateVar(field, value, tag string) error {
	if err := v.validate.Var(value, tag); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return apierrors.NewAppValidationError(v.describe(field, fieldErrs[0].Tag(), value))
		}
		return apierrors.NewAppValidationError(err.Error())
	}
	return nil
}

// formatValidationError formats validation error messages
func (v *SelectionValidator) formatValidationError(fe validator.FieldError) string {
	return v.describe(fe.Field(), fe.Tag(), fmt.Sprint(fe.Value()))
}

func (v *SelectionValidator) describe(field, tag, value string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "region":
		return fmt.Sprintf("%q is not a known region; choose one of: %s", value, strings.Join(v.regions, ", "))
	case "month":
		return fmt.Sprintf("%q is not a valid month; choose one of: %s, all", value, strings.Join(dataprocessing.Months, ", "))
	case "weekday":
		return fmt.Sprintf("%q is not a valid day; choose one of: %s, all", value, strings.Join(dataprocessing.Weekdays, ", "))
	case "gte":
		return fmt.Sprintf("%s must not be negative", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func isMonth(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == config.FilterAll {
		return true
	}
	_, ok := dataprocessing.MonthNumber(value)
	return ok
}

func isWeekday(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == config.FilterAll || dataprocessing.IsWeekday(value)
}
