package validator

import (
	"time"

	"meteocal/core/constants"
	"meteocal/core/validator"
	"meteocal/modules/event/dto"
)

// Schedule is the parsed day and clock values of a valid event form.
type Schedule struct {
	Day   time.Time
	Start time.Time
	End   time.Time
}

// StartClock and EndClock are zero padded "HH:MM" values so they sort as text.
func (s Schedule) StartClock() string { return s.Start.Format(constants.TimeLayout) }
func (s Schedule) EndClock() string { return s.End.Format(constants.TimeLayout) }

// ValidateSaveEventRequest checks the event form and returns the parsed
// schedule when it is valid.
func ValidateSaveEventRequest(req *dto.SaveEventRequest) (*validator.ValidationResult, Schedule) {
	result := validator.NewValidationResult()
	result.MinLength("name", req.Name, 3, "The name must have at least 3 characters")
	result.MinLength("city", req.City, 3, "The city must have at least 3 characters")

	var day time.Time
	if req.Day == "" {
		result.AddError("day", "The day is required")
	} else if parsed, err := time.Parse(constants.DateLayout, req.Day); err != nil {
		result.AddError("day", "The day must be formatted as YYYY-MM-DD")
	} else {
		day = parsed
	}

	start, startOK := parseClock(result, "start_time", req.StartTime, "The start time")
	end, endOK := parseClock(result, "end_time", req.EndTime, "The end time")
	if startOK && endOK && !start.Before(end) {
		result.AddError("end_time", "The start time must be before the end time")
	}

	return result, Schedule{Day: day, Start: start, End: end}
}

func parseClock(result *validator.ValidationResult, field, value, label string) (time.Time, bool) {
	if value == "" {
		result.AddError(field, label+" is required")
		return time.Time{}, false
	}
	t, err := time.Parse(constants.TimeLayout, value)
	if err != nil {
		result.AddError(field, label+" must be formatted as HH:MM")
		return time.Time{}, false
	}
	return t, true
}
