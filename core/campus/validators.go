package campus

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/campus/core"
)

var (
	weekdaysTag  = "weekdays"
	weekdaysText = "office hours can only be set once per day"

	officeHourTag  = "ohrange"
	officeHourText = "end time must be after start time"
)

// InitValidators registers the campus validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(weekdaysTag, weekdaysValidation)
	core.RegisterCustomTranslation(validate, translator, weekdaysTag, weekdaysText)

	validate.RegisterStructValidation(officeHourStructValidation, OfficeHour{})
	core.RegisterCustomTranslation(validate, translator, officeHourTag, officeHourText)
}

// Custom Validators

// weekdaysValidation checks that a []OfficeHour holds at most one entry per day.
func weekdaysValidation(fl validator.FieldLevel) bool {
	ohs, ok := fl.Field().Interface().([]OfficeHour)
	if !ok {
		return false
	}
	seen := make(map[string]bool, len(ohs))
	for _, oh := range ohs {
		if seen[oh.Day] {
			return false
		}
		seen[oh.Day] = true
	}
	return true
}

// officeHourStructValidation checks that an OfficeHour ends after it starts.
// HH:MM strings compare chronologically once the clock format is valid.
func officeHourStructValidation(sl validator.StructLevel) {
	oh := sl.Current().Interface().(OfficeHour)
	if core.ValidClock(oh.StartTime) && core.ValidClock(oh.EndTime) && oh.EndTime <= oh.StartTime {
		sl.ReportError(oh.EndTime, "endTime", "EndTime", officeHourTag, "")
	}
}
