package campus

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/campus/core"
)

func newValidator() *validator.Validate {
	validate, translator := core.NewValidator()
	InitValidators(validate, translator)
	return validate
}

func TestLecturer_AddOfficeHour(t *testing.T) {
	lec := Lecturer{OfficeHours: []OfficeHour{{Day: "Monday", StartTime: "09:00", EndTime: "11:00"}}}

	err := lec.AddOfficeHour(OfficeHour{Day: "Monday", StartTime: "14:00", EndTime: "15:00"})
	assert.Equal(t, ErrDuplicateWeekday, err)
	assert.Len(t, lec.OfficeHours, 1)

	err = lec.AddOfficeHour(OfficeHour{Day: "Tuesday", StartTime: "14:00", EndTime: "15:00"})
	assert.NoError(t, err)
	assert.Len(t, lec.OfficeHours, 2)
}

func TestLecturerValidation(t *testing.T) {
	validate := newValidator()
	base := func(ohs ...OfficeHour) Lecturer {
		return Lecturer{UserID: "u1", DepartmentID: "d1", Experience: 3, OfficeHours: ohs}
	}

	tests := []struct {
		name      string
		lec       Lecturer
		wantField string
	}{
		{name: "no office hours", lec: base()},
		{
			name: "distinct days",
			lec: base(
				OfficeHour{Day: "Monday", StartTime: "09:00", EndTime: "10:00"},
				OfficeHour{Day: "Tuesday", StartTime: "09:00", EndTime: "10:00"},
			),
		},
		{
			name: "duplicate day",
			lec: base(
				OfficeHour{Day: "Monday", StartTime: "09:00", EndTime: "10:00"},
				OfficeHour{Day: "Monday", StartTime: "13:00", EndTime: "14:00"},
			),
			wantField: "officeHours",
		},
		{name: "bad day", lec: base(OfficeHour{Day: "Funday", StartTime: "09:00", EndTime: "10:00"}), wantField: "day"},
		{name: "bad clock", lec: base(OfficeHour{Day: "Monday", StartTime: "9am", EndTime: "10:00"}), wantField: "startTime"},
		{name: "ends before start", lec: base(OfficeHour{Day: "Monday", StartTime: "11:00", EndTime: "10:00"}), wantField: "endTime"},
		{name: "negative experience", lec: Lecturer{UserID: "u1", DepartmentID: "d1", Experience: -1}, wantField: "experience"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.lec)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			vErrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok, "want validator.ValidationErrors, got %T", err)
			assert.Equal(t, tt.wantField, vErrs[0].Field())
		})
	}
}

func TestStudentValidation(t *testing.T) {
	validate := newValidator()
	valid := Student{UserID: "u1", IntakeCourseID: "ic1", Status: StudentEnrolled, CGPA: 3.2}

	assert.NoError(t, validate.Struct(valid))

	tooHigh := valid
	tooHigh.CGPA = 4.01
	assert.Error(t, validate.Struct(tooHigh))

	badStatus := valid
	badStatus.Status = "expelled"
	assert.Error(t, validate.Struct(badStatus))

	cgpa := -1.0
	assert.Error(t, validate.Struct(StudentUpdate{CGPA: &cgpa}))
	assert.NoError(t, validate.Struct(StudentUpdate{}))
}

func TestResultAndSchoolValidation(t *testing.T) {
	validate := newValidator()

	assert.NoError(t, validate.Struct(Result{StudentID: "s1", ModuleID: "m1", Grade: GradeB, CreditHours: 3}))
	assert.Error(t, validate.Struct(Result{StudentID: "s1", ModuleID: "m1", Grade: "E", CreditHours: 3}))

	assert.NoError(t, validate.Struct(School{Name: "Lycée", Status: SchoolActive}))
	assert.Error(t, validate.Struct(School{Name: "Lycée", Status: "Closed"}))
}

func TestBookingValidation(t *testing.T) {
	validate, translator := core.NewValidator()
	InitValidators(validate, translator)

	assert.NoError(t, validate.Struct(Booking{StudentID: "st1", RouteID: "65f1c0ffee", Status: BookingPending}))

	err := validate.Struct(Booking{StudentID: "st1", RouteID: "../route", Status: BookingPending})
	require.Error(t, err)
	assert.Equal(t, "routeId: must be a document identifier", core.NewFieldsValidationError(err, translator).Error())
}
