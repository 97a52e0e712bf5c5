package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidator_translations(t *testing.T) {
	validate, translator := NewValidator()

	type sample struct {
		Name  string `json:"name" validate:"required"`
		Start string `json:"startTime" validate:"omitempty,clock"`
		Ref   string `json:"refId" validate:"omitempty,docid"`
	}

	tests := []struct {
		name    string
		in      sample
		wantErr string
	}{
		{name: "valid", in: sample{Name: "x", Start: "09:30", Ref: "65f1c0ffee"}},
		{name: "required", in: sample{}, wantErr: "name: this field is required"},
		{name: "clock", in: sample{Name: "x", Start: "25:00"}, wantErr: "startTime: must be a time of day formatted as HH:MM"},
		{name: "docid", in: sample{Name: "x", Ref: "a/b"}, wantErr: "refId: must be a document identifier"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.EqualError(t, NewFieldsValidationError(err, translator), tt.wantErr)
		})
	}
}
