package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	tests := []struct {
		name    string
		entity  string
		errs    []string
		wantMsg string
	}{
		{
			name:    "single error",
			entity:  "scenario",
			errs:    []string{"seed must be set"},
			wantMsg: "validation error for scenario: seed must be set",
		},
		{
			name:    "multiple errors",
			entity:  "district",
			errs:    []string{"missing name", "negative lean"},
			wantMsg: "validation errors for district: [missing name negative lean]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := NewValidationError(tt.entity)
			assert.False(t, ve.HasErrors())
			for _, msg := range tt.errs {
				ve.AddError(msg)
			}
			assert.True(t, ve.HasErrors())
			assert.Equal(t, tt.wantMsg, ve.Error())
		})
	}
}
