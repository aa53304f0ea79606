package services

import (
	"testing"

	"github.com/Omniportal2025/omniportal-sub001/internal/apperrors"
	"github.com/Omniportal2025/omniportal-sub001/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountTags(t *testing.T) {
	tests := []struct {
		tag   string
		value string
		valid bool
	}{
		{"posdecimal", "15000.50", true},
		{"posdecimal", "16000", true},
		{"posdecimal", "100.500", true},
		{"posdecimal", " 42.10 ", true},
		{"posdecimal", "0.001", false},
		{"posdecimal", "100.005", false},
		{"posdecimal", "0", false},
		{"posdecimal", "-5", false},
		{"posdecimal", "ten", false},
		{"nonnegdecimal", "0", true},
		{"nonnegdecimal", "250.75", true},
		{"nonnegdecimal", "0.125", false},
		{"nonnegdecimal", "-0.01", false},
		{"emptyornonneg", "", true},
		{"emptyornonneg", "   ", true},
		{"emptyornonneg", "100", true},
		{"emptyornonneg", "12.255", false},
		{"emptyornonneg", "-1", false},
		{"emptyornonneg", "n/a", false},
	}

	for _, tt := range tests {
		t.Run(tt.tag+"/"+tt.value, func(t *testing.T) {
			err := validate.Var(tt.value, tt.tag)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNewValidator_RegistersCustomTags(t *testing.T) {
	assert.NotPanics(t, func() { newValidator() })
}

func TestValidateStruct_PenaltyMessages(t *testing.T) {
	cleared := ""
	require.NoError(t, validateStruct(dto.UpdatePaymentRequest{Penalty: &cleared}), "an empty penalty clears it")
	require.NoError(t, validateStruct(dto.UpdatePaymentRequest{}), "an absent penalty is left alone")

	negative := "-5"
	err := validateStruct(dto.UpdatePaymentRequest{Penalty: &negative})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.EqualError(t, err, "Penalty must be a non-negative amount with at most 2 decimal places")

	subCent := "0.001"
	err = validateStruct(dto.UpdatePaymentRequest{Amount: &subCent})
	assert.EqualError(t, err, "Amount must be a positive amount with at most 2 decimal places")
}
