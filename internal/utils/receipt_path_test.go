package utils

import (
	"testing"
	"time"

	"github.com/Omniportal2025/omniportal-sub001/internal/apperrors"
	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     string
		wantErr  bool
	}{
		{"receipt.jpg", "jpg", false},
		{"SCAN.JPEG", "jpeg", false},
		{"proof.Png", "png", false},
		{"bank.slip.pdf", "pdf", false},
		{"notes.txt", "", true},
		{"noextension", "", true},
		{"archive.pdf.exe", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := ReceiptExtension(tt.filename)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReceiptPaths(t *testing.T) {
	p := domain.Payment{
		PayerName:   "Maria Santos",
		Project:     "Palm Grove",
		Block:       "3",
		Lot:         "12",
		PaymentDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, "Palm Grove/Maria Santos/2024-03-05_B3-L12_abc123.pdf", PayerReceiptPath(p, "abc123", "pdf"))
	assert.Equal(t, "Palm Grove/Maria Santos/ack_2024-03-05_B3-L12_abc123.png", AckReceiptPath(p, "abc123", "png"))
}

func TestReceiptPaths_SanitizeSegments(t *testing.T) {
	p := domain.Payment{
		PayerName:   "../../etc",
		Project:     "North/South",
		Block:       "1",
		Lot:         "2",
		PaymentDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}

	got := PayerReceiptPath(p, "ff", "jpg")
	assert.Equal(t, "North_South/.._.._etc/2024-01-15_B1-L2_ff.jpg", got)
	assert.Equal(t, "_", SanitizeSegment(".."))
	assert.Equal(t, "_", SanitizeSegment("   "))
}

func TestGenerateReceiptSuffix(t *testing.T) {
	a, err := GenerateReceiptSuffix()
	require.NoError(t, err)
	b, err := GenerateReceiptSuffix()
	require.NoError(t, err)

	assert.Len(t, a, 12)
	assert.NotEqual(t, a, b, "Suffixes should not repeat")
}

func TestParsePaymentDate(t *testing.T) {
	d, err := ParsePaymentDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	_, err = ParsePaymentDate("29/02/2024")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
