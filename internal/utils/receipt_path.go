package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/Omniportal2025/omniportal-sub001/internal/apperrors"
	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
)

// AllowedReceiptExtensions lists the accepted receipt file types, lower case.
var AllowedReceiptExtensions = []string{"jpg", "jpeg", "png", "pdf"}

// suffixBytes yields a 12-character hex suffix.
const suffixBytes = 6

// GenerateReceiptSuffix returns a cryptographically random hex string that keeps
// two receipts for the same payer, unit and date from colliding.
func GenerateReceiptSuffix() (string, error) {
	b := make([]byte, suffixBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// ReceiptExtension returns the lower-cased extension of filename, or a
// validation error when it is not an accepted receipt type.
func ReceiptExtension(filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if ext == "" || !slices.Contains(AllowedReceiptExtensions, ext) {
		return "", apperrors.NewValidationFailedError(
			fmt.Sprintf("receipt must be one of %s", strings.Join(AllowedReceiptExtensions, ", ")))
	}
	return ext, nil
}

// SanitizeSegment makes a free-text value safe to use as one path segment.
// Separators and dot-only names are replaced so a payer or project name can
// never escape its directory.
func SanitizeSegment(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("/", "_", "\\", "_").Replace(s)
	if s == "" || strings.Trim(s, ".") == "" {
		return "_"
	}
	return s
}

// PayerReceiptPath builds {project}/{payer}/{paymentDate}_{blockLot}_{suffix}.{ext}.
func PayerReceiptPath(p domain.Payment, suffix, ext string) string {
	return receiptPath(p, "", suffix, ext)
}

// AckReceiptPath builds {project}/{payer}/ack_{paymentDate}_{blockLot}_{suffix}.{ext}.
func AckReceiptPath(p domain.Payment, suffix, ext string) string {
	return receiptPath(p, "ack_", suffix, ext)
}

func receiptPath(p domain.Payment, prefix, suffix, ext string) string {
	name := fmt.Sprintf("%s%s_%s_%s.%s", prefix, p.PaymentDate.Format(domain.PaymentDateLayout), p.BlockLot(), suffix, ext)
	return path.Join(SanitizeSegment(p.Project), SanitizeSegment(p.PayerName), SanitizeSegment(name))
}

// ParsePaymentDate parses a YYYY-MM-DD date in UTC.
func ParsePaymentDate(s string) (time.Time, error) {
	t, err := time.Parse(domain.PaymentDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, apperrors.NewValidationFailedError("date must be in YYYY-MM-DD format")
	}
	return t, nil
}
