package waitlist

import (
	"strings"

	"github.com/bidoro/waitlist-api/internal/models"
)

// IsValidEmail is deliberately loose: an address only has to contain "@".
func IsValidEmail(email string) bool {
	return strings.Contains(email, "@")
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeName returns nil for missing or blank names.
func NormalizeName(name *string) *string {
	if name == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// NormalizeWhatsappNumber keeps ASCII digits and a "+" in first position.
// "+234 801 234 5678" -> "+2348012345678". Input without any digit yields nil.
func NormalizeWhatsappNumber(number *string) *string {
	if number == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*number)

	var b strings.Builder
	b.Grow(len(trimmed))
	for i, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if strings.TrimPrefix(cleaned, "+") == "" {
		return nil
	}
	return &cleaned
}

func NormalizeReferralSource(source *string) string {
	if source == nil || *source == "" {
		return models.DefaultReferralSource
	}
	return *source
}
