package waitlist

import (
	"github.com/bidoro/waitlist-api/internal/models"
	"github.com/bidoro/waitlist-api/pkg/constants"
)

const (
	MsgInvalidEmail   = "Valid email is required"
	MsgAlreadyJoined  = "You are already on the waitlist!"
	MsgStorageFailure = "Something went wrong. Please try again."
	MsgJoined         = "Successfully joined waitlist! Check your email for confirmation."
)

// JoinWaitlistRequest mirrors the landing page payload, hence the camelCase keys.
type JoinWaitlistRequest struct {
	Email          string  `json:"email" binding:"required,contains=@"`
	Name           *string `json:"name"`
	WhatsappNumber *string `json:"whatsappNumber"`
	ReferralSource *string `json:"referralSource"`
}

type WaitlistEntryResponse struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	Name           *string `json:"name"`
	WhatsappNumber *string `json:"whatsapp_number"`
	ReferralSource string  `json:"referral_source"`
	CreatedAt      string  `json:"created_at"`
}

// ========================================
// Mappers
// ========================================

// ToWaitlistEntryModel applies every normalization rule; the result is what gets stored.
func ToWaitlistEntryModel(req *JoinWaitlistRequest) *models.WaitlistEntry {
	if req == nil {
		return nil
	}
	return &models.WaitlistEntry{
		Email:          NormalizeEmail(req.Email),
		Name:           NormalizeName(req.Name),
		WhatsappNumber: NormalizeWhatsappNumber(req.WhatsappNumber),
		ReferralSource: NormalizeReferralSource(req.ReferralSource),
	}
}

func ToWaitlistEntryResponse(entry *models.WaitlistEntry) WaitlistEntryResponse {
	if entry == nil {
		return WaitlistEntryResponse{}
	}
	return WaitlistEntryResponse{
		ID:             entry.ID,
		Email:          entry.Email,
		Name:           entry.Name,
		WhatsappNumber: entry.WhatsappNumber,
		ReferralSource: entry.ReferralSource,
		CreatedAt:      entry.CreatedAt.Format(constants.RFC3339DateTimeFormat),
	}
}
