package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultReferralSource is stored when a submission does not say where it came from.
const DefaultReferralSource = "website"

type WaitlistEntry struct {
	ID             string    `gorm:"type:text;primaryKey" json:"id"`
	Email          string    `gorm:"not null;uniqueIndex:idx_waitlist_email" json:"email"`
	Name           *string   `json:"name"`
	WhatsappNumber *string   `gorm:"column:whatsapp_number" json:"whatsapp_number"`
	ReferralSource string    `gorm:"not null;default:website" json:"referral_source"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (WaitlistEntry) TableName() string {
	return "waitlist"
}

func (e *WaitlistEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.ReferralSource == "" {
		e.ReferralSource = DefaultReferralSource
	}
	return nil
}
