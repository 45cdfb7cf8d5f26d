package models

import "time"

// Referral is the directional invite edge, inserted at registration.
// ConfirmedAt is set exactly once, on the referred user's first spin; the
// conditional update on the NULL column is what makes crediting idempotent.
type Referral struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ReferrerID  uint       `gorm:"not null;index" json:"referrer_id"`
	ReferredID  uint       `gorm:"not null;uniqueIndex" json:"referred_id"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (Referral) TableName() string {
	return "referrals"
}
