package models

import "time"

// Setting holds the admin-managed gameplay tunables. A single row is seeded
// at migration time; handlers read it per request instead of caching it in a
// process-wide variable.
type Setting struct {
	ID                 int       `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"type:varchar(100);not null;default:'LuxWheel'" json:"name"`
	SignupBonusSpins   int64     `gorm:"not null;default:1" json:"signup_bonus_spins"`
	ReferralSpins      int64     `gorm:"not null;default:3" json:"referral_spins"`
	DailyFreeSpins     int64     `gorm:"not null;default:1" json:"daily_free_spins"`
	RouletteTimerHours int       `gorm:"not null;default:24" json:"roulette_timer_hours"`
	Maintenance        bool      `gorm:"not null;default:false" json:"maintenance"`
	ClosedRegister     bool      `gorm:"not null;default:false" json:"closed_register"`
	CreatedAt          time.Time `json:"-"`
	UpdatedAt          time.Time `json:"-"`
}

func (Setting) TableName() string {
	return "settings"
}
