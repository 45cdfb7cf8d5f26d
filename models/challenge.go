package models

import "time"

const (
	ChallengeDaily     = "daily"
	ChallengeWeekly    = "weekly"
	ChallengeMonthly   = "monthly"
	ChallengePermanent = "permanent"

	VerifyAutomatic = "automatic"
	VerifyManual    = "manual"
)

type Challenge struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"type:varchar(100);not null" json:"title"`
	Type         string    `gorm:"type:enum('daily','weekly','monthly','permanent');not null;default:'permanent'" json:"type"`
	Category     string    `gorm:"type:varchar(50);not null;default:'general'" json:"category"`
	Verification string    `gorm:"type:enum('automatic','manual');not null;default:'automatic'" json:"verification"`
	Goal         int64     `gorm:"not null;default:1" json:"goal"`
	RewardSpins  int64     `gorm:"not null;default:0" json:"reward_spins"`
	RewardMoney  int64     `gorm:"not null;default:0" json:"reward_money"`
	RewardXP     int64     `gorm:"column:reward_xp;not null;default:0" json:"reward_xp"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

func (Challenge) TableName() string {
	return "challenges"
}
