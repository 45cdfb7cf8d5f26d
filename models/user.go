package models

import "time"

type User struct {
	ID                     uint       `gorm:"primaryKey" json:"id"`
	Name                   string     `gorm:"size:100;not null" json:"name"`
	Number                 string     `gorm:"size:20;uniqueIndex;not null" json:"number"`
	Password               string     `gorm:"size:255;not null" json:"-"`
	InviteCode             string     `gorm:"size:20;uniqueIndex;not null" json:"invite_code"`
	InvitedBy              *uint      `gorm:"column:invited_by" json:"invited_by"`
	SpinsRemaining         int64      `gorm:"not null;default:0" json:"spins_remaining"`
	CurrencyBalance        int64      `gorm:"not null;default:0" json:"currency_balance"`
	XP                     int64      `gorm:"column:xp;not null;default:0" json:"xp"`
	InviteCount            int64      `gorm:"not null;default:0" json:"invite_count"`
	InviteEarnings         int64      `gorm:"not null;default:0" json:"invite_earnings"`
	IsBanned               bool       `gorm:"not null;default:false" json:"is_banned"`
	RouletteTimerExpiresAt *time.Time `json:"roulette_timer_expires_at"`
	CreatedAt              time.Time  `json:"-"`
	UpdatedAt              time.Time  `json:"-"`
}

func (User) TableName() string {
	return "users"
}
