package models

import "time"

const (
	HistoryPending   = "pending"
	HistoryRequested = "requested"
	HistoryRedeemed  = "redeemed"
)

// SpinHistory records every prize win (wheel or store). Physical and money
// wins start pending and travel the redemption workflow; spins-type wins are
// credited straight to the balance and inserted already redeemed so they
// never show up in the redemption queue.
type SpinHistory struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	PrizeID        uint      `gorm:"not null;index" json:"prize_id"`
	PrizeName      string    `gorm:"type:varchar(100);not null" json:"prize_name"`
	PrizeType      string    `gorm:"type:enum('physical','money','spins');not null" json:"prize_type"`
	PrizeValue     int64     `gorm:"not null;default:0" json:"prize_value"`
	Status         string    `gorm:"type:enum('pending','requested','redeemed');not null;default:'pending'" json:"status"`
	RedemptionCode string    `gorm:"type:varchar(40);uniqueIndex;not null" json:"redemption_code"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (SpinHistory) TableName() string {
	return "spin_histories"
}
