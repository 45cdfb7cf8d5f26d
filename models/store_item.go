package models

import "time"

// StoreItem is purchasable with LuxCoins. spins-type items credit the spin
// balance directly; physical items enter the same redemption workflow as
// wheel wins.
type StoreItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Price     int64     `gorm:"not null" json:"price"`
	Type      string    `gorm:"type:enum('physical','spins');not null" json:"type"`
	Value     int64     `gorm:"not null;default:0" json:"value"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (StoreItem) TableName() string {
	return "store_items"
}
