package models

import "time"

const (
	PrizePhysical = "physical"
	PrizeMoney    = "money"
	PrizeSpins    = "spins"
)

type Prize struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Color       string    `gorm:"type:varchar(20);not null;default:'#FFD700'" json:"color"`
	Probability float64   `gorm:"type:decimal(10,4);not null" json:"probability"`
	Type        string    `gorm:"type:enum('physical','money','spins');not null" json:"type"`
	Value       int64     `gorm:"not null;default:0" json:"value"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (Prize) TableName() string {
	return "prizes"
}
