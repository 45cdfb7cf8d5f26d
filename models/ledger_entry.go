package models

import "time"

// LedgerEntry is the journal row written for every balance mutation. The
// authoritative balances live on the users row; the journal exists for
// audit and history display.
type LedgerEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Field     string    `gorm:"type:enum('spins','currency','xp');not null" json:"field"`
	Delta     int64     `gorm:"not null" json:"delta"`
	Flow      string    `gorm:"type:enum('credit','debit');not null" json:"flow"`
	OrderID   string    `gorm:"type:varchar(191);not null;uniqueIndex" json:"order_id"`
	Reason    *string   `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
