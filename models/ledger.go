package models

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"gorm.io/gorm"
)

const (
	FieldSpins    = "spins"
	FieldCurrency = "currency"
	FieldXP       = "xp"
)

// balanceColumn maps a ledger field to its users-table column.
func balanceColumn(field string) (string, bool) {
	switch field {
	case FieldSpins:
		return "spins_remaining", true
	case FieldCurrency:
		return "currency_balance", true
	case FieldXP:
		return "xp", true
	}
	return "", false
}

// Credit atomically adds amount to the given balance field and writes a
// journal row. amount must be positive.
func Credit(tx *gorm.DB, userID uint, field string, amount int64, reason string) error {
	if amount <= 0 {
		return fmt.Errorf("credit amount must be positive, got %d", amount)
	}
	col, ok := balanceColumn(field)
	if !ok {
		return fmt.Errorf("unknown balance field %q", field)
	}
	res := tx.Model(&User{}).
		Where("id = ?", userID).
		UpdateColumn(col, gorm.Expr(col+" + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return journal(tx, userID, field, amount, "credit", reason)
}

// Debit atomically subtracts amount from the given balance field with a floor
// at zero. A debit that would go negative fails with ErrInsufficientBalance
// (or ErrInsufficientSpins for the spins field) and mutates nothing.
func Debit(tx *gorm.DB, userID uint, field string, amount int64, reason string) error {
	if amount <= 0 {
		return fmt.Errorf("debit amount must be positive, got %d", amount)
	}
	col, ok := balanceColumn(field)
	if !ok {
		return fmt.Errorf("unknown balance field %q", field)
	}
	// Conditional update is the double-spend guard: two concurrent debits of
	// the last credit race on the WHERE clause, only one row update wins.
	res := tx.Model(&User{}).
		Where("id = ? AND "+col+" >= ?", userID, amount).
		UpdateColumn(col, gorm.Expr(col+" - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if field == FieldSpins {
			return ErrInsufficientSpins
		}
		return ErrInsufficientBalance
	}
	return journal(tx, userID, field, amount, "debit", reason)
}

func journal(tx *gorm.DB, userID uint, field string, amount int64, flow, reason string) error {
	entry := LedgerEntry{
		UserID:  userID,
		Field:   field,
		Delta:   amount,
		Flow:    flow,
		OrderID: newOrderID(userID),
	}
	if reason != "" {
		entry.Reason = &reason
	}
	return tx.Create(&entry).Error
}

var (
	orderMu   sync.Mutex
	orderRand = rand.New(rand.NewSource(time.Now().UnixNano()))
)

func newOrderID(userID uint) string {
	orderMu.Lock()
	defer orderMu.Unlock()

	nanoPart := time.Now().UnixNano() % 1000000
	randPart := orderRand.Intn(900) + 100

	return fmt.Sprintf("LUX-%06d%03d%d", nanoPart, randPart, userID)
}
