package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func ledgerDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(enumAsTextDialector{sqlite.Open(":memory:")}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&User{}, &LedgerEntry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, spins, currency int64) *User {
	t.Helper()
	u := User{
		Name:            "Ana",
		Number:          "81234567",
		Password:        "x",
		InviteCode:      "INVANA01",
		SpinsRemaining:  spins,
		CurrencyBalance: currency,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &u
}

func TestCreditUpdatesBalanceAndJournals(t *testing.T) {
	db := ledgerDB(t)
	u := seedUser(t, db, 0, 0)

	if err := Credit(db, u.ID, FieldSpins, 5, "Signup bonus"); err != nil {
		t.Fatalf("credit: %v", err)
	}

	var got User
	if err := db.First(&got, u.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.SpinsRemaining != 5 {
		t.Fatalf("expected 5 spins, got %d", got.SpinsRemaining)
	}

	var entries []LedgerEntry
	if err := db.Where("user_id = ?", u.ID).Find(&entries).Error; err != nil {
		t.Fatalf("load journal: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 journal row, got %d", len(entries))
	}
	e := entries[0]
	if e.Field != FieldSpins || e.Flow != "credit" || e.Delta != 5 {
		t.Fatalf("unexpected journal row: %+v", e)
	}
	if !strings.HasPrefix(e.OrderID, "LUX-") {
		t.Fatalf("unexpected order id %q", e.OrderID)
	}
	if e.Reason == nil || *e.Reason != "Signup bonus" {
		t.Fatalf("reason not recorded: %+v", e.Reason)
	}
}

func TestDebitFloorsAtZero(t *testing.T) {
	db := ledgerDB(t)
	u := seedUser(t, db, 3, 10)

	err := Debit(db, u.ID, FieldSpins, 5, "Wheel spin")
	if !errors.Is(err, ErrInsufficientSpins) {
		t.Fatalf("expected ErrInsufficientSpins, got %v", err)
	}
	err = Debit(db, u.ID, FieldCurrency, 11, "Store purchase")
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	// A rejected debit mutates nothing: balances intact, no journal rows.
	var got User
	if err := db.First(&got, u.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.SpinsRemaining != 3 || got.CurrencyBalance != 10 {
		t.Fatalf("balances changed on rejected debit: spins=%d currency=%d", got.SpinsRemaining, got.CurrencyBalance)
	}
	var count int64
	db.Model(&LedgerEntry{}).Where("user_id = ?", u.ID).Count(&count)
	if count != 0 {
		t.Fatalf("rejected debit wrote %d journal rows", count)
	}
}

func TestDebitExactBalance(t *testing.T) {
	db := ledgerDB(t)
	u := seedUser(t, db, 2, 0)

	if err := Debit(db, u.ID, FieldSpins, 2, "Wheel spin"); err != nil {
		t.Fatalf("debit: %v", err)
	}
	var got User
	db.First(&got, u.ID)
	if got.SpinsRemaining != 0 {
		t.Fatalf("expected 0 spins, got %d", got.SpinsRemaining)
	}
	// The floor is exclusive: the next debit fails.
	if err := Debit(db, u.ID, FieldSpins, 1, "Wheel spin"); !errors.Is(err, ErrInsufficientSpins) {
		t.Fatalf("expected ErrInsufficientSpins at zero, got %v", err)
	}
}

func TestBalanceMatchesJournal(t *testing.T) {
	db := ledgerDB(t)
	u := seedUser(t, db, 0, 0)

	steps := []struct {
		credit bool
		amount int64
	}{
		{true, 10}, {false, 4}, {true, 3}, {false, 1}, {false, 8},
	}
	for _, s := range steps {
		var err error
		if s.credit {
			err = Credit(db, u.ID, FieldCurrency, s.amount, "t")
		} else {
			err = Debit(db, u.ID, FieldCurrency, s.amount, "t")
		}
		if err != nil && !errors.Is(err, ErrInsufficientBalance) {
			t.Fatalf("step %+v: %v", s, err)
		}
	}

	// Every unit on the balance is accounted for by a journal row.
	var entries []LedgerEntry
	db.Where("user_id = ? AND field = ?", u.ID, FieldCurrency).Find(&entries)
	var net int64
	for _, e := range entries {
		if e.Flow == "credit" {
			net += e.Delta
		} else {
			net -= e.Delta
		}
	}
	var got User
	db.First(&got, u.ID)
	if got.CurrencyBalance != net {
		t.Fatalf("balance %d does not match journal net %d", got.CurrencyBalance, net)
	}
	if got.CurrencyBalance != 8 {
		t.Fatalf("expected 8 after replay, got %d", got.CurrencyBalance)
	}
}

func TestCreditUnknownUser(t *testing.T) {
	db := ledgerDB(t)
	if err := Credit(db, 999, FieldSpins, 1, "t"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLedgerRejectsNonPositiveAmounts(t *testing.T) {
	db := ledgerDB(t)
	u := seedUser(t, db, 1, 1)
	if err := Credit(db, u.ID, FieldSpins, 0, "t"); err == nil {
		t.Fatal("zero credit must fail")
	}
	if err := Debit(db, u.ID, FieldSpins, -1, "t"); err == nil {
		t.Fatal("negative debit must fail")
	}
}
