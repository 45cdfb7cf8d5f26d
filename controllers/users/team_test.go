package users

import (
	"testing"

	"github.com/BronksDEV/luxbrasil-sub000/models"

	"gorm.io/gorm"
)

func TestConfirmReferralCreditsOnce(t *testing.T) {
	db := openTestDB(t)

	referrer := models.User{Name: "Ana", Number: "81234567", Password: "x", InviteCode: "INVANA01"}
	db.Create(&referrer)
	referred := models.User{Name: "Bo", Number: "82223334", Password: "x", InviteCode: "INVBO001", InvitedBy: &referrer.ID}
	db.Create(&referred)
	db.Create(&models.Referral{ReferrerID: referrer.ID, ReferredID: referred.ID})
	db.Create(&models.Setting{ID: 1, Name: "LuxWheel", ReferralSpins: 3})

	// The confirmation runs on every spin; only the first one may pay.
	var confirmations int
	for i := 0; i < 3; i++ {
		err := db.Transaction(func(tx *gorm.DB) error {
			did, err := confirmReferral(tx, referred.ID)
			if did {
				confirmations++
			}
			return err
		})
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if confirmations != 1 {
		t.Fatalf("expected exactly 1 confirmation, got %d", confirmations)
	}

	var got models.User
	db.First(&got, referrer.ID)
	if got.SpinsRemaining != 3 {
		t.Fatalf("referrer must be credited once: spins=%d", got.SpinsRemaining)
	}
	if got.InviteCount != 1 || got.InviteEarnings != 3 {
		t.Fatalf("invite counters must move once: count=%d earnings=%d", got.InviteCount, got.InviteEarnings)
	}

	var journalRows int64
	db.Model(&models.LedgerEntry{}).Where("user_id = ?", referrer.ID).Count(&journalRows)
	if journalRows != 1 {
		t.Fatalf("expected 1 journal row for the referrer, got %d", journalRows)
	}

	var edge models.Referral
	db.Where("referred_id = ?", referred.ID).First(&edge)
	if edge.ConfirmedAt == nil {
		t.Fatal("edge must be confirmed")
	}
}

func TestConfirmReferralNoEdge(t *testing.T) {
	db := openTestDB(t)

	organic := models.User{Name: "Cai", Number: "83334445", Password: "x", InviteCode: "INVCAI01"}
	db.Create(&organic)

	did, err := confirmReferral(db, organic.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if did {
		t.Fatal("a user without an inbound edge must not confirm anything")
	}
}
