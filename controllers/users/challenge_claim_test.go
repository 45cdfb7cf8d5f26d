package users

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BronksDEV/luxbrasil-sub000/models"
)

func TestChallengeClaimPaysOnce(t *testing.T) {
	db := openTestDB(t)

	user := models.User{Name: "Ana", Number: "81234567", Password: "x", InviteCode: "INVANA01"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	ch := models.Challenge{
		Title:        "Spin the wheel 5 times",
		Type:         models.ChallengePermanent,
		Verification: models.VerifyAutomatic,
		Goal:         5,
		RewardSpins:  3,
		RewardXP:     50,
		Active:       true,
	}
	if err := db.Create(&ch).Error; err != nil {
		t.Fatalf("create challenge: %v", err)
	}
	uc := models.UserChallenge{
		UserID:       user.ID,
		ChallengeID:  ch.ID,
		Status:       models.ChallengeCompleted,
		CurrentValue: 5,
		Progress:     100,
	}
	if err := db.Create(&uc).Error; err != nil {
		t.Fatalf("create user challenge: %v", err)
	}

	vars := map[string]string{"id": "1"}

	rec := httptest.NewRecorder()
	ChallengeClaimHandler(rec, authedRequest(http.MethodPost, "/v1/users/challenges/1/claim", user.ID, nil, vars))
	if rec.Code != http.StatusOK {
		t.Fatalf("first claim: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	ChallengeClaimHandler(rec, authedRequest(http.MethodPost, "/v1/users/challenges/1/claim", user.ID, nil, vars))
	if rec.Code != http.StatusConflict {
		t.Fatalf("second claim: expected 409, got %d (%s)", rec.Code, rec.Body.String())
	}

	var got models.User
	if err := db.First(&got, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if got.SpinsRemaining != 3 {
		t.Fatalf("expected reward paid exactly once: spins=%d", got.SpinsRemaining)
	}
	if got.XP != 50 {
		t.Fatalf("expected reward paid exactly once: xp=%d", got.XP)
	}

	var journalRows int64
	db.Model(&models.LedgerEntry{}).Where("user_id = ?", user.ID).Count(&journalRows)
	if journalRows != 2 {
		t.Fatalf("expected 2 journal rows (spins + xp), got %d", journalRows)
	}

	var gotUC models.UserChallenge
	db.First(&gotUC, uc.ID)
	if gotUC.Status != models.ChallengeClaimed {
		t.Fatalf("expected claimed status, got %s", gotUC.Status)
	}
}

func TestChallengeClaimRequiresCompleted(t *testing.T) {
	db := openTestDB(t)

	user := models.User{Name: "Bo", Number: "82223334", Password: "x", InviteCode: "INVBO001"}
	db.Create(&user)
	ch := models.Challenge{
		Title:        "Invite a friend",
		Type:         models.ChallengePermanent,
		Verification: models.VerifyAutomatic,
		Goal:         1,
		RewardSpins:  1,
		Active:       true,
	}
	db.Create(&ch)
	db.Create(&models.UserChallenge{UserID: user.ID, ChallengeID: ch.ID, Status: models.ChallengePending})

	rec := httptest.NewRecorder()
	ChallengeClaimHandler(rec, authedRequest(http.MethodPost, "/v1/users/challenges/1/claim", user.ID, nil, map[string]string{"id": "1"}))
	if rec.Code != http.StatusConflict {
		t.Fatalf("claiming a pending challenge: expected 409, got %d", rec.Code)
	}

	var got models.User
	db.First(&got, user.ID)
	if got.SpinsRemaining != 0 {
		t.Fatalf("pending claim must pay nothing, spins=%d", got.SpinsRemaining)
	}
}
