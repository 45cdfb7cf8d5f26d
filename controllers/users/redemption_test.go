package users

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BronksDEV/luxbrasil-sub000/models"
)

func TestRequestRedemptionIdempotent(t *testing.T) {
	db := openTestDB(t)

	user := models.User{Name: "Ana", Number: "81234567", Password: "x", InviteCode: "INVANA01"}
	db.Create(&user)
	win := models.SpinHistory{
		UserID:         user.ID,
		PrizeID:        1,
		PrizeName:      "Headphones",
		PrizeType:      models.PrizePhysical,
		Status:         models.HistoryPending,
		RedemptionCode: "code-aaa",
	}
	if err := db.Create(&win).Error; err != nil {
		t.Fatalf("create win: %v", err)
	}

	vars := map[string]string{"code": "code-aaa"}

	rec := httptest.NewRecorder()
	RequestRedemptionHandler(rec, authedRequest(http.MethodPost, "/v1/users/redemptions/code-aaa/request", user.ID, nil, vars))
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	RequestRedemptionHandler(rec, authedRequest(http.MethodPost, "/v1/users/redemptions/code-aaa/request", user.ID, nil, vars))
	if rec.Code != http.StatusOK {
		t.Fatalf("double request must be a no-op success, got %d", rec.Code)
	}

	var got models.SpinHistory
	db.First(&got, win.ID)
	if got.Status != models.HistoryRequested {
		t.Fatalf("expected requested, got %s", got.Status)
	}
}

func TestRedeemedNeverReverts(t *testing.T) {
	db := openTestDB(t)

	user := models.User{Name: "Bo", Number: "82223334", Password: "x", InviteCode: "INVBO001"}
	db.Create(&user)
	win := models.SpinHistory{
		UserID:         user.ID,
		PrizeID:        2,
		PrizeName:      "R$100",
		PrizeType:      models.PrizeMoney,
		PrizeValue:     100,
		Status:         models.HistoryRedeemed,
		RedemptionCode: "code-bbb",
	}
	db.Create(&win)

	rec := httptest.NewRecorder()
	RequestRedemptionHandler(rec, authedRequest(http.MethodPost, "/v1/users/redemptions/code-bbb/request", user.ID, nil, map[string]string{"code": "code-bbb"}))
	if rec.Code != http.StatusConflict {
		t.Fatalf("re-requesting a redeemed win: expected 409, got %d", rec.Code)
	}

	var got models.SpinHistory
	db.First(&got, win.ID)
	if got.Status != models.HistoryRedeemed {
		t.Fatalf("redeemed must be terminal, got %s", got.Status)
	}
}
