package admins

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BronksDEV/luxbrasil-sub000/database"
	"github.com/BronksDEV/luxbrasil-sub000/models"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(enumAsTextDialector{sqlite.Open(":memory:")}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.SpinHistory{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

func TestRefuseOnlyMovesRequested(t *testing.T) {
	db := openTestDB(t)

	requested := models.SpinHistory{
		UserID: 1, PrizeID: 1, PrizeName: "Headphones",
		PrizeType: models.PrizePhysical, Status: models.HistoryRequested,
		RedemptionCode: "code-req",
	}
	redeemed := models.SpinHistory{
		UserID: 1, PrizeID: 2, PrizeName: "R$100",
		PrizeType: models.PrizeMoney, Status: models.HistoryRedeemed,
		RedemptionCode: "code-done",
	}
	db.Create(&requested)
	db.Create(&redeemed)

	refuse := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/redemptions/"+id+"/refuse", nil)
		req = mux.SetURLVars(req, map[string]string{"id": id})
		rec := httptest.NewRecorder()
		RefuseRedemptionHandler(rec, req)
		return rec
	}

	if rec := refuse("1"); rec.Code != http.StatusOK {
		t.Fatalf("refusing a requested win: expected 200, got %d", rec.Code)
	}
	var got models.SpinHistory
	db.First(&got, requested.ID)
	if got.Status != models.HistoryPending {
		t.Fatalf("expected pending after refuse, got %s", got.Status)
	}

	// A fulfilled win is terminal; refusal must not pull it back.
	if rec := refuse("2"); rec.Code != http.StatusConflict {
		t.Fatalf("refusing a redeemed win: expected 409, got %d", rec.Code)
	}
	var gotRedeemed models.SpinHistory
	if err := db.First(&gotRedeemed, redeemed.ID).Error; err != nil {
		t.Fatalf("reload redeemed win: %v", err)
	}
	if gotRedeemed.Status != models.HistoryRedeemed {
		t.Fatalf("redeemed must be terminal, got %s", gotRedeemed.Status)
	}
}

func TestRedeemIsOneWay(t *testing.T) {
	db := openTestDB(t)

	win := models.SpinHistory{
		UserID: 7, PrizeID: 1, PrizeName: "Headphones",
		PrizeType: models.PrizePhysical, Status: models.HistoryRequested,
		RedemptionCode: "code-x",
	}
	db.Create(&win)

	redeem := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/redemptions/1/redeem", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "1"})
		rec := httptest.NewRecorder()
		RedeemRedemptionHandler(rec, req)
		return rec
	}

	if rec := redeem(); rec.Code != http.StatusOK {
		t.Fatalf("first redeem: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if rec := redeem(); rec.Code != http.StatusConflict {
		t.Fatalf("second redeem: expected 409, got %d", rec.Code)
	}
	var got models.SpinHistory
	db.First(&got, win.ID)
	if got.Status != models.HistoryRedeemed {
		t.Fatalf("expected redeemed, got %s", got.Status)
	}
}
