package users

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BronksDEV/luxbrasil-sub000/database"
	"github.com/BronksDEV/luxbrasil-sub000/models"
	"github.com/BronksDEV/luxbrasil-sub000/utils"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB swaps the package-global handle for an in-memory database so
// handlers run against real SQL without a server.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(enumAsTextDialector{sqlite.Open(":memory:")}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Setting{}, &models.Prize{},
		&models.SpinHistory{}, &models.LedgerEntry{},
		&models.Challenge{}, &models.UserChallenge{}, &models.Referral{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

func authedRequest(method, target string, uid uint, body io.Reader, vars map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req = req.WithContext(context.WithValue(req.Context(), utils.UserIDKey, uid))
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}
