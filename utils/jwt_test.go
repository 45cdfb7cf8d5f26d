package utils

import (
	"testing"

	"github.com/BronksDEV/luxbrasil-sub000/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func tokenDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.RefreshToken{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestRefreshRotationIsAtomic(t *testing.T) {
	db := tokenDB(t)

	old, err := models.NewRefreshToken(7, 7)
	if err != nil {
		t.Fatalf("new token: %v", err)
	}
	if err := db.Create(old).Error; err != nil {
		t.Fatalf("create token: %v", err)
	}

	// Rotation revokes the old token and creates the new one in one
	// transaction; a rollback must leave neither half applied.
	tx := db.Begin()
	old.Revoked = true
	if err := tx.Save(old).Error; err != nil {
		t.Fatalf("revoke: %v", err)
	}
	newID, err := GenerateRefreshTokenTx(tx, 7)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if newID == "" {
		t.Fatal("expected a token id")
	}
	tx.Rollback()

	var count int64
	db.Model(&models.RefreshToken{}).Count(&count)
	if count != 1 {
		t.Fatalf("rolled-back rotation left %d tokens, expected 1", count)
	}
	var got models.RefreshToken
	if err := db.First(&got, "id = ?", old.ID).Error; err != nil {
		t.Fatalf("reload old token: %v", err)
	}
	if got.Revoked {
		t.Fatal("rolled-back rotation must leave the old token live")
	}

	// The committed rotation applies both halves.
	tx = db.Begin()
	old.Revoked = true
	if err := tx.Save(old).Error; err != nil {
		t.Fatalf("revoke: %v", err)
	}
	newID, err = GenerateRefreshTokenTx(tx, 7)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if err := tx.Commit().Error; err != nil {
		t.Fatalf("commit: %v", err)
	}

	db.Model(&models.RefreshToken{}).Count(&count)
	if count != 2 {
		t.Fatalf("expected 2 tokens after rotation, got %d", count)
	}
	var oldTok models.RefreshToken
	if err := db.First(&oldTok, "id = ?", old.ID).Error; err != nil {
		t.Fatalf("reload old token: %v", err)
	}
	if !oldTok.Revoked {
		t.Fatal("old token must be revoked after commit")
	}
	var rotated models.RefreshToken
	if err := db.First(&rotated, "id = ?", newID).Error; err != nil {
		t.Fatalf("reload new token: %v", err)
	}
	if rotated.Revoked || rotated.UserID != 7 {
		t.Fatalf("unexpected rotated token: %+v", rotated)
	}
}
