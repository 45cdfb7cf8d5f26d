package users

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/BronksDEV/luxbrasil-sub000/database"
	"github.com/BronksDEV/luxbrasil-sub000/models"
	"github.com/BronksDEV/luxbrasil-sub000/realtime"
	"github.com/BronksDEV/luxbrasil-sub000/utils"

	"gorm.io/gorm"
)

// confirmReferral marks the user's inbound referral edge confirmed and
// credits the referrer. Called from the spin transaction on every spin; the
// conditional update on confirmed_at IS NULL makes it pay out exactly once
// no matter how many times it runs. Returns true when this call did the
// confirmation.
func confirmReferral(tx *gorm.DB, referredID uint) (bool, error) {
	res := tx.Model(&models.Referral{}).
		Where("referred_id = ? AND confirmed_at IS NULL", referredID).
		UpdateColumn("confirmed_at", time.Now())
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil // no edge, or already confirmed
	}

	var edge models.Referral
	if err := tx.Where("referred_id = ?", referredID).First(&edge).Error; err != nil {
		return false, err
	}

	var setting models.Setting
	if err := tx.Take(&setting).Error; err != nil {
		return false, err
	}

	if setting.ReferralSpins > 0 {
		if err := models.Credit(tx, edge.ReferrerID, models.FieldSpins, setting.ReferralSpins, "Referral confirmed"); err != nil {
			return false, err
		}
	}
	res = tx.Model(&models.User{}).
		Where("id = ?", edge.ReferrerID).
		UpdateColumns(map[string]interface{}{
			"invite_count":    gorm.Expr("invite_count + 1"),
			"invite_earnings": gorm.Expr("invite_earnings + ?", setting.ReferralSpins),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return true, nil
}

// notifyReferrer pushes the referrer's fresh balances after a confirmation
// committed.
func notifyReferrer(db *gorm.DB, referredID uint) {
	var edge models.Referral
	if err := db.Where("referred_id = ?", referredID).First(&edge).Error; err != nil {
		log.Println("[team] load referral edge:", err)
		return
	}
	realtime.PublishBalance(db, edge.ReferrerID)
}

// GET /v1/users/team
//
// Reports the user's invite code, invited members with confirmation state,
// and the conversion rate.
func TeamHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	db := database.DB

	var me models.User
	if err := db.Select("id, invite_code, invite_count, invite_earnings").Where("id = ?", uid).First(&me).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var edges []models.Referral
	if err := db.Where("referrer_id = ?", uid).Order("created_at DESC").Find(&edges).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.ReferredID)
	}
	nameByID := map[uint]string{}
	if len(ids) > 0 {
		var referred []models.User
		db.Select("id, name").Where("id IN ?", ids).Find(&referred)
		for _, u := range referred {
			nameByID[u.ID] = u.Name
		}
	}

	confirmed := 0
	members := make([]map[string]interface{}, 0, len(edges))
	for _, e := range edges {
		isConfirmed := e.ConfirmedAt != nil
		if isConfirmed {
			confirmed++
		}
		members = append(members, map[string]interface{}{
			"name":      nameByID[e.ReferredID],
			"joined_at": e.CreatedAt,
			"confirmed": isConfirmed,
		})
	}

	conversion := 0.0
	if len(edges) > 0 {
		conversion = utils.RoundFloat(float64(confirmed)/float64(len(edges))*100, 2)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"invite_code":     me.InviteCode,
			"invite_link":     fmt.Sprintf("https://luxwheel.app/r/%s", me.InviteCode),
			"invite_count":    me.InviteCount,
			"invite_earnings": me.InviteEarnings,
			"invited":         len(edges),
			"confirmed":       confirmed,
			"conversion_rate": conversion,
			"members":         members,
		},
	})
}
