package users

import (
	"net/http"

	"github.com/BronksDEV/luxbrasil-sub000/database"
	"github.com/BronksDEV/luxbrasil-sub000/models"
	"github.com/BronksDEV/luxbrasil-sub000/progression"
	"github.com/BronksDEV/luxbrasil-sub000/utils"
)

// GET /v1/users/info
//
// Level and tier are derived from XP on every read; they are never stored,
// so they can never drift from the ledger.
func InfoHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var user models.User
	if err := database.DB.Where("id = ?", uid).First(&user).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"id":                        user.ID,
			"name":                      user.Name,
			"number":                    user.Number,
			"invite_code":               user.InviteCode,
			"spins_remaining":           user.SpinsRemaining,
			"currency_balance":          user.CurrencyBalance,
			"xp":                        user.XP,
			"progression":               progression.Calc(user.XP),
			"invite_count":              user.InviteCount,
			"invite_earnings":           user.InviteEarnings,
			"roulette_timer_expires_at": user.RouletteTimerExpiresAt,
		},
	})
}

// GET /v1/users/ledger
func LedgerHistoryHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var entries []models.LedgerEntry
	if err := database.DB.Where("user_id = ?", uid).Order("created_at DESC").Limit(100).Find(&entries).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load history"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: entries})
}
