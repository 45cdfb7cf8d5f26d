package admins

import (
	"encoding/json"
	"net/http"

	"github.com/BronksDEV/luxbrasil-sub000/database"
	"github.com/BronksDEV/luxbrasil-sub000/models"
	"github.com/BronksDEV/luxbrasil-sub000/utils"
)

type SettingRequest struct {
	Name               string `json:"name"`
	SignupBonusSpins   int64  `json:"signup_bonus_spins"`
	ReferralSpins      int64  `json:"referral_spins"`
	DailyFreeSpins     int64  `json:"daily_free_spins"`
	RouletteTimerHours int    `json:"roulette_timer_hours"`
	Maintenance        bool   `json:"maintenance"`
	ClosedRegister     bool   `json:"closed_register"`
}

// GET /api/admin/settings
func GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var setting models.Setting
	if err := database.DB.First(&setting).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "System error, please try again",
		})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    setting,
	})
}

// PUT /api/admin/settings
func UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var req SettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}
	if req.SignupBonusSpins < 0 || req.ReferralSpins < 0 || req.DailyFreeSpins < 0 || req.RouletteTimerHours < 1 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid setting values",
		})
		return
	}

	db := database.DB

	var setting models.Setting
	if err := db.First(&setting).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "System error, please try again",
		})
		return
	}

	setting.Name = req.Name
	setting.SignupBonusSpins = req.SignupBonusSpins
	setting.ReferralSpins = req.ReferralSpins
	setting.DailyFreeSpins = req.DailyFreeSpins
	setting.RouletteTimerHours = req.RouletteTimerHours
	setting.Maintenance = req.Maintenance
	setting.ClosedRegister = req.ClosedRegister

	if err := db.Save(&setting).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "System error, please try again",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Settings updated",
		Data:    setting,
	})
}
