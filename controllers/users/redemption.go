package users

import (
	"fmt"
	"log"
	"net/http"

	"github.com/BronksDEV/luxbrasil-sub000/database"
	"github.com/BronksDEV/luxbrasil-sub000/models"
	"github.com/BronksDEV/luxbrasil-sub000/utils"

	"github.com/gorilla/mux"
)

// GET /v1/users/redemptions
//
// Lists the wins that can travel the redemption workflow: pending and
// requested physical/money prizes. spins-type wins never appear here.
func RedemptionListHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var records []models.SpinHistory
	err := database.DB.
		Where("user_id = ? AND prize_type IN ? AND status IN ?",
			uid,
			[]string{models.PrizePhysical, models.PrizeMoney},
			[]string{models.HistoryPending, models.HistoryRequested}).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load redemptions"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: records})
}

// POST /v1/users/redemptions/{code}/request
//
// Moves a pending win to requested. Requesting an already-requested record
// is a no-op success, so a double-clicked button never creates a duplicate
// request; a redeemed record cannot come back.
func RequestRedemptionHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	code := mux.Vars(r)["code"]
	if code == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid redemption code"})
		return
	}

	db := database.DB
	var record models.SpinHistory
	if err := db.Where("redemption_code = ? AND user_id = ?", code, uid).First(&record).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Redemption not found"})
		return
	}
	if record.PrizeType == models.PrizeSpins {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Spin prizes are credited automatically"})
		return
	}

	switch record.Status {
	case models.HistoryRequested:
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Redemption already requested"})
		return
	case models.HistoryRedeemed:
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "This prize has already been redeemed"})
		return
	}

	res := db.Model(&models.SpinHistory{}).
		Where("id = ? AND status = ?", record.ID, models.HistoryPending).
		Update("status", models.HistoryRequested)
	if res.Error != nil {
		log.Println("[redemption] request:", res.Error)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error, please try again"})
		return
	}
	if res.RowsAffected == 0 {
		// lost the race to a concurrent request; idempotent outcome
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Redemption already requested"})
		return
	}

	utils.NotifyOps(fmt.Sprintf("Redemption requested: %s (%s) by user %d", record.PrizeName, record.RedemptionCode, uid))
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Redemption requested"})
}
