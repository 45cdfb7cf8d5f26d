package admins

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/BronksDEV/luxbrasil-sub000/database"
	"github.com/BronksDEV/luxbrasil-sub000/models"
	"github.com/BronksDEV/luxbrasil-sub000/utils"

	"github.com/gorilla/mux"
)

// GET /api/admin/redemptions
//
// Paginated review queue over spin history, newest first. Defaults to the
// requested state; status=all shows the full journal.
func RedemptionsHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	search := r.URL.Query().Get("search")
	status := r.URL.Query().Get("status")
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit
	if status == "" {
		status = models.HistoryRequested
	}

	query := db.
		Table("spin_histories AS sh").
		Joins("JOIN users u ON sh.user_id = u.id").
		Where("sh.prize_type IN ?", []string{models.PrizePhysical, models.PrizeMoney})
	if status != "all" {
		query = query.Where("sh.status = ?", status)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("u.name LIKE ? OR u.number LIKE ? OR sh.redemption_code LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "System error, please try again",
		})
		return
	}

	type rowScan struct {
		ID             uint
		UserID         uint
		UserName       string
		Phone          string
		PrizeID        uint
		PrizeName      string
		PrizeType      string
		PrizeValue     int64
		Status         string
		RedemptionCode string
		CreatedAt      time.Time
	}

	var rows []rowScan
	if err := query.
		Select(`
			sh.id,
			sh.user_id,
			u.name AS user_name,
			u.number AS phone,
			sh.prize_id,
			sh.prize_name,
			sh.prize_type,
			sh.prize_value,
			sh.status,
			sh.redemption_code,
			sh.created_at
		`).
		Order("sh.created_at DESC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "System error, please try again",
		})
		return
	}

	type RedemptionResponse struct {
		ID             uint   `json:"id"`
		UserID         uint   `json:"user_id"`
		UserName       string `json:"user_name"`
		Phone          string `json:"phone"`
		PrizeID        uint   `json:"prize_id"`
		PrizeName      string `json:"prize_name"`
		PrizeType      string `json:"prize_type"`
		PrizeValue     int64  `json:"prize_value"`
		Status         string `json:"status"`
		RedemptionCode string `json:"redemption_code"`
		WonAt          string `json:"won_at"`
	}

	items := make([]RedemptionResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, RedemptionResponse{
			ID:             row.ID,
			UserID:         row.UserID,
			UserName:       row.UserName,
			Phone:          row.Phone,
			PrizeID:        row.PrizeID,
			PrizeName:      row.PrizeName,
			PrizeType:      row.PrizeType,
			PrizeValue:     row.PrizeValue,
			Status:         row.Status,
			RedemptionCode: row.RedemptionCode,
			WonAt:          row.CreatedAt.Format(time.RFC3339),
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
			"items": items,
		},
	})
}

// POST /api/admin/redemptions/{id}/redeem
//
// Marks a requested win as handed over. The conditional update makes two
// admins racing on the same record resolve to one winner; the loser gets a
// conflict instead of a double payout.
func RedeemRedemptionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid redemption ID"})
		return
	}

	var record models.SpinHistory
	if err := database.DB.First(&record, id).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Redemption not found"})
		return
	}

	res := database.DB.Model(&models.SpinHistory{}).
		Where("id = ? AND status = ?", id, models.HistoryRequested).
		Update("status", models.HistoryRedeemed)
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "System error, please try again"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Redemption is not in requested state"})
		return
	}

	utils.NotifyOps(fmt.Sprintf("Redemption fulfilled: %s (%s) for user %d", record.PrizeName, record.RedemptionCode, record.UserID))
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Redemption marked as redeemed"})
}

// POST /api/admin/redemptions/{id}/refuse
//
// Sends a requested win back to pending, for example when the user could not
// be reached. The user can re-request later.
func RefuseRedemptionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid redemption ID"})
		return
	}

	res := database.DB.Model(&models.SpinHistory{}).
		Where("id = ? AND status = ?", id, models.HistoryRequested).
		Update("status", models.HistoryPending)
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "System error, please try again"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Redemption is not in requested state"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Redemption returned to pending"})
}
