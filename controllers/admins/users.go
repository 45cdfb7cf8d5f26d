package admins

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/BronksDEV/luxbrasil-sub000/database"
	"github.com/BronksDEV/luxbrasil-sub000/models"
	"github.com/BronksDEV/luxbrasil-sub000/progression"
	"github.com/BronksDEV/luxbrasil-sub000/realtime"
	"github.com/BronksDEV/luxbrasil-sub000/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// GET /api/admin/users
func GetUsers(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	search := r.URL.Query().Get("search")
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := db.Model(&models.User{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR number LIKE ? OR invite_code LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "System error, please try again"})
		return
	}

	var users []models.User
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "System error, please try again"})
		return
	}

	type userRow struct {
		ID              uint   `json:"id"`
		Name            string `json:"name"`
		Number          string `json:"number"`
		InviteCode      string `json:"invite_code"`
		SpinsRemaining  int64  `json:"spins_remaining"`
		CurrencyBalance int64  `json:"currency_balance"`
		XP              int64  `json:"xp"`
		Level           int    `json:"level"`
		Tier            string `json:"tier"`
		InviteCount     int64  `json:"invite_count"`
		IsBanned        bool   `json:"is_banned"`
	}

	items := make([]userRow, 0, len(users))
	for _, u := range users {
		info := progression.Calc(u.XP)
		items = append(items, userRow{
			ID:              u.ID,
			Name:            u.Name,
			Number:          u.Number,
			InviteCode:      u.InviteCode,
			SpinsRemaining:  u.SpinsRemaining,
			CurrencyBalance: u.CurrencyBalance,
			XP:              u.XP,
			Level:           info.Level,
			Tier:            info.Tier,
			InviteCount:     u.InviteCount,
			IsBanned:        u.IsBanned,
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

// GET /api/admin/users/{id}
func GetUserDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid user ID"})
		return
	}

	db := database.DB
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "System error, please try again"})
		return
	}

	var totalSpins int64
	db.Model(&models.SpinHistory{}).Where("user_id = ?", user.ID).Count(&totalSpins)

	var pendingRedemptions int64
	db.Model(&models.SpinHistory{}).
		Where("user_id = ? AND status IN ?", user.ID, []string{models.HistoryPending, models.HistoryRequested}).
		Count(&pendingRedemptions)

	var recentLedger []models.LedgerEntry
	db.Where("user_id = ?", user.ID).Order("created_at DESC").Limit(50).Find(&recentLedger)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"user":                user,
			"progression":         progression.Calc(user.XP),
			"total_spins":         totalSpins,
			"pending_redemptions": pendingRedemptions,
			"recent_ledger":       recentLedger,
		},
	})
}

type BanRequest struct {
	Banned bool `json:"banned"`
}

// POST /api/admin/users/{id}/ban
func SetUserBanHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid user ID"})
		return
	}

	var req BanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}

	res := database.DB.Model(&models.User{}).Where("id = ?", id).Update("is_banned", req.Banned)
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "System error, please try again"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}

	msg := "User unbanned"
	if req.Banned {
		msg = "User banned"
		utils.NotifyOps(fmt.Sprintf("User %d banned by admin", id))
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: msg})
}

type AdjustBalanceRequest struct {
	Field  string `json:"field"`
	Flow   string `json:"flow"`
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}

// POST /api/admin/users/{id}/adjust
//
// Manual balance correction. Runs through the same credit/debit paths as
// gameplay so the journal stays complete; a debit below zero is rejected,
// not clamped.
func AdjustBalanceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid user ID"})
		return
	}

	var req AdjustBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	if req.Amount <= 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Amount must be positive"})
		return
	}
	if req.Field != models.FieldSpins && req.Field != models.FieldCurrency && req.Field != models.FieldXP {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Unknown balance field"})
		return
	}
	if req.Flow != "credit" && req.Flow != "debit" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Flow must be credit or debit"})
		return
	}

	reason := req.Reason
	if reason == "" {
		reason = "Admin adjustment"
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if req.Flow == "credit" {
			return models.Credit(tx, uint(id), req.Field, req.Amount, reason)
		}
		return models.Debit(tx, uint(id), req.Field, req.Amount, reason)
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		case errors.Is(err, models.ErrInsufficientSpins), errors.Is(err, models.ErrInsufficientBalance):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Balance would go negative"})
		default:
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "System error, please try again"})
		}
		return
	}

	realtime.PublishBalance(database.DB, uint(id))
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Balance adjusted"})
}
