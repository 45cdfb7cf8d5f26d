package users

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/BronksDEV/luxbrasil-sub000/database"
	"github.com/BronksDEV/luxbrasil-sub000/models"
	"github.com/BronksDEV/luxbrasil-sub000/realtime"
	"github.com/BronksDEV/luxbrasil-sub000/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// pickPrize performs the weighted draw over the catalog snapshot. prizes must
// be in stable catalog order (id ASC) so every prize owns an unambiguous
// probability band; r must be in [0, total) where total is the sum of
// probabilities. Returns the index of the selected prize.
func pickPrize(prizes []models.Prize, r float64) int {
	acc := 0.0
	for i, p := range prizes {
		if p.Probability <= 0 {
			continue
		}
		acc += p.Probability
		if r < acc {
			return i
		}
	}
	// Float accumulation can leave r a hair past the last band.
	for i := len(prizes) - 1; i >= 0; i-- {
		if prizes[i].Probability > 0 {
			return i
		}
	}
	return -1
}

// activePrizes loads the draw pool in catalog order and sums the weights.
func activePrizes(db *gorm.DB) ([]models.Prize, float64, error) {
	var prizes []models.Prize
	if err := db.Where("active = ?", true).Order("id ASC").Find(&prizes).Error; err != nil {
		return nil, 0, err
	}
	total := 0.0
	for _, p := range prizes {
		if p.Probability > 0 {
			total += p.Probability
		}
	}
	if len(prizes) == 0 || total <= 0 {
		return nil, 0, models.ErrMisconfiguredCatalog
	}
	return prizes, total, nil
}

// GET /v1/prizes
func PrizeListHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	type prizeResponse struct {
		ID     uint    `json:"id"`
		Name   string  `json:"name"`
		Color  string  `json:"color"`
		Type   string  `json:"type"`
		Value  int64   `json:"value"`
		Chance float64 `json:"chance"`
	}

	var prizes []models.Prize
	if err := db.Where("active = ?", true).Order("id ASC").Find(&prizes).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load the prize wheel"})
		return
	}

	total := 0.0
	for _, p := range prizes {
		if p.Probability > 0 {
			total += p.Probability
		}
	}

	var response []prizeResponse
	for _, p := range prizes {
		chance := 0.0
		if total > 0 && p.Probability > 0 {
			chance = utils.RoundFloat(p.Probability/total*100, 2)
		}
		response = append(response, prizeResponse{
			ID:     p.ID,
			Name:   p.Name,
			Color:  p.Color,
			Type:   p.Type,
			Value:  p.Value,
			Chance: chance,
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: response})
}

var spinRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// POST /v1/users/spin
//
// Consumes one spin credit, draws a prize and records the win. The credit
// decrement, ledger mutation and history insert commit in one transaction;
// a failure anywhere leaves the spin credit untouched.
func SpinHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok || userID == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	db := database.DB

	prizes, total, err := activePrizes(db)
	if err != nil {
		if errors.Is(err, models.ErrMisconfiguredCatalog) {
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "The prize wheel is not available right now"})
			return
		}
		log.Println("[spin] load prizes:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error, please try again"})
		return
	}

	draw := spinRand.Float64() * total
	idx := pickPrize(prizes, draw)
	if idx < 0 {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "The prize wheel is not available right now"})
		return
	}
	prize := prizes[idx]

	redemptionCode := uuid.NewString()
	var remaining int64
	firstSpin := false

	err = db.Transaction(func(tx *gorm.DB) error {
		// The ledger debit is conditional on the current balance, which is
		// the double-spend guard: two tabs spinning at once race on the
		// WHERE clause and only one consumes the credit.
		if err := models.Debit(tx, userID, models.FieldSpins, 1, "Wheel spin"); err != nil {
			return err
		}

		history := models.SpinHistory{
			UserID:         userID,
			PrizeID:        prize.ID,
			PrizeName:      prize.Name,
			PrizeType:      prize.Type,
			PrizeValue:     prize.Value,
			Status:         models.HistoryPending,
			RedemptionCode: redemptionCode,
		}

		switch prize.Type {
		case models.PrizeMoney:
			if prize.Value > 0 {
				if err := models.Credit(tx, userID, models.FieldCurrency, prize.Value, "Wheel prize: "+prize.Name); err != nil {
					return err
				}
			}
		case models.PrizeSpins:
			if prize.Value > 0 {
				if err := models.Credit(tx, userID, models.FieldSpins, prize.Value, "Wheel prize: "+prize.Name); err != nil {
					return err
				}
			}
			// Credited straight to the balance; no redemption to request.
			history.Status = models.HistoryRedeemed
		}

		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		confirmed, err := confirmReferral(tx, userID)
		if err != nil {
			return err
		}
		firstSpin = confirmed

		var user models.User
		if err := tx.Select("spins_remaining").Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}
		remaining = user.SpinsRemaining
		return nil
	})

	if err != nil {
		if errors.Is(err, models.ErrInsufficientSpins) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "You have no spins left"})
			return
		}
		log.Println("[spin] transaction:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error, please try again"})
		return
	}

	realtime.PublishBalance(db, userID)
	if firstSpin {
		notifyReferrer(db, userID)
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: fmt.Sprintf("Congratulations! You won %s", prize.Name),
		Data: map[string]interface{}{
			"prize": map[string]interface{}{
				"id":    prize.ID,
				"name":  prize.Name,
				"type":  prize.Type,
				"value": prize.Value,
			},
			"redemption_code": redemptionCode,
			"remaining_spins": remaining,
		},
	})
}

// POST /v1/users/spin/daily
//
// Replenishes the free daily spins once the roulette timer has lapsed. The
// conditional update is keyed on the stored expiry so two tabs cannot both
// collect the same window.
func DailySpinHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok || userID == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	db := database.DB

	var setting models.Setting
	if err := db.Take(&setting).Error; err != nil {
		log.Println("[spin] load settings:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error, please try again"})
		return
	}
	if setting.DailyFreeSpins <= 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Daily free spins are disabled"})
		return
	}

	now := time.Now()
	nextExpiry := now.Add(time.Duration(setting.RouletteTimerHours) * time.Hour)
	var granted bool

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND (roulette_timer_expires_at IS NULL OR roulette_timer_expires_at <= ?)", userID, now).
			UpdateColumn("roulette_timer_expires_at", nextExpiry)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil // timer still running
		}
		granted = true
		return models.Credit(tx, userID, models.FieldSpins, setting.DailyFreeSpins, "Daily free spins")
	})
	if err != nil {
		log.Println("[spin] daily:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error, please try again"})
		return
	}

	if !granted {
		var user models.User
		_ = db.Select("roulette_timer_expires_at").Where("id = ?", userID).First(&user).Error
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Your free spins are not ready yet",
			Data:    map[string]interface{}{"roulette_timer_expires_at": user.RouletteTimerExpiresAt},
		})
		return
	}

	realtime.PublishBalance(db, userID)
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: fmt.Sprintf("You collected %d free spin(s)", setting.DailyFreeSpins),
		Data: map[string]interface{}{
			"granted_spins":             setting.DailyFreeSpins,
			"roulette_timer_expires_at": nextExpiry,
		},
	})
}

// GET /v1/users/spin/history
func SpinHistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok || userID == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var history []models.SpinHistory
	if err := database.DB.Where("user_id = ?", userID).Order("created_at DESC").Limit(100).Find(&history).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load spin history"})
		return
	}

	// Raw value/type fields go out as stored; hiding consolation entries is
	// the client's call, not the engine's.
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: history})
}
