package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BronksDEV/luxbrasil-sub000/database"
	"github.com/BronksDEV/luxbrasil-sub000/models"
	"github.com/BronksDEV/luxbrasil-sub000/realtime"
	"github.com/BronksDEV/luxbrasil-sub000/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// effectiveState derives what the client should see for a progress row at
// read time. A claimed daily challenge from a previous day presents as
// pending with zero progress without any write having happened; storage is
// only touched when the user next interacts with the challenge.
func effectiveState(ch models.Challenge, uc *models.UserChallenge, now time.Time) (status string, progress int, currentValue int64) {
	if uc == nil {
		return models.ChallengePending, 0, 0
	}
	if ch.Type == models.ChallengeDaily && uc.Status == models.ChallengeClaimed && !sameDay(uc.UpdatedAt, now) {
		return models.ChallengePending, 0, 0
	}
	return uc.Status, uc.Progress, uc.CurrentValue
}

// progressPercent recomputes the 0-100 progress of an automatic counter.
func progressPercent(currentValue, goal int64) int {
	if goal <= 0 {
		return 100
	}
	pct := int(100 * currentValue / goal)
	if pct > 100 {
		pct = 100
	}
	return pct
}

// rearmDaily resets a claimed daily row once the calendar day has moved on,
// so the new day's events count from zero. Conditional on the claimed status
// so concurrent interactions re-arm at most once.
func rearmDaily(tx *gorm.DB, ch models.Challenge, uc *models.UserChallenge, now time.Time) error {
	if ch.Type != models.ChallengeDaily || uc.Status != models.ChallengeClaimed || sameDay(uc.UpdatedAt, now) {
		return nil
	}
	res := tx.Model(&models.UserChallenge{}).
		Where("id = ? AND status = ?", uc.ID, models.ChallengeClaimed).
		Updates(map[string]interface{}{
			"status":        models.ChallengePending,
			"current_value": 0,
			"progress":      0,
			"proof":         nil,
			"proof_image":   nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		uc.Status = models.ChallengePending
		uc.CurrentValue = 0
		uc.Progress = 0
		uc.Proof = nil
		uc.ProofImage = nil
	}
	return nil
}

// distributeReward credits the configured challenge rewards through the
// ledger. Runs inside the claiming transaction so a crash between crediting
// and marking claimed rolls both back together.
func distributeReward(tx *gorm.DB, userID uint, ch models.Challenge) error {
	reason := "Challenge reward: " + ch.Title
	if ch.RewardSpins > 0 {
		if err := models.Credit(tx, userID, models.FieldSpins, ch.RewardSpins, reason); err != nil {
			return err
		}
	}
	if ch.RewardMoney > 0 {
		if err := models.Credit(tx, userID, models.FieldCurrency, ch.RewardMoney, reason); err != nil {
			return err
		}
	}
	if ch.RewardXP > 0 {
		if err := models.Credit(tx, userID, models.FieldXP, ch.RewardXP, reason); err != nil {
			return err
		}
	}
	return nil
}

// GET /v1/users/challenges
func ChallengeListHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	db := database.DB
	var challenges []models.Challenge
	if err := db.Where("active = ?", true).Order("id ASC").Find(&challenges).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load challenges"})
		return
	}

	var rows []models.UserChallenge
	db.Where("user_id = ?", uid).Find(&rows)
	byChallenge := make(map[uint]*models.UserChallenge, len(rows))
	for i := range rows {
		byChallenge[rows[i].ChallengeID] = &rows[i]
	}

	now := time.Now()
	var resp []map[string]interface{}
	for _, ch := range challenges {
		status, progress, current := effectiveState(ch, byChallenge[ch.ID], now)
		resp = append(resp, map[string]interface{}{
			"id":           ch.ID,
			"title":        ch.Title,
			"type":         ch.Type,
			"category":     ch.Category,
			"verification": ch.Verification,
			"goal":         ch.Goal,
			"reward_spins": ch.RewardSpins,
			"reward_money": ch.RewardMoney,
			"reward_xp":    ch.RewardXP,
			"status":       status,
			"progress":     progress,
			"current":      current,
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: resp})
}

type challengeEventRequest struct {
	ChallengeID uint `json:"challenge_id"`
}

// POST /v1/users/challenges/event
//
// Reports a qualifying action toward an automatic challenge. Idempotent per
// calendar day: the conditional update on last_event_at means repeated
// reports of the same day's action count once.
func ChallengeEventHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var req challengeEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ChallengeID == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request"})
		return
	}

	db := database.DB
	var ch models.Challenge
	if err := db.Where("id = ? AND active = ?", req.ChallengeID, true).First(&ch).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Challenge not found"})
		return
	}
	if ch.Verification != models.VerifyAutomatic {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "This challenge needs a proof submission"})
		return
	}

	now := time.Now()
	var out models.UserChallenge
	counted := false

	err := db.Transaction(func(tx *gorm.DB) error {
		uc, err := loadOrCreateProgress(tx, uid, ch.ID)
		if err != nil {
			return err
		}
		if err := rearmDaily(tx, ch, uc, now); err != nil {
			return err
		}
		if uc.Status == models.ChallengeCompleted || uc.Status == models.ChallengeClaimed {
			out = *uc
			return nil
		}

		// One credit per qualifying event per calendar day.
		res := tx.Model(&models.UserChallenge{}).
			Where("id = ? AND status IN ? AND (last_event_at IS NULL OR DATE(last_event_at) < DATE(?))",
				uc.ID, []string{models.ChallengePending, models.ChallengeInProgress}, now).
			Updates(map[string]interface{}{
				"current_value": gorm.Expr("current_value + 1"),
				"last_event_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		counted = res.RowsAffected > 0

		if err := tx.Where("id = ?", uc.ID).First(uc).Error; err != nil {
			return err
		}
		if counted {
			update := map[string]interface{}{
				"progress": progressPercent(uc.CurrentValue, ch.Goal),
			}
			if uc.CurrentValue >= ch.Goal {
				update["status"] = models.ChallengeCompleted
			}
			if err := tx.Model(&models.UserChallenge{}).Where("id = ?", uc.ID).Updates(update).Error; err != nil {
				return err
			}
			if err := tx.Where("id = ?", uc.ID).First(uc).Error; err != nil {
				return err
			}
		}
		out = *uc
		return nil
	})
	if err != nil {
		log.Println("[challenge] event:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error, please try again"})
		return
	}

	msg := "Progress recorded"
	if !counted {
		msg = "Already counted for today"
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: msg,
		Data: map[string]interface{}{
			"status":   out.Status,
			"progress": out.Progress,
			"current":  out.CurrentValue,
			"counted":  counted,
		},
	})
}

// POST /v1/users/challenges/{id}/claim
//
// Claims a completed automatic challenge. The status flip and the reward
// credits share one transaction, and the flip is conditional on the
// completed status, so a double claim pays nothing the second time.
func ChallengeClaimHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	challengeID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || challengeID == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid challenge id"})
		return
	}

	db := database.DB
	var ch models.Challenge
	if err := db.Where("id = ? AND active = ?", uint(challengeID), true).First(&ch).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Challenge not found"})
		return
	}
	if ch.Verification != models.VerifyAutomatic {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Manual challenges are rewarded on approval"})
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.UserChallenge{}).
			Where("user_id = ? AND challenge_id = ? AND status = ?", uid, ch.ID, models.ChallengeCompleted).
			Update("status", models.ChallengeClaimed)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrInvalidTransition
		}
		return distributeReward(tx, uid, ch)
	})
	if err != nil {
		if errors.Is(err, models.ErrInvalidTransition) {
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Nothing to claim for this challenge"})
			return
		}
		log.Println("[challenge] claim:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error, please try again"})
		return
	}

	realtime.PublishBalance(db, uid)
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Reward claimed",
		Data: map[string]interface{}{
			"reward_spins": ch.RewardSpins,
			"reward_money": ch.RewardMoney,
			"reward_xp":    ch.RewardXP,
		},
	})
}

// POST /v1/users/challenges/{id}/proof
//
// Submits proof for a manual challenge: a text/URL field plus an optional
// image stored on R2. Moves the row to in_progress for admin review; a
// rejected submission can be resubmitted.
func ChallengeProofHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	challengeID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || challengeID == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid challenge id"})
		return
	}

	db := database.DB
	var ch models.Challenge
	if err := db.Where("id = ? AND active = ?", uint(challengeID), true).First(&ch).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Challenge not found"})
		return
	}
	if ch.Verification != models.VerifyManual {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "This challenge tracks progress automatically"})
		return
	}

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid form data"})
		return
	}
	proof := strings.TrimSpace(r.FormValue("proof"))
	if proof == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Proof text or URL is required"})
		return
	}

	var imageObject *string
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Proof image must be JPG or PNG"})
			return
		}
		object := fmt.Sprintf("proofs/%d/%s%s", uid, uuid.NewString(), ext)
		if err := utils.UploadProofImage(object, file); err != nil {
			log.Println("[challenge] proof upload:", err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to store the proof image"})
			return
		}
		imageObject = &object
	}

	now := time.Now()
	err = db.Transaction(func(tx *gorm.DB) error {
		uc, err := loadOrCreateProgress(tx, uid, ch.ID)
		if err != nil {
			return err
		}
		if err := rearmDaily(tx, ch, uc, now); err != nil {
			return err
		}
		if uc.Status != models.ChallengePending {
			return models.ErrInvalidTransition
		}
		res := tx.Model(&models.UserChallenge{}).
			Where("id = ? AND status = ?", uc.ID, models.ChallengePending).
			Updates(map[string]interface{}{
				"status":      models.ChallengeInProgress,
				"proof":       proof,
				"proof_image": imageObject,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrInvalidTransition) {
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "This challenge is already under review or finished"})
			return
		}
		log.Println("[challenge] proof:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error, please try again"})
		return
	}

	utils.NotifyOps(fmt.Sprintf("Proof submitted for challenge %q by user %d", ch.Title, uid))
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Proof submitted for review"})
}

// loadOrCreateProgress fetches the per-user row, creating it on first touch.
// The unique (user_id, challenge_id) index makes racing creates collapse to
// one row.
func loadOrCreateProgress(tx *gorm.DB, userID, challengeID uint) (*models.UserChallenge, error) {
	var uc models.UserChallenge
	err := tx.Where("user_id = ? AND challenge_id = ?", userID, challengeID).First(&uc).Error
	if err == nil {
		return &uc, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	uc = models.UserChallenge{
		UserID:      userID,
		ChallengeID: challengeID,
		Status:      models.ChallengePending,
	}
	if err := tx.Create(&uc).Error; err != nil {
		// another request won the create
		if ferr := tx.Where("user_id = ? AND challenge_id = ?", userID, challengeID).First(&uc).Error; ferr == nil {
			return &uc, nil
		}
		return nil, err
	}
	return &uc, nil
}
