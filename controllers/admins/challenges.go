package admins

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/BronksDEV/luxbrasil-sub000/database"
	"github.com/BronksDEV/luxbrasil-sub000/models"
	"github.com/BronksDEV/luxbrasil-sub000/realtime"
	"github.com/BronksDEV/luxbrasil-sub000/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type ChallengeRequest struct {
	Title        string `json:"title"`
	Type         string `json:"type"`
	Category     string `json:"category"`
	Verification string `json:"verification"`
	Goal         int64  `json:"goal"`
	RewardSpins  int64  `json:"reward_spins"`
	RewardMoney  int64  `json:"reward_money"`
	RewardXP     int64  `json:"reward_xp"`
	Active       *bool  `json:"active"`
}

func validChallengeType(t string) bool {
	switch t {
	case models.ChallengeDaily, models.ChallengeWeekly, models.ChallengeMonthly, models.ChallengePermanent:
		return true
	}
	return false
}

func validVerification(v string) bool {
	return v == models.VerifyAutomatic || v == models.VerifyManual
}

func GetChallenges(w http.ResponseWriter, r *http.Request) {
	var challenges []models.Challenge
	if err := database.DB.Order("id ASC").Find(&challenges).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load challenges"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: challenges})
}

func CreateChallenge(w http.ResponseWriter, r *http.Request) {
	var req ChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}
	if req.Title == "" || !validChallengeType(req.Type) || !validVerification(req.Verification) || req.Goal < 1 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid challenge data"})
		return
	}

	ch := models.Challenge{
		Title:        req.Title,
		Type:         req.Type,
		Category:     req.Category,
		Verification: req.Verification,
		Goal:         req.Goal,
		RewardSpins:  req.RewardSpins,
		RewardMoney:  req.RewardMoney,
		RewardXP:     req.RewardXP,
		Active:       req.Active == nil || *req.Active,
	}
	if ch.Category == "" {
		ch.Category = "general"
	}
	if err := database.DB.Create(&ch).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create challenge"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Challenge created", Data: ch})
}

func UpdateChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid challenge ID"})
		return
	}

	var req ChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}
	if req.Title == "" || !validChallengeType(req.Type) || !validVerification(req.Verification) || req.Goal < 1 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid challenge data"})
		return
	}

	var ch models.Challenge
	if err := database.DB.First(&ch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Challenge not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load challenge"})
		return
	}

	updates := map[string]interface{}{
		"title":        req.Title,
		"type":         req.Type,
		"category":     req.Category,
		"verification": req.Verification,
		"goal":         req.Goal,
		"reward_spins": req.RewardSpins,
		"reward_money": req.RewardMoney,
		"reward_xp":    req.RewardXP,
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if err := database.DB.Model(&ch).Updates(updates).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update challenge"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Challenge updated", Data: ch})
}

func DeleteChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid challenge ID"})
		return
	}

	res := database.DB.Model(&models.Challenge{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to deactivate challenge"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Challenge not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Challenge deactivated"})
}

// GET /api/admin/challenges/review
//
// Manual-verification submissions awaiting a decision. Proof images live in
// private object storage; each row carries a short-lived signed URL so the
// console can render the image without the bucket being public.
func ChallengeReviewQueueHandler(w http.ResponseWriter, r *http.Request) {
	var pending []models.UserChallenge
	err := database.DB.
		Preload("Challenge").
		Preload("User").
		Joins("JOIN challenges c ON c.id = user_challenges.challenge_id").
		Where("user_challenges.status = ? AND c.verification = ?", models.ChallengeInProgress, models.VerifyManual).
		Order("user_challenges.updated_at ASC").
		Find(&pending).Error
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load review queue"})
		return
	}

	type reviewItem struct {
		ID            uint    `json:"id"`
		UserID        uint    `json:"user_id"`
		UserName      string  `json:"user_name"`
		ChallengeID   uint    `json:"challenge_id"`
		Title         string  `json:"title"`
		Proof         *string `json:"proof,omitempty"`
		ProofImageURL string  `json:"proof_image_url,omitempty"`
		SubmittedAt   string  `json:"submitted_at"`
	}

	items := make([]reviewItem, 0, len(pending))
	for _, uc := range pending {
		item := reviewItem{
			ID:          uc.ID,
			UserID:      uc.UserID,
			ChallengeID: uc.ChallengeID,
			Proof:       uc.Proof,
			SubmittedAt: uc.UpdatedAt.Format(time.RFC3339),
		}
		if uc.User != nil {
			item.UserName = uc.User.Name
		}
		if uc.Challenge != nil {
			item.Title = uc.Challenge.Title
		}
		if uc.ProofImage != nil && *uc.ProofImage != "" {
			if url, err := utils.SignedProofURL(*uc.ProofImage, 15*time.Minute); err == nil {
				item.ProofImageURL = url
			}
		}
		items = append(items, item)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: items})
}

// POST /api/admin/challenges/review/{id}/approve
//
// Accepts a manual submission: the record jumps from in_progress straight to
// claimed and the reward is credited, all in one transaction. The conditional
// update keeps a double-click or a second admin from paying twice.
func ApproveChallengeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid submission ID"})
		return
	}

	var uc models.UserChallenge
	if err := database.DB.Preload("Challenge").First(&uc, id).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Submission not found"})
		return
	}
	if uc.Challenge == nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Challenge no longer exists"})
		return
	}

	approved := false
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.UserChallenge{}).
			Where("id = ? AND status = ?", uc.ID, models.ChallengeInProgress).
			Updates(map[string]interface{}{
				"status":        models.ChallengeClaimed,
				"progress":      100,
				"current_value": uc.Challenge.Goal,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil // already decided
		}
		approved = true
		return distributeReward(tx, uc.UserID, *uc.Challenge)
	})
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "System error, please try again"})
		return
	}
	if !approved {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Submission is not awaiting review"})
		return
	}

	realtime.PublishBalance(database.DB, uc.UserID)
	utils.NotifyOps(fmt.Sprintf("Challenge approved: %q for user %d", uc.Challenge.Title, uc.UserID))
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Submission approved, reward credited"})
}

// POST /api/admin/challenges/review/{id}/reject
//
// Sends a manual submission back to pending and discards the proof so the
// user can try again with new evidence.
func RejectChallengeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid submission ID"})
		return
	}

	var uc models.UserChallenge
	if err := database.DB.First(&uc, id).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Submission not found"})
		return
	}

	res := database.DB.Model(&models.UserChallenge{}).
		Where("id = ? AND status = ?", uc.ID, models.ChallengeInProgress).
		Updates(map[string]interface{}{
			"status":      models.ChallengePending,
			"proof":       nil,
			"proof_image": nil,
		})
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "System error, please try again"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Submission is not awaiting review"})
		return
	}

	if uc.ProofImage != nil && *uc.ProofImage != "" {
		_ = utils.DeleteProofImage(*uc.ProofImage)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Submission rejected"})
}

// distributeReward credits every non-zero reward component of a challenge.
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
