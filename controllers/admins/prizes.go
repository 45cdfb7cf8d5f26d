package admins

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/BronksDEV/luxbrasil-sub000/database"
	"github.com/BronksDEV/luxbrasil-sub000/models"
	"github.com/BronksDEV/luxbrasil-sub000/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type PrizeResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Type        string  `json:"type"`
	Value       int64   `json:"value"`
	Probability float64 `json:"probability"`
	Chance      float64 `json:"chance"`
	Active      bool    `json:"active"`
	TotalWins   int64   `json:"total_wins"`
	TotalPaid   int64   `json:"total_paid"`
}

type PrizeRequest struct {
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Type        string  `json:"type"`
	Value       int64   `json:"value"`
	Probability float64 `json:"probability"`
	Active      *bool   `json:"active"`
}

func validPrizeType(t string) bool {
	return t == models.PrizePhysical || t == models.PrizeMoney || t == models.PrizeSpins
}

// calculateChances normalizes each prize's weight over the total of ACTIVE
// positive weights, matching what the draw actually does.
func calculateChances(prizes []models.Prize) []PrizeResponse {
	total := 0.0
	for _, p := range prizes {
		if p.Active && p.Probability > 0 {
			total += p.Probability
		}
	}

	response := make([]PrizeResponse, 0, len(prizes))
	for _, prize := range prizes {
		chance := 0.0
		if total > 0 && prize.Active && prize.Probability > 0 {
			chance = prize.Probability / total * 100
		}
		response = append(response, PrizeResponse{
			ID:          prize.ID,
			Name:        prize.Name,
			Color:       prize.Color,
			Type:        prize.Type,
			Value:       prize.Value,
			Probability: prize.Probability,
			Chance:      utils.RoundFloat(chance, 2),
			Active:      prize.Active,
		})
	}
	return response
}

func GetPrizes(w http.ResponseWriter, r *http.Request) {
	var prizes []models.Prize
	if err := database.DB.Order("id ASC").Find(&prizes).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to load prizes",
		})
		return
	}

	response := calculateChances(prizes)

	// Win and payout aggregates per prize.
	type prizeAgg struct {
		PrizeID uint
		Wins    int64
		Paid    int64
	}
	var aggs []prizeAgg
	if err := database.DB.
		Table("spin_histories").
		Select("prize_id, COUNT(*) as wins, COALESCE(SUM(prize_value), 0) as paid").
		Group("prize_id").
		Scan(&aggs).Error; err == nil {
		aggMap := make(map[uint]prizeAgg, len(aggs))
		for _, a := range aggs {
			aggMap[a.PrizeID] = a
		}
		for i := range response {
			if a, ok := aggMap[response[i].ID]; ok {
				response[i].TotalWins = a.Wins
				response[i].TotalPaid = a.Paid
			}
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    response,
	})
}

func CreatePrize(w http.ResponseWriter, r *http.Request) {
	var req PrizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}
	if req.Name == "" || !validPrizeType(req.Type) || req.Probability < 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid prize data"})
		return
	}

	prize := models.Prize{
		Name:        req.Name,
		Color:       req.Color,
		Type:        req.Type,
		Value:       req.Value,
		Probability: req.Probability,
		Active:      req.Active == nil || *req.Active,
	}
	if prize.Color == "" {
		prize.Color = "#FFD700"
	}
	if err := database.DB.Create(&prize).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create prize"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Prize created", Data: prize})
}

func UpdatePrize(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid prize ID"})
		return
	}

	var req PrizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}
	if req.Name == "" || !validPrizeType(req.Type) || req.Probability < 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid prize data"})
		return
	}

	var prize models.Prize
	if err := database.DB.First(&prize, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Prize not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load prize"})
		return
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"color":       req.Color,
		"type":        req.Type,
		"value":       req.Value,
		"probability": req.Probability,
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if err := database.DB.Model(&prize).Updates(updates).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update prize"})
		return
	}

	var allPrizes []models.Prize
	if err := database.DB.Order("id ASC").Find(&allPrizes).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load prizes"})
		return
	}
	response := calculateChances(allPrizes)

	var updated PrizeResponse
	for _, p := range response {
		if p.ID == prize.ID {
			updated = p
			break
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Prize updated",
		Data:    updated,
	})
}

// DeletePrize deactivates a prize instead of removing it; history rows keep
// their prize_id reference.
func DeletePrize(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid prize ID"})
		return
	}

	res := database.DB.Model(&models.Prize{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to deactivate prize"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Prize not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Prize deactivated"})
}
