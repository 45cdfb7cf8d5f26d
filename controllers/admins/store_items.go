package admins

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/BronksDEV/luxbrasil-sub000/database"
	"github.com/BronksDEV/luxbrasil-sub000/models"
	"github.com/BronksDEV/luxbrasil-sub000/utils"

	"github.com/gorilla/mux"
)

type StoreItemRequest struct {
	Name   string `json:"name"`
	Price  int64  `json:"price"`
	Type   string `json:"type"`
	Value  int64  `json:"value"`
	Active *bool  `json:"active"`
}

func GetStoreItems(w http.ResponseWriter, r *http.Request) {
	var items []models.StoreItem
	if err := database.DB.Order("id ASC").Find(&items).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load store items"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: items})
}

func CreateStoreItem(w http.ResponseWriter, r *http.Request) {
	var req StoreItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}
	if req.Name == "" || req.Price < 1 || (req.Type != models.PrizePhysical && req.Type != models.PrizeSpins) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid store item data"})
		return
	}

	item := models.StoreItem{
		Name:   req.Name,
		Price:  req.Price,
		Type:   req.Type,
		Value:  req.Value,
		Active: req.Active == nil || *req.Active,
	}
	if err := database.DB.Create(&item).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create store item"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Store item created", Data: item})
}

func UpdateStoreItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid store item ID"})
		return
	}

	var req StoreItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}
	if req.Name == "" || req.Price < 1 || (req.Type != models.PrizePhysical && req.Type != models.PrizeSpins) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid store item data"})
		return
	}

	updates := map[string]interface{}{
		"name":  req.Name,
		"price": req.Price,
		"type":  req.Type,
		"value": req.Value,
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	res := database.DB.Model(&models.StoreItem{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update store item"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Store item not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Store item updated"})
}

func DeleteStoreItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid store item ID"})
		return
	}

	res := database.DB.Model(&models.StoreItem{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to deactivate store item"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Store item not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Store item deactivated"})
}
