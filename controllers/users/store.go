package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/BronksDEV/luxbrasil-sub000/database"
	"github.com/BronksDEV/luxbrasil-sub000/models"
	"github.com/BronksDEV/luxbrasil-sub000/realtime"
	"github.com/BronksDEV/luxbrasil-sub000/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GET /v1/store
func StoreListHandler(w http.ResponseWriter, r *http.Request) {
	var items []models.StoreItem
	if err := database.DB.Where("active = ?", true).Order("price ASC").Find(&items).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load the store"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: items})
}

type purchaseRequest struct {
	ItemID uint `json:"item_id"`
}

// POST /v1/store/purchase
//
// Debits LuxCoins for the item price. spins-type items credit the spin
// balance in the same transaction; physical items create a pending history
// record that enters the redemption workflow exactly like a wheel win.
func StorePurchaseHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ItemID == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request"})
		return
	}

	db := database.DB
	var item models.StoreItem
	if err := db.Where("id = ? AND active = ?", req.ItemID, true).First(&item).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Item not found"})
		return
	}

	redemptionCode := uuid.NewString()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := models.Debit(tx, uid, models.FieldCurrency, item.Price, "Store purchase: "+item.Name); err != nil {
			return err
		}
		if item.Type == models.PrizeSpins {
			if item.Value <= 0 {
				return fmt.Errorf("store item %d has no spin value", item.ID)
			}
			return models.Credit(tx, uid, models.FieldSpins, item.Value, "Store purchase: "+item.Name)
		}
		return tx.Create(&models.SpinHistory{
			UserID:         uid,
			PrizeID:        item.ID,
			PrizeName:      item.Name,
			PrizeType:      models.PrizePhysical,
			PrizeValue:     item.Value,
			Status:         models.HistoryPending,
			RedemptionCode: redemptionCode,
		}).Error
	})
	if err != nil {
		if errors.Is(err, models.ErrInsufficientBalance) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Not enough LuxCoins for this item"})
			return
		}
		log.Println("[store] purchase:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error, please try again"})
		return
	}

	realtime.PublishBalance(db, uid)

	data := map[string]interface{}{"item": item}
	if item.Type == models.PrizePhysical {
		data["redemption_code"] = redemptionCode
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Purchase complete", Data: data})
}
