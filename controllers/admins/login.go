package admins

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/BronksDEV/luxbrasil-sub000/database"
	"github.com/BronksDEV/luxbrasil-sub000/models"
	"github.com/BronksDEV/luxbrasil-sub000/utils"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

const adminTokenTTL = 12 * time.Hour

func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid JSON body",
		})
		return
	}

	var admin models.Admin
	if err := database.DB.Where("username = ? AND is_active = ?", req.Username, true).First(&admin).Error; err != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
			Success: false,
			Message: "Wrong username or password",
		})
		return
	}

	if !admin.ValidatePassword(req.Password) {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
			Success: false,
			Message: "Wrong username or password",
		})
		return
	}

	token, err := utils.GenerateAccessToken(uint(admin.ID), "admin", adminTokenTTL)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to issue token",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Login successful",
		Data: map[string]interface{}{
			"token": token,
			"admin": admin,
		},
	})
}
