package routes

import (
	"net/http"
	"time"

	"github.com/BronksDEV/luxbrasil-sub000/controllers/admins"
	"github.com/BronksDEV/luxbrasil-sub000/middleware"

	"github.com/gorilla/mux"
)

func SetAdminRoutes(api *mux.Router) {
	// Rate limiter for admin login: 5 attempts per IP per minute
	adminLoginLimiter := middleware.NewIPRateLimiter(5, time.Minute)

	// Public admin routes
	api.Handle("/admin/login", adminLoginLimiter.Middleware(http.HandlerFunc(admins.Login))).Methods(http.MethodPost)

	// Protected admin routes
	adminRouter := api.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.AdminAuthMiddleware)

	// Dashboard stats
	adminRouter.Handle("/dashboard", http.HandlerFunc(admins.GetDashboardStats)).Methods(http.MethodGet)

	// User management
	adminRouter.Handle("/users", http.HandlerFunc(admins.GetUsers)).Methods(http.MethodGet)
	adminRouter.Handle("/users/{id:[0-9]+}", http.HandlerFunc(admins.GetUserDetail)).Methods(http.MethodGet)
	adminRouter.Handle("/users/{id:[0-9]+}/ban", http.HandlerFunc(admins.SetUserBanHandler)).Methods(http.MethodPost)
	adminRouter.Handle("/users/{id:[0-9]+}/adjust", http.HandlerFunc(admins.AdjustBalanceHandler)).Methods(http.MethodPost)

	// Prize catalog management
	adminRouter.Handle("/prizes", http.HandlerFunc(admins.GetPrizes)).Methods(http.MethodGet)
	adminRouter.Handle("/prizes", http.HandlerFunc(admins.CreatePrize)).Methods(http.MethodPost)
	adminRouter.Handle("/prizes/{id:[0-9]+}", http.HandlerFunc(admins.UpdatePrize)).Methods(http.MethodPut)
	adminRouter.Handle("/prizes/{id:[0-9]+}", http.HandlerFunc(admins.DeletePrize)).Methods(http.MethodDelete)

	// Redemption queue
	adminRouter.Handle("/redemptions", http.HandlerFunc(admins.RedemptionsHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/redemptions/{id:[0-9]+}/redeem", http.HandlerFunc(admins.RedeemRedemptionHandler)).Methods(http.MethodPost)
	adminRouter.Handle("/redemptions/{id:[0-9]+}/refuse", http.HandlerFunc(admins.RefuseRedemptionHandler)).Methods(http.MethodPost)

	// Challenge management and manual review
	adminRouter.Handle("/challenges", http.HandlerFunc(admins.GetChallenges)).Methods(http.MethodGet)
	adminRouter.Handle("/challenges", http.HandlerFunc(admins.CreateChallenge)).Methods(http.MethodPost)
	adminRouter.Handle("/challenges/{id:[0-9]+}", http.HandlerFunc(admins.UpdateChallenge)).Methods(http.MethodPut)
	adminRouter.Handle("/challenges/{id:[0-9]+}", http.HandlerFunc(admins.DeleteChallenge)).Methods(http.MethodDelete)
	adminRouter.Handle("/challenges/review", http.HandlerFunc(admins.ChallengeReviewQueueHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/challenges/review/{id:[0-9]+}/approve", http.HandlerFunc(admins.ApproveChallengeHandler)).Methods(http.MethodPost)
	adminRouter.Handle("/challenges/review/{id:[0-9]+}/reject", http.HandlerFunc(admins.RejectChallengeHandler)).Methods(http.MethodPost)

	// Store item management
	adminRouter.Handle("/store-items", http.HandlerFunc(admins.GetStoreItems)).Methods(http.MethodGet)
	adminRouter.Handle("/store-items", http.HandlerFunc(admins.CreateStoreItem)).Methods(http.MethodPost)
	adminRouter.Handle("/store-items/{id:[0-9]+}", http.HandlerFunc(admins.UpdateStoreItem)).Methods(http.MethodPut)
	adminRouter.Handle("/store-items/{id:[0-9]+}", http.HandlerFunc(admins.DeleteStoreItem)).Methods(http.MethodDelete)

	// Settings
	adminRouter.Handle("/settings", http.HandlerFunc(admins.GetSettingsHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/settings", http.HandlerFunc(admins.UpdateSettingsHandler)).Methods(http.MethodPut)

	// Live cross-user event stream
	adminRouter.Handle("/events", http.HandlerFunc(admins.EventsHandler)).Methods(http.MethodGet)
}
