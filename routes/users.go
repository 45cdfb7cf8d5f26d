package routes

import (
	"net/http"
	"time"

	"github.com/BronksDEV/luxbrasil-sub000/controllers/auth"
	"github.com/BronksDEV/luxbrasil-sub000/controllers/users"
	"github.com/BronksDEV/luxbrasil-sub000/middleware"

	"github.com/gorilla/mux"
)

// UsersRoutes registers the public auth endpoints and every player-facing
// route on the given subrouter.
func UsersRoutes(api *mux.Router) {
	// Login/register limiter keyed by IP. The session limiter is keyed by
	// user id, so it must run inside the auth middleware that puts the id
	// in the request context.
	loginLimiter := middleware.NewIPRateLimiter(60, 5*time.Minute)
	userLimiter := middleware.NewUserRateLimiter(120, 60, 60) // 120 read, 60 write, 60s window

	// Register & Login
	api.Handle("/register", loginLimiter.Middleware(http.HandlerFunc(auth.RegisterHandler))).Methods(http.MethodPost)
	api.Handle("/login", loginLimiter.Middleware(http.HandlerFunc(auth.LoginHandler))).Methods(http.MethodPost)
	api.Handle("/refresh", loginLimiter.Middleware(http.HandlerFunc(auth.RefreshHandler))).Methods(http.MethodPost)
	api.Handle("/logout", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(auth.LogoutHandler)))).Methods(http.MethodPost)

	// Prize catalog (authenticated read, shows normalized chances)
	api.Handle("/prizes", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.PrizeListHandler)))).Methods(http.MethodGet)

	// Spin engine
	api.Handle("/users/spin", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.SpinHandler)))).Methods(http.MethodPost)
	api.Handle("/users/spin/daily", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.DailySpinHandler)))).Methods(http.MethodPost)
	api.Handle("/users/spin/history", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.SpinHistoryHandler)))).Methods(http.MethodGet)

	// Account
	api.Handle("/users/info", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.InfoHandler)))).Methods(http.MethodGet)
	api.Handle("/users/ledger", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.LedgerHistoryHandler)))).Methods(http.MethodGet)
	api.Handle("/users/team", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.TeamHandler)))).Methods(http.MethodGet)

	// Redemption workflow
	api.Handle("/users/redemptions", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.RedemptionListHandler)))).Methods(http.MethodGet)
	api.Handle("/users/redemptions/{code}/request", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.RequestRedemptionHandler)))).Methods(http.MethodPost)

	// Challenges
	api.Handle("/users/challenges", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.ChallengeListHandler)))).Methods(http.MethodGet)
	api.Handle("/users/challenges/event", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.ChallengeEventHandler)))).Methods(http.MethodPost)
	api.Handle("/users/challenges/{id:[0-9]+}/claim", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.ChallengeClaimHandler)))).Methods(http.MethodPost)
	api.Handle("/users/challenges/{id:[0-9]+}/proof", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.ChallengeProofHandler)))).Methods(http.MethodPost)

	// Store
	api.Handle("/store", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.StoreListHandler)))).Methods(http.MethodGet)
	api.Handle("/store/purchase", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.StorePurchaseHandler)))).Methods(http.MethodPost)

	// Balance event stream; long-lived, so no rate limiter in front of it.
	api.Handle("/users/events", middleware.AuthMiddleware(http.HandlerFunc(users.EventsHandler))).Methods(http.MethodGet)
}
