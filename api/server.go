package api

import (
	"net/http"
	"time"

	"arenawallet/service"
	"arenawallet/uploads"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server wires the wallet services into an HTTP API
type Server struct {
	accounts    service.AccountService
	topUps      service.TopUpService
	withdrawals service.WithdrawalService
	prizes      service.PrizeService
	transfers   service.TransferService
	tournaments service.TournamentService
	tokens      *TokenIssuer
	uploads     uploads.Store
	uploadDir   string
}

// Config carries the server's collaborators
type Config struct {
	Accounts    service.AccountService
	TopUps      service.TopUpService
	Withdrawals service.WithdrawalService
	Prizes      service.PrizeService
	Transfers   service.TransferService
	Tournaments service.TournamentService
	Tokens      *TokenIssuer
	Uploads     uploads.Store
	UploadDir   string
}

// NewServer creates the API server
func NewServer(cfg Config) *Server {
	return &Server{
		accounts:    cfg.Accounts,
		topUps:      cfg.TopUps,
		withdrawals: cfg.Withdrawals,
		prizes:      cfg.Prizes,
		transfers:   cfg.Transfers,
		tournaments: cfg.Tournaments,
		tokens:      cfg.Tokens,
		uploads:     cfg.Uploads,
		uploadDir:   cfg.UploadDir,
	}
}

// Router builds the route tree
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Uploaded slips and proof images
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadDir)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Get("/tournaments", s.handleListTournaments)
		r.Get("/tournaments/{id}", s.handleGetTournament)

		r.Group(func(r chi.Router) {
			r.Use(s.RequireAuth)

			r.Get("/me", s.handleMe)
			r.Put("/me", s.handleUpdateProfile)
			r.Post("/me/avatar", s.handleUploadAvatar)
			r.Get("/me/history", s.handleHistory)
			r.Get("/me/referrals", s.handleReferralSummary)
			r.Get("/me/registrations", s.handleMyRegistrations)

			r.Post("/topups", s.handleSubmitTopUp)
			r.Get("/topups", s.handleListTopUps)
			r.Get("/topups/{id}", s.handleGetTopUp)

			r.Post("/withdrawals", s.handleSubmitWithdrawal)
			r.Get("/withdrawals", s.handleListWithdrawals)
			r.Get("/withdrawals/{id}", s.handleGetWithdrawal)

			r.Post("/transfers", s.handleSendTransfer)
			r.Get("/transfers", s.handleListTransfers)

			r.Post("/prizes", s.handleSubmitPrizeClaim)
			r.Get("/prizes", s.handleListPrizes)
			r.Get("/prizes/{id}", s.handleGetPrize)

			r.Post("/tournaments/{id}/register", s.handleRegisterPlayer)

			r.Route("/admin", func(r chi.Router) {
				r.Use(s.RequireAdmin)

				r.Get("/accounts", s.handleListAccounts)
				r.Get("/ledger", s.handleAdminLedger)
				r.Post("/accounts/{id}/promote", s.handlePromote)
				r.Post("/accounts/{id}/suspend", s.handleSuspend)

				r.Post("/topups/{id}/finalize", s.handleFinalizeTopUp)
				r.Post("/withdrawals/{id}/finalize", s.handleFinalizeWithdrawal)
				r.Post("/prizes/{id}/finalize", s.handleFinalizePrize)
				r.Post("/prizes/distribute", s.handleDistributePrize)

				r.Post("/tournaments", s.handleCreateTournament)
				r.Put("/tournaments/{id}", s.handleUpdateTournament)
				r.Get("/tournaments/{id}/registrations", s.handleListRegistrations)
			})
		})
	})

	return r
}
