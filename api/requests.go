package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"arenawallet/models"
	"arenawallet/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// decodeJSON reads and validates a JSON request body
func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body", service.ErrValidation)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s", service.ErrValidation, err)
	}
	return nil
}

// urlID parses the {id} route parameter
func urlID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: invalid id", service.ErrValidation)
	}
	return id, nil
}

// requestFilter builds a request listing filter from query parameters
func requestFilter(r *http.Request) service.RequestFilter {
	page, limit := paging(r)
	filter := service.RequestFilter{
		Search: r.URL.Query().Get("search"),
		Page:   page,
		Limit:  limit,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		st := models.RequestStatus(status)
		filter.Status = &st
	}
	// Only honored for admins; the services pin everyone else to their own id
	if accountID, err := strconv.ParseInt(r.URL.Query().Get("accountId"), 10, 64); err == nil && accountID > 0 {
		filter.AccountID = &accountID
	}
	return filter
}

// paging reads page and limit query parameters with defaults
func paging(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

type registerRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	Phone        string `json:"phone" validate:"required,min=10,max=20"`
	ReferralCode string `json:"referralCode" validate:"omitempty,alphanum"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name    string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone   string `json:"phone" validate:"omitempty,min=10,max=20"`
	Address string `json:"address" validate:"omitempty,max=300"`
}

type topUpRequest struct {
	Amount        int64  `json:"amount" validate:"required,gte=1"`
	TransactionID string `json:"transactionId" validate:"required,max=100"`
}

type withdrawRequest struct {
	Amount        int64  `json:"amount" validate:"required,gte=1"`
	AccountNumber string `json:"accountNumber" validate:"required,min=10,max=20"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=bkash nagad"`
}

type transferRequest struct {
	RecipientPhone string `json:"recipientPhone" validate:"required,min=10,max=20"`
	Amount         int64  `json:"amount" validate:"required,gte=1"`
}

type finalizeRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes" validate:"omitempty,max=500"`
	Amount  *int64 `json:"amount" validate:"omitempty,gte=1"`
}

type prizeClaimRequest struct {
	TournamentID   int64  `json:"tournamentId" validate:"required,gte=1"`
	TournamentCode string `json:"tournamentCode" validate:"required,max=50"`
	PrizeType      string `json:"prizeType" validate:"required,oneof=kill_prize winner_prize both other"`
	Amount         int64  `json:"amount" validate:"required,gte=1"`
	Kills          int    `json:"kills" validate:"omitempty,gte=0"`
	Position       int    `json:"position" validate:"omitempty,gte=0"`
	PlayerName     string `json:"playerName" validate:"required,max=100"`
	PlayerID       string `json:"playerId" validate:"omitempty,max=100"`
	AccountNumber  string `json:"accountNumber" validate:"omitempty,max=20"`
	PaymentMethod  string `json:"paymentMethod" validate:"omitempty,oneof=bkash nagad"`
	Notes          string `json:"notes" validate:"omitempty,max=500"`
}

type distributePrizeRequest struct {
	AccountID int64 `json:"accountId" validate:"required,gte=1"`
	prizeClaimRequest
}

type tournamentRequest struct {
	Title          string `json:"title" validate:"required,max=150"`
	Game           string `json:"game" validate:"omitempty,max=100"`
	Device         string `json:"device" validate:"omitempty,max=50"`
	Mood           string `json:"mood" validate:"omitempty,max=50"`
	TournamentCode string `json:"tournamentCode" validate:"required,max=50"`
	Description    string `json:"description" validate:"omitempty,max=2000"`
	Type           string `json:"type" validate:"omitempty,max=50"`
	Version        string `json:"version" validate:"omitempty,max=50"`
	Map            string `json:"map" validate:"omitempty,max=100"`
	MatchType      string `json:"matchType" validate:"omitempty,max=50"`
	EntryFee       int64  `json:"entryFee" validate:"gte=0"`
	MatchSchedule  string `json:"matchSchedule" validate:"required"`
	WinningPrize   int64  `json:"winningPrize" validate:"gte=0"`
	PerKillPrize   int64  `json:"perKillPrize" validate:"gte=0"`
	Rules          string `json:"rules" validate:"omitempty,max=5000"`
	MaxPlayers     int    `json:"maxPlayers" validate:"required,gte=1"`
	IsActive       *bool  `json:"isActive"`
	IsCompleted    *bool  `json:"isCompleted"`
	RoomID         string `json:"roomId" validate:"omitempty,max=100"`
	RoomPassword   string `json:"roomPassword" validate:"omitempty,max=100"`
}

type registerPlayerRequest struct {
	PlayerName string `json:"playerName" validate:"required,max=100"`
	PlayerID   string `json:"playerId" validate:"required,max=100"`
}

type suspendRequest struct {
	Suspended bool `json:"suspended"`
}
