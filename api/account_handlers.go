package api

import (
	"net/http"
	"time"

	"arenawallet/models"
	"arenawallet/service"
)

// accountView is the public shape of an account; the password hash
// never leaves the service layer through this type
type accountView struct {
	ID                     int64     `json:"id"`
	Name                   string    `json:"name"`
	Email                  string    `json:"email"`
	Role                   string    `json:"role"`
	ProfileImage           string    `json:"profileImage,omitempty"`
	Phone                  string    `json:"phone"`
	Address                string    `json:"address,omitempty"`
	ReferralCode           string    `json:"referralCode"`
	ReferralCount          int       `json:"referralCount"`
	PendingReferralBalance int64     `json:"pendingReferralBalance"`
	Balance                int64     `json:"balance"`
	IsSuspended            bool      `json:"isSuspended"`
	CreatedAt              time.Time `json:"createdAt"`
}

func toAccountView(a *models.Account) accountView {
	return accountView{
		ID:                     a.ID,
		Name:                   a.Name,
		Email:                  a.Email,
		Role:                   string(a.Role),
		ProfileImage:           a.ProfileImage,
		Phone:                  a.Phone,
		Address:                a.Address,
		ReferralCode:           a.ReferralCode,
		ReferralCount:          a.ReferralCount,
		PendingReferralBalance: a.PendingReferralBalance,
		Balance:                a.Balance,
		IsSuspended:            a.IsSuspended,
		CreatedAt:              a.CreatedAt,
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	account, err := s.accounts.Register(r.Context(), req.Name, req.Email, req.Password, req.Phone, req.ReferralCode)
	if err != nil {
		respondError(w, r, err)
		return
	}

	token, err := s.tokens.Issue(account)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"token":   token,
		"account": toAccountView(account),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	account, err := s.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		// Bad credentials are a 401, not the 403 the taxonomy maps to
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid email or password"})
		return
	}

	token, err := s.tokens.Issue(account)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"token":   token,
		"account": toAccountView(account),
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	account, err := s.accounts.GetAccount(r.Context(), actor.AccountID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toAccountView(account))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	account, err := s.accounts.UpdateProfile(r.Context(), actor, actor.AccountID, req.Name, req.Phone, req.Address, "")
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toAccountView(account))
}

func (s *Server) handleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	path, err := s.saveUpload(r, "avatar")
	if err != nil {
		respondError(w, r, err)
		return
	}

	account, err := s.accounts.UpdateProfile(r.Context(), actor, actor.AccountID, "", "", "", path)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toAccountView(account))
}

func (s *Server) handleReferralSummary(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	summary, err := s.accounts.ReferralSummary(r.Context(), actor.AccountID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	referred := make([]accountView, 0, len(summary.Referred))
	for _, a := range summary.Referred {
		referred = append(referred, toAccountView(a))
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"referralCode":   summary.ReferralCode,
		"referralCount":  summary.ReferralCount,
		"pendingBalance": summary.PendingBalance,
		"referred":       referred,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	page, limit := paging(r)

	filter := service.LedgerFilter{
		Search: r.URL.Query().Get("search"),
		Page:   page,
		Limit:  limit,
	}
	if kind := r.URL.Query().Get("kind"); kind != "" {
		k := models.EntryKind(kind)
		filter.Kind = &k
	}

	entries, pagination, err := s.accounts.History(r.Context(), actor.AccountID, filter)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"entries":    entries,
		"pagination": pagination,
	})
}

func (s *Server) handleAdminLedger(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	entries, pagination, err := s.accounts.ListLedger(r.Context(), actor, requestFilter(r))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"entries":    entries,
		"pagination": pagination,
	})
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	accounts, err := s.accounts.ListAccounts(r.Context(), actor)
	if err != nil {
		respondError(w, r, err)
		return
	}

	views := make([]accountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, toAccountView(a))
	}

	respondJSON(w, http.StatusOK, map[string]any{"accounts": views})
}

func (s *Server) handlePromote(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	id, err := urlID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.accounts.Promote(r.Context(), actor, id); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "promoted"})
}

func (s *Server) handleSuspend(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	id, err := urlID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req suspendRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.accounts.Suspend(r.Context(), actor, id, req.Suspended); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"suspended": req.Suspended})
}
