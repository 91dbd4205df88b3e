package api

import (
	"net/http"

	"arenawallet/models"
)

func (s *Server) handleSubmitWithdrawal(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	var req withdrawRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	request, err := s.withdrawals.Submit(r.Context(), actor, req.Amount, req.AccountNumber, models.PaymentMethod(req.PaymentMethod))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, request)
}

func (s *Server) handleListWithdrawals(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	requests, pagination, err := s.withdrawals.List(r.Context(), actor, requestFilter(r))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"requests":   requests,
		"pagination": pagination,
	})
}

func (s *Server) handleGetWithdrawal(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	id, err := urlID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	request, err := s.withdrawals.Get(r.Context(), actor, id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, request)
}

func (s *Server) handleFinalizeWithdrawal(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	id, err := urlID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req finalizeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	request, err := s.withdrawals.Finalize(r.Context(), actor, id, req.Approve, req.Notes)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, request)
}
