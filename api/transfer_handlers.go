package api

import (
	"net/http"
)

func (s *Server) handleSendTransfer(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	var req transferRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	result, err := s.transfers.Send(r.Context(), actor, req.RecipientPhone, req.Amount)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

func (s *Server) handleListTransfers(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	page, limit := paging(r)

	transfers, pagination, err := s.transfers.ListMine(r.Context(), actor, page, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"transfers":  transfers,
		"pagination": pagination,
	})
}
