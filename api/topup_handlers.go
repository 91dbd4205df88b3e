package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"arenawallet/service"
)

func (s *Server) handleSubmitTopUp(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	var (
		amount        int64
		transactionID string
		slipImage     string
	)

	// Submissions with a payment slip arrive as multipart forms
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			respondError(w, r, fmt.Errorf("%w: invalid multipart form", service.ErrValidation))
			return
		}
		amount, _ = strconv.ParseInt(r.FormValue("amount"), 10, 64)
		transactionID = r.FormValue("transactionId")

		path, err := s.optionalUpload(r, "slip")
		if err != nil {
			respondError(w, r, err)
			return
		}
		slipImage = path
	} else {
		var req topUpRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, r, err)
			return
		}
		amount = req.Amount
		transactionID = req.TransactionID
	}

	request, err := s.topUps.Submit(r.Context(), actor, amount, transactionID, slipImage)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, request)
}

func (s *Server) handleListTopUps(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	requests, pagination, err := s.topUps.List(r.Context(), actor, requestFilter(r))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"requests":   requests,
		"pagination": pagination,
	})
}

func (s *Server) handleGetTopUp(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	id, err := urlID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	request, err := s.topUps.Get(r.Context(), actor, id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, request)
}

func (s *Server) handleFinalizeTopUp(w http.ResponseWriter, r *http.Request) {
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

	request, err := s.topUps.Finalize(r.Context(), actor, id, req.Approve, req.Notes)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, request)
}
