package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"arenawallet/models"
	"arenawallet/service"
)

func claimFromRequest(req prizeClaimRequest) service.PrizeClaim {
	return service.PrizeClaim{
		TournamentID:   req.TournamentID,
		TournamentCode: req.TournamentCode,
		PrizeType:      models.PrizeType(req.PrizeType),
		Amount:         req.Amount,
		Kills:          req.Kills,
		Position:       req.Position,
		PlayerName:     req.PlayerName,
		PlayerID:       req.PlayerID,
		AccountNumber:  req.AccountNumber,
		PaymentMethod:  req.PaymentMethod,
		Notes:          req.Notes,
	}
}

func claimFromForm(r *http.Request) service.PrizeClaim {
	tournamentID, _ := strconv.ParseInt(r.FormValue("tournamentId"), 10, 64)
	amount, _ := strconv.ParseInt(r.FormValue("amount"), 10, 64)
	kills, _ := strconv.Atoi(r.FormValue("kills"))
	position, _ := strconv.Atoi(r.FormValue("position"))

	return service.PrizeClaim{
		TournamentID:   tournamentID,
		TournamentCode: r.FormValue("tournamentCode"),
		PrizeType:      models.PrizeType(r.FormValue("prizeType")),
		Amount:         amount,
		Kills:          kills,
		Position:       position,
		PlayerName:     r.FormValue("playerName"),
		PlayerID:       r.FormValue("playerId"),
		AccountNumber:  r.FormValue("accountNumber"),
		PaymentMethod:  r.FormValue("paymentMethod"),
		Notes:          r.FormValue("notes"),
	}
}

func (s *Server) handleSubmitPrizeClaim(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	var claim service.PrizeClaim

	// Claims with a proof screenshot arrive as multipart forms
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			respondError(w, r, fmt.Errorf("%w: invalid multipart form", service.ErrValidation))
			return
		}
		claim = claimFromForm(r)

		path, err := s.optionalUpload(r, "proof")
		if err != nil {
			respondError(w, r, err)
			return
		}
		claim.ProofImage = path
	} else {
		var req prizeClaimRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, r, err)
			return
		}
		claim = claimFromRequest(req)
	}

	request, err := s.prizes.SubmitClaim(r.Context(), actor, claim)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, request)
}

func (s *Server) handleListPrizes(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	requests, pagination, err := s.prizes.List(r.Context(), actor, requestFilter(r))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"requests":   requests,
		"pagination": pagination,
	})
}

func (s *Server) handleGetPrize(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	id, err := urlID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	request, err := s.prizes.Get(r.Context(), actor, id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, request)
}

func (s *Server) handleFinalizePrize(w http.ResponseWriter, r *http.Request) {
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

	request, err := s.prizes.Finalize(r.Context(), actor, id, req.Approve, req.Notes, req.Amount)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, request)
}

func (s *Server) handleDistributePrize(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	var req distributePrizeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	request, err := s.prizes.Distribute(r.Context(), actor, req.AccountID, claimFromRequest(req.prizeClaimRequest))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, request)
}
