package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"arenawallet/models"
	"arenawallet/service"
)

func parseSchedule(value string) (time.Time, error) {
	schedule, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: matchSchedule must be RFC 3339", service.ErrValidation)
	}
	return schedule, nil
}

func applyTournamentRequest(t *models.Tournament, req tournamentRequest, schedule time.Time) {
	t.Title = req.Title
	t.Game = req.Game
	t.Device = req.Device
	t.Mood = req.Mood
	t.TournamentCode = req.TournamentCode
	t.Description = req.Description
	t.Type = req.Type
	t.Version = req.Version
	t.Map = req.Map
	t.MatchType = req.MatchType
	t.EntryFee = req.EntryFee
	t.MatchSchedule = schedule
	t.WinningPrize = req.WinningPrize
	t.PerKillPrize = req.PerKillPrize
	t.Rules = req.Rules
	t.MaxPlayers = req.MaxPlayers
	t.RoomID = req.RoomID
	t.RoomPassword = req.RoomPassword
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	if req.IsCompleted != nil {
		t.IsCompleted = *req.IsCompleted
	}
}

func (s *Server) handleListTournaments(w http.ResponseWriter, r *http.Request) {
	onlyActive, _ := strconv.ParseBool(r.URL.Query().Get("active"))

	tournaments, err := s.tournaments.List(r.Context(), onlyActive)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"tournaments": tournaments})
}

func (s *Server) handleGetTournament(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	tournament, err := s.tournaments.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, tournament)
}

func (s *Server) handleCreateTournament(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	var req tournamentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	schedule, err := parseSchedule(req.MatchSchedule)
	if err != nil {
		respondError(w, r, err)
		return
	}

	// New tournaments open for registration unless the request says otherwise
	tournament := &models.Tournament{IsActive: true}
	applyTournamentRequest(tournament, req, schedule)

	created, err := s.tournaments.Create(r.Context(), actor, tournament)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTournament(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	id, err := urlID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req tournamentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	schedule, err := parseSchedule(req.MatchSchedule)
	if err != nil {
		respondError(w, r, err)
		return
	}

	tournament, err := s.tournaments.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	applyTournamentRequest(tournament, req, schedule)

	updated, err := s.tournaments.Update(r.Context(), actor, tournament)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleRegisterPlayer(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	id, err := urlID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req registerPlayerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	registration, err := s.tournaments.Register(r.Context(), actor, id, req.PlayerName, req.PlayerID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, registration)
}

func (s *Server) handleListRegistrations(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	id, err := urlID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	registrations, err := s.tournaments.ListRegistrations(r.Context(), actor, id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"registrations": registrations})
}

func (s *Server) handleMyRegistrations(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	registrations, err := s.tournaments.ListMyRegistrations(r.Context(), actor)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"registrations": registrations})
}
