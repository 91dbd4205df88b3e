package service

import (
	"context"
	"fmt"

	"arenawallet/events"
	"arenawallet/models"
)

// tournamentService implements the TournamentService interface
type tournamentService struct {
	uowFactory UnitOfWorkFactory
}

// NewTournamentService creates a new tournament service
func NewTournamentService(uowFactory UnitOfWorkFactory) TournamentService {
	return &tournamentService{uowFactory: uowFactory}
}

// Create adds a tournament (admin)
func (s *tournamentService) Create(ctx context.Context, actor Actor, tournament *models.Tournament) (*models.Tournament, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if tournament.Title == "" || tournament.TournamentCode == "" {
		return nil, fmt.Errorf("%w: title and tournament code are required", ErrValidation)
	}
	if tournament.EntryFee < 0 {
		return nil, fmt.Errorf("%w: entry fee cannot be negative", ErrValidation)
	}
	if tournament.MaxPlayers < 1 {
		return nil, fmt.Errorf("%w: max players must be at least 1", ErrValidation)
	}

	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		return uow.TournamentRepository().Create(ctx, tournament)
	})
	if err != nil {
		return nil, err
	}

	return tournament, nil
}

// Update modifies tournament metadata (admin)
func (s *tournamentService) Update(ctx context.Context, actor Actor, tournament *models.Tournament) (*models.Tournament, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		existing, err := uow.TournamentRepository().GetByID(ctx, tournament.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("%w: tournament %d", ErrNotFound, tournament.ID)
		}
		return uow.TournamentRepository().Update(ctx, tournament)
	})
	if err != nil {
		return nil, err
	}

	return tournament, nil
}

// Get returns a tournament by id
func (s *tournamentService) Get(ctx context.Context, id int64) (*models.Tournament, error) {
	var tournament *models.Tournament
	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		var err error
		tournament, err = uow.TournamentRepository().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if tournament == nil {
		return nil, ErrNotFound
	}
	return tournament, nil
}

// List returns tournaments, optionally only active ones
func (s *tournamentService) List(ctx context.Context, onlyActive bool) ([]*models.Tournament, error) {
	var tournaments []*models.Tournament
	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		var err error
		tournaments, err = uow.TournamentRepository().List(ctx, onlyActive)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tournaments, nil
}

// Register books a seat for the actor. Checks run first, then the entry
// fee debit, then the registration and the seat increment, all in one
// transaction: a failed debit, a duplicate seat or a full tournament
// rolls everything back.
func (s *tournamentService) Register(ctx context.Context, actor Actor, tournamentID int64, playerName, playerID string) (*models.Registration, error) {
	if err := requireActive(actor); err != nil {
		return nil, err
	}
	if playerName == "" || playerID == "" {
		return nil, fmt.Errorf("%w: player name and player id are required", ErrValidation)
	}

	var registration *models.Registration
	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		tournament, err := uow.TournamentRepository().GetByID(ctx, tournamentID)
		if err != nil {
			return err
		}
		if tournament == nil {
			return fmt.Errorf("%w: tournament %d", ErrNotFound, tournamentID)
		}
		if !tournament.IsActive || tournament.IsCompleted {
			return fmt.Errorf("%w: tournament is not open for registration", ErrValidation)
		}

		registered, err := uow.RegistrationRepository().Exists(ctx, tournamentID, actor.AccountID)
		if err != nil {
			return err
		}
		if registered {
			return fmt.Errorf("%w: already registered for this tournament", ErrDuplicate)
		}

		// Debit before booking, so a player who cannot pay never holds a seat
		if tournament.EntryFee > 0 {
			description := fmt.Sprintf("entry fee for %s", tournament.Title)
			_, err = ApplyDelta(ctx, uow, actor.AccountID, -tournament.EntryFee,
				models.EntryKindEntryFee, description, models.Ref(tournamentID, models.ReferenceKindTournament))
			if err != nil {
				return err
			}
		}

		registration = &models.Registration{
			TournamentID: tournamentID,
			AccountID:    actor.AccountID,
			PlayerName:   playerName,
			PlayerID:     playerID,
		}
		if err := uow.RegistrationRepository().Create(ctx, registration); err != nil {
			return err
		}

		seated, err := uow.TournamentRepository().IncrementPlayers(ctx, tournamentID)
		if err != nil {
			return err
		}
		if !seated {
			return fmt.Errorf("%w: tournament is full", ErrValidation)
		}

		uow.EventBus().Publish(events.PlayerRegisteredEvent{
			TournamentID: tournamentID,
			AccountID:    actor.AccountID,
			EntryFee:     tournament.EntryFee,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return registration, nil
}

// ListMyRegistrations returns the actor's own registrations
func (s *tournamentService) ListMyRegistrations(ctx context.Context, actor Actor) ([]*models.Registration, error) {
	var registrations []*models.Registration
	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		var err error
		registrations, err = uow.RegistrationRepository().ListByAccount(ctx, actor.AccountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return registrations, nil
}

// ListRegistrations returns all registrations for a tournament (admin)
func (s *tournamentService) ListRegistrations(ctx context.Context, actor Actor, tournamentID int64) ([]*models.Registration, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	var registrations []*models.Registration
	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		var err error
		registrations, err = uow.RegistrationRepository().ListByTournament(ctx, tournamentID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return registrations, nil
}
