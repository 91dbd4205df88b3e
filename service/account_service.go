package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"arenawallet/events"
	"arenawallet/models"

	"golang.org/x/crypto/bcrypt"
)

const referralCodeLength = 8

// accountService implements the AccountService interface
type accountService struct {
	uowFactory      UnitOfWorkFactory
	startingBalance int64
	referralBonus   int64
}

// NewAccountService creates a new account service
func NewAccountService(uowFactory UnitOfWorkFactory, startingBalance, referralBonus int64) AccountService {
	return &accountService{
		uowFactory:      uowFactory,
		startingBalance: startingBalance,
		referralBonus:   referralBonus,
	}
}

// Register creates an account, hashing the password and crediting the
// referrer's pending referral balance when a valid code was supplied
func (s *accountService) Register(ctx context.Context, name, email, password, phone, referralCode string) (*models.Account, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)

	if name == "" || email == "" || phone == "" {
		return nil, fmt.Errorf("%w: name, email and phone are required", ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var account *models.Account
	err = withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		accountRepo := uow.AccountRepository()

		existing, err := accountRepo.GetByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("failed to check existing email: %w", err)
		}
		if existing != nil {
			return fmt.Errorf("%w: email already registered", ErrDuplicate)
		}

		existing, err = accountRepo.GetByPhone(ctx, phone)
		if err != nil {
			return fmt.Errorf("failed to check existing phone: %w", err)
		}
		if existing != nil {
			return fmt.Errorf("%w: phone already registered", ErrDuplicate)
		}

		// Resolve the referral code before creating the account so an
		// invalid code fails the registration rather than silently dropping
		var referrerID *int64
		if referralCode != "" {
			referrer, err := accountRepo.GetByReferralCode(ctx, strings.ToUpper(referralCode))
			if err != nil {
				return fmt.Errorf("failed to look up referral code: %w", err)
			}
			if referrer == nil {
				return fmt.Errorf("%w: invalid referral code", ErrValidation)
			}
			referrerID = &referrer.ID
		}

		code, err := generateReferralCode(ctx, accountRepo)
		if err != nil {
			return err
		}

		account = &models.Account{
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
			Role:         models.RoleUser,
			Phone:        phone,
			ReferralCode: code,
			ReferredBy:   referrerID,
			Balance:      s.startingBalance,
		}
		if err := accountRepo.Create(ctx, account); err != nil {
			return err
		}

		if s.startingBalance > 0 {
			entry := &models.LedgerEntry{
				AccountID:   account.ID,
				Amount:      s.startingBalance,
				Kind:        models.EntryKindInitial,
				Description: "starting balance",
			}
			if err := uow.LedgerRepository().Record(ctx, entry); err != nil {
				return fmt.Errorf("failed to record starting balance: %w", err)
			}
		}

		// The referrer's reward stays pending until the new account's
		// first approved top-up converts it
		if referrerID != nil {
			if err := accountRepo.AccruePendingReferral(ctx, *referrerID, s.referralBonus); err != nil {
				return fmt.Errorf("failed to accrue referral bonus: %w", err)
			}
		}

		uow.EventBus().Publish(events.AccountCreatedEvent{
			AccountID:  account.ID,
			Email:      account.Email,
			ReferredBy: referrerID,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// Authenticate verifies credentials and returns the account
func (s *accountService) Authenticate(ctx context.Context, email, password string) (*models.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var account *models.Account
	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		var err error
		account, err = uow.AccountRepository().GetByEmail(ctx, email)
		return err
	})
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: unknown email or wrong password", ErrNotAuthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: unknown email or wrong password", ErrNotAuthorized)
	}

	return account, nil
}

// GetAccount returns an account by id
func (s *accountService) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	var account *models.Account
	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		var err error
		account, err = uow.AccountRepository().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrNotFound
	}
	return account, nil
}

// UpdateProfile updates the caller's own profile, or any profile for admins
func (s *accountService) UpdateProfile(ctx context.Context, actor Actor, id int64, name, phone, address, profileImage string) (*models.Account, error) {
	if actor.AccountID != id && !actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}

	var account *models.Account
	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		accountRepo := uow.AccountRepository()

		var err error
		account, err = accountRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if account == nil {
			return ErrNotFound
		}

		if name != "" {
			account.Name = strings.TrimSpace(name)
		}
		if phone != "" {
			phone = strings.TrimSpace(phone)
			if phone != account.Phone {
				existing, err := accountRepo.GetByPhone(ctx, phone)
				if err != nil {
					return fmt.Errorf("failed to check existing phone: %w", err)
				}
				if existing != nil && existing.ID != id {
					return fmt.Errorf("%w: phone already registered", ErrDuplicate)
				}
				account.Phone = phone
			}
		}
		if address != "" {
			account.Address = address
		}
		if profileImage != "" {
			account.ProfileImage = profileImage
		}

		return accountRepo.UpdateProfile(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// History returns one page of an account's ledger entries
func (s *accountService) History(ctx context.Context, accountID int64, filter LedgerFilter) ([]*models.LedgerEntry, models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	var entries []*models.LedgerEntry
	var total int64
	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		var err error
		entries, total, err = uow.LedgerRepository().ListByAccount(ctx, accountID, filter)
		return err
	})
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return entries, models.NewPagination(total, filter.Page, filter.Limit), nil
}

// ReferralSummary returns the referral code, counts and referred accounts
func (s *accountService) ReferralSummary(ctx context.Context, accountID int64) (*ReferralSummary, error) {
	var summary *ReferralSummary
	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		accountRepo := uow.AccountRepository()

		account, err := accountRepo.GetByID(ctx, accountID)
		if err != nil {
			return err
		}
		if account == nil {
			return ErrNotFound
		}

		referred, err := accountRepo.ListReferred(ctx, accountID)
		if err != nil {
			return err
		}

		summary = &ReferralSummary{
			ReferralCode:   account.ReferralCode,
			ReferralCount:  account.ReferralCount,
			PendingBalance: account.PendingReferralBalance,
			Referred:       referred,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// ListLedger returns one page of all accounts' ledger entries (admin)
func (s *accountService) ListLedger(ctx context.Context, actor Actor, filter RequestFilter) ([]*models.LedgerEntry, models.Pagination, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, models.Pagination{}, err
	}
	normalizeRequestFilter(&filter)

	var entries []*models.LedgerEntry
	var total int64
	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		var err error
		entries, total, err = uow.LedgerRepository().List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return entries, models.NewPagination(total, filter.Page, filter.Limit), nil
}

// ListAccounts returns all accounts (admin)
func (s *accountService) ListAccounts(ctx context.Context, actor Actor) ([]*models.Account, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	var accounts []*models.Account
	err := withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		var err error
		accounts, err = uow.AccountRepository().GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

// Promote grants the admin role (admin)
func (s *accountService) Promote(ctx context.Context, actor Actor, id int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	return withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		account, err := uow.AccountRepository().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if account == nil {
			return ErrNotFound
		}
		return uow.AccountRepository().SetRole(ctx, id, models.RoleAdmin)
	})
}

// Suspend soft-suspends or reinstates an account (admin)
func (s *accountService) Suspend(ctx context.Context, actor Actor, id int64, suspended bool) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if actor.AccountID == id {
		return fmt.Errorf("%w: cannot suspend yourself", ErrValidation)
	}

	return withUnitOfWork(ctx, s.uowFactory, func(uow UnitOfWork) error {
		account, err := uow.AccountRepository().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if account == nil {
			return ErrNotFound
		}
		return uow.AccountRepository().SetSuspended(ctx, id, suspended)
	})
}

// generateReferralCode produces a short unique uppercase code, retrying
// on the unlikely collision
func generateReferralCode(ctx context.Context, repo AccountRepository) (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	for attempt := 0; attempt < 5; attempt++ {
		code := make([]byte, referralCodeLength)
		for i := range code {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
			if err != nil {
				return "", fmt.Errorf("failed to generate referral code: %w", err)
			}
			code[i] = alphabet[n.Int64()]
		}

		existing, err := repo.GetByReferralCode(ctx, string(code))
		if err != nil {
			return "", fmt.Errorf("failed to check referral code: %w", err)
		}
		if existing == nil {
			return string(code), nil
		}
	}

	return "", fmt.Errorf("failed to generate a unique referral code")
}
