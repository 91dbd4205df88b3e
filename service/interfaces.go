package service

import (
	"context"

	"arenawallet/events"
	"arenawallet/models"
)

// LedgerFilter narrows ledger history listings
type LedgerFilter struct {
	Kind   *models.EntryKind
	Search string
	Page   int
	Limit  int
}

// RequestFilter narrows request listings
type RequestFilter struct {
	Status    *models.RequestStatus
	AccountID *int64
	Search    string
	Page      int
	Limit     int
}

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	// GetByID retrieves an account by id, nil if not found
	GetByID(ctx context.Context, id int64) (*models.Account, error)

	// GetByEmail retrieves an account by email, nil if not found
	GetByEmail(ctx context.Context, email string) (*models.Account, error)

	// GetByPhone retrieves an account by phone number, nil if not found
	GetByPhone(ctx context.Context, phone string) (*models.Account, error)

	// GetByReferralCode retrieves an account by referral code, nil if not found
	GetByReferralCode(ctx context.Context, code string) (*models.Account, error)

	// Create inserts a new account and fills its id and timestamps
	Create(ctx context.Context, account *models.Account) error

	// UpdateProfile updates the mutable profile fields
	UpdateProfile(ctx context.Context, account *models.Account) error

	// AddBalance credits an account atomically and returns the new balance
	AddBalance(ctx context.Context, id int64, amount int64) (int64, error)

	// DeductBalance debits an account atomically, failing with
	// ErrInsufficientFunds when the balance check and decrement cannot
	// both succeed in the same statement. Returns the new balance.
	DeductBalance(ctx context.Context, id int64, amount int64) (int64, error)

	// AccruePendingReferral adds to the pending referral balance and
	// bumps the referral count
	AccruePendingReferral(ctx context.Context, id int64, amount int64) error

	// DrainPendingReferral atomically converts up to max of the pending
	// referral balance, returning the drained amount
	DrainPendingReferral(ctx context.Context, id int64, max int64) (int64, error)

	// SetSuspended soft-suspends or reinstates an account
	SetSuspended(ctx context.Context, id int64, suspended bool) error

	// SetRole changes an account's role
	SetRole(ctx context.Context, id int64, role models.Role) error

	// ListReferred returns accounts referred by the given account
	ListReferred(ctx context.Context, referrerID int64) ([]*models.Account, error)

	// GetAll returns all accounts
	GetAll(ctx context.Context) ([]*models.Account, error)
}

// LedgerRepository defines the interface for the append-only ledger
type LedgerRepository interface {
	// Record appends a ledger entry and fills its id and timestamp
	Record(ctx context.Context, entry *models.LedgerEntry) error

	// ListByAccount returns one page of an account's entries plus the total count
	ListByAccount(ctx context.Context, accountID int64, filter LedgerFilter) ([]*models.LedgerEntry, int64, error)

	// List returns one page of all entries plus the total count
	List(ctx context.Context, filter RequestFilter) ([]*models.LedgerEntry, int64, error)

	// SumByAccount returns the sum of all entry amounts for an account
	SumByAccount(ctx context.Context, accountID int64) (int64, error)
}

// TopUpRepository defines the interface for top-up request data access
type TopUpRepository interface {
	Create(ctx context.Context, request *models.TopUpRequest) error
	GetByID(ctx context.Context, id int64) (*models.TopUpRequest, error)

	// Finalize flips a pending request to a terminal status. Returns
	// false when the request was not pending, without modifying it.
	Finalize(ctx context.Context, id int64, status models.RequestStatus, notes string) (bool, error)

	List(ctx context.Context, filter RequestFilter) ([]*models.TopUpRequest, int64, error)
}

// WithdrawalRepository defines the interface for withdrawal request data access
type WithdrawalRepository interface {
	Create(ctx context.Context, request *models.WithdrawalRequest) error
	GetByID(ctx context.Context, id int64) (*models.WithdrawalRequest, error)

	// Finalize flips a pending request to a terminal status. Returns
	// false when the request was not pending, without modifying it.
	Finalize(ctx context.Context, id int64, status models.RequestStatus, notes string) (bool, error)

	List(ctx context.Context, filter RequestFilter) ([]*models.WithdrawalRequest, int64, error)
}

// PrizeRepository defines the interface for prize request data access
type PrizeRepository interface {
	Create(ctx context.Context, request *models.PrizeRequest) error
	GetByID(ctx context.Context, id int64) (*models.PrizeRequest, error)

	// Finalize flips a pending request to a terminal status, optionally
	// overriding the amount. Returns false when the request was not pending.
	Finalize(ctx context.Context, id int64, status models.RequestStatus, notes string, amount *int64) (bool, error)

	List(ctx context.Context, filter RequestFilter) ([]*models.PrizeRequest, int64, error)
}

// TransferRepository defines the interface for transfer records
type TransferRepository interface {
	Create(ctx context.Context, transfer *models.Transfer) error

	// ListByAccount returns transfers where the account is sender or recipient
	ListByAccount(ctx context.Context, accountID int64, page, limit int) ([]*models.Transfer, int64, error)
}

// TournamentRepository defines the interface for tournament metadata
type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int64) (*models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error

	// IncrementPlayers bumps players_registered if a seat remains.
	// Returns false when the tournament is full.
	IncrementPlayers(ctx context.Context, id int64) (bool, error)

	List(ctx context.Context, onlyActive bool) ([]*models.Tournament, error)
}

// RegistrationRepository defines the interface for tournament registrations
type RegistrationRepository interface {
	Create(ctx context.Context, registration *models.Registration) error
	Exists(ctx context.Context, tournamentID, accountID int64) (bool, error)
	ListByTournament(ctx context.Context, tournamentID int64) ([]*models.Registration, error)
	ListByAccount(ctx context.Context, accountID int64) ([]*models.Registration, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork represents one transactional scope over the repositories
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	AccountRepository() AccountRepository
	LedgerRepository() LedgerRepository
	TopUpRepository() TopUpRepository
	WithdrawalRepository() WithdrawalRepository
	PrizeRepository() PrizeRepository
	TransferRepository() TransferRepository
	TournamentRepository() TournamentRepository
	RegistrationRepository() RegistrationRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// AccountService defines account, auth and history operations
type AccountService interface {
	// Register creates an account, hashing the password and crediting
	// the referrer's pending referral balance when a valid code is given
	Register(ctx context.Context, name, email, password, phone, referralCode string) (*models.Account, error)

	// Authenticate verifies credentials and returns the account
	Authenticate(ctx context.Context, email, password string) (*models.Account, error)

	// GetAccount returns an account by id
	GetAccount(ctx context.Context, id int64) (*models.Account, error)

	// UpdateProfile updates the caller's own profile (or any, for admins)
	UpdateProfile(ctx context.Context, actor Actor, id int64, name, phone, address, profileImage string) (*models.Account, error)

	// History returns the balance plus one page of ledger entries
	History(ctx context.Context, accountID int64, filter LedgerFilter) ([]*models.LedgerEntry, models.Pagination, error)

	// ReferralSummary returns the referral code, counts and referred accounts
	ReferralSummary(ctx context.Context, accountID int64) (*ReferralSummary, error)

	// ListLedger returns one page of all accounts' ledger entries (admin)
	ListLedger(ctx context.Context, actor Actor, filter RequestFilter) ([]*models.LedgerEntry, models.Pagination, error)

	// ListAccounts returns all accounts (admin)
	ListAccounts(ctx context.Context, actor Actor) ([]*models.Account, error)

	// Promote grants the admin role (admin)
	Promote(ctx context.Context, actor Actor, id int64) error

	// Suspend soft-suspends or reinstates an account (admin)
	Suspend(ctx context.Context, actor Actor, id int64, suspended bool) error
}

// ReferralSummary describes an account's referral standing
type ReferralSummary struct {
	ReferralCode   string
	ReferralCount  int
	PendingBalance int64
	Referred       []*models.Account
}

// TopUpService defines the deposit request flow
type TopUpService interface {
	Submit(ctx context.Context, actor Actor, amount int64, transactionID, slipImage string) (*models.TopUpRequest, error)
	Get(ctx context.Context, actor Actor, id int64) (*models.TopUpRequest, error)
	Finalize(ctx context.Context, actor Actor, id int64, approve bool, notes string) (*models.TopUpRequest, error)
	List(ctx context.Context, actor Actor, filter RequestFilter) ([]*models.TopUpRequest, models.Pagination, error)
}

// WithdrawalService defines the payout request flow
type WithdrawalService interface {
	Submit(ctx context.Context, actor Actor, amount int64, accountNumber string, method models.PaymentMethod) (*models.WithdrawalRequest, error)
	Get(ctx context.Context, actor Actor, id int64) (*models.WithdrawalRequest, error)
	Finalize(ctx context.Context, actor Actor, id int64, complete bool, notes string) (*models.WithdrawalRequest, error)
	List(ctx context.Context, actor Actor, filter RequestFilter) ([]*models.WithdrawalRequest, models.Pagination, error)
}

// PrizeClaim carries the player-supplied fields of a prize request
type PrizeClaim struct {
	TournamentID   int64
	TournamentCode string
	PrizeType      models.PrizeType
	Amount         int64
	Kills          int
	Position       int
	PlayerName     string
	PlayerID       string
	AccountNumber  string
	PaymentMethod  string
	ProofImage     string
	Notes          string
}

// PrizeService defines the prize claim and distribution flows
type PrizeService interface {
	SubmitClaim(ctx context.Context, actor Actor, claim PrizeClaim) (*models.PrizeRequest, error)
	Get(ctx context.Context, actor Actor, id int64) (*models.PrizeRequest, error)

	// Finalize approves or rejects a pending claim; amount overrides the
	// claimed amount on approval when non-nil (must be >= 1)
	Finalize(ctx context.Context, actor Actor, id int64, approve bool, notes string, amount *int64) (*models.PrizeRequest, error)

	// Distribute creates an already-approved prize and credits it (admin)
	Distribute(ctx context.Context, actor Actor, accountID int64, claim PrizeClaim) (*models.PrizeRequest, error)

	List(ctx context.Context, actor Actor, filter RequestFilter) ([]*models.PrizeRequest, models.Pagination, error)
}

// TransferService defines the peer-to-peer transfer flow
type TransferService interface {
	Send(ctx context.Context, actor Actor, recipientPhone string, amount int64) (*models.TransferResult, error)
	ListMine(ctx context.Context, actor Actor, page, limit int) ([]*models.Transfer, models.Pagination, error)
}

// TournamentService defines tournament metadata and paid registration
type TournamentService interface {
	Create(ctx context.Context, actor Actor, tournament *models.Tournament) (*models.Tournament, error)
	Update(ctx context.Context, actor Actor, tournament *models.Tournament) (*models.Tournament, error)
	Get(ctx context.Context, id int64) (*models.Tournament, error)
	List(ctx context.Context, onlyActive bool) ([]*models.Tournament, error)

	// Register debits the entry fee and books a seat; the debit always
	// precedes the registration record and the seat increment
	Register(ctx context.Context, actor Actor, tournamentID int64, playerName, playerID string) (*models.Registration, error)

	ListRegistrations(ctx context.Context, actor Actor, tournamentID int64) ([]*models.Registration, error)

	// ListMyRegistrations returns the actor's own registrations
	ListMyRegistrations(ctx context.Context, actor Actor) ([]*models.Registration, error)
}
