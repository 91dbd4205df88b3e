package service

import (
	"context"
	"fmt"
)

// Request finalization discipline, shared by the top-up, withdrawal and
// prize flows: the admin check happens first, then the pending → terminal
// status flip runs as a conditional update inside the same transaction as
// the balance side effect. The flip is the exactly-once guard — a request
// someone else finalized concurrently reports zero rows and the whole
// operation rolls back with ErrAlreadyFinalized, so a double approval can
// never credit twice.

// withUnitOfWork runs fn inside one transactional scope, committing on
// success and rolling back on any error
func withUnitOfWork(ctx context.Context, factory UnitOfWorkFactory, fn func(uow UnitOfWork) error) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	if err := fn(uow); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
