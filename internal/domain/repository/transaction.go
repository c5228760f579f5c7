package repository

import "context"

// RepositoryFactory creates repository instances bound to one transaction.
type RepositoryFactory interface {
	LinkRepo() LinkRepository
	SessionRepo() SessionRepository
	IdentityRepo() IdentityRepository
}

// TransactionManager runs a unit of work inside a single store transaction.
// It is used where an operation spans more than one table, such as confirming
// a link handshake; single-statement upserts do not need it.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(repoFactory RepositoryFactory) error) error
}
