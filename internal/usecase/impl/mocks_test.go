package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"loyaltysync/config"
	"loyaltysync/internal/domain/entity"
	"loyaltysync/internal/domain/repository"
	"loyaltysync/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockLinkRepository mocks the repository.LinkRepository interface
type MockLinkRepository struct {
	mock.Mock
}

func (m *MockLinkRepository) FindActiveLinkByExternalID(ctx context.Context, externalID string) (*entity.AccountLink, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.AccountLink), args.Error(1)
}

func (m *MockLinkRepository) FindAccountByUsername(ctx context.Context, username string) (*entity.AccountLink, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.AccountLink), args.Error(1)
}

func (m *MockLinkRepository) UpsertLink(ctx context.Context, externalID, username string, method entity.LinkMethod) (*entity.AccountLink, error) {
	args := m.Called(ctx, externalID, username, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.AccountLink), args.Error(1)
}

// MockLedgerRepository mocks the repository.LedgerRepository interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) ListTransactions(ctx context.Context, filter *entity.TransactionFilter) ([]*entity.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) CountTransactions(ctx context.Context, filter *entity.TransactionFilter) (int64, error) {
	args := m.Called(ctx, filter)

	return args.Get(0).(int64), args.Error(1)
}

// MockSessionRepository mocks the repository.SessionRepository interface
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) UpsertSession(ctx context.Context, session *entity.SyncSession) error {
	args := m.Called(ctx, session)

	return args.Error(0)
}

func (m *MockSessionRepository) FindBySyncID(ctx context.Context, syncID string) (*entity.SyncSession, error) {
	args := m.Called(ctx, syncID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.SyncSession), args.Error(1)
}

func (m *MockSessionRepository) MarkLinked(ctx context.Context, syncID string) error {
	args := m.Called(ctx, syncID)

	return args.Error(0)
}

// MockIdentityRepository mocks the repository.IdentityRepository interface
type MockIdentityRepository struct {
	mock.Mock
}

func (m *MockIdentityRepository) UpsertIdentity(ctx context.Context, identity *entity.ExternalIdentity) error {
	args := m.Called(ctx, identity)

	return args.Error(0)
}

// MockAuditRecorder mocks the service.AuditRecorder interface
type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(ctx context.Context, event *service.AuditEvent) {
	m.Called(ctx, event)
}

// MockEventPublisher mocks the service.EventPublisher interface
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishLinkEvent(ctx context.Context, event *service.LinkEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}

// MockQRCodeService mocks the service.QRCodeService interface
type MockQRCodeService struct {
	mock.Mock
}

func (m *MockQRCodeService) GenerateLoginQR(loginURL string) ([]byte, error) {
	args := m.Called(loginURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}

// stubTxManager runs the unit of work against a fixed repository factory, or
// fails without invoking it when err is set.
type stubTxManager struct {
	factory repository.RepositoryFactory
	err     error
}

func (m *stubTxManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if m.err != nil {
		return m.err
	}

	return fn(m.factory)
}

// stubRepoFactory hands out the configured repositories as if bound to one
// transaction.
type stubRepoFactory struct {
	linkRepo     repository.LinkRepository
	sessionRepo  repository.SessionRepository
	identityRepo repository.IdentityRepository
}

func (f *stubRepoFactory) LinkRepo() repository.LinkRepository         { return f.linkRepo }
func (f *stubRepoFactory) SessionRepo() repository.SessionRepository   { return f.sessionRepo }
func (f *stubRepoFactory) IdentityRepo() repository.IdentityRepository { return f.identityRepo }

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSyncConfig(ttl time.Duration, loginBaseURL string) *config.Config {
	cfg := &config.Config{}
	cfg.Sync = &config.SyncConfig{
		SessionTTL:   ttl,
		LoginBaseURL: loginBaseURL,
	}

	return cfg
}
