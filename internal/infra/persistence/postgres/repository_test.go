package postgres

import (
	"context"
	"testing"
	"time"

	"loyaltysync/config"
	"loyaltysync/internal/domain/entity"
	"loyaltysync/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Discard,
	})
	require.NoError(t, err)

	return db, mock
}

func newStoreTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Postgres = &config.PostgresConfig{QueryTimeout: time.Second}

	return cfg
}

func TestLedgerRepository_ListTransactions_QueryShape(t *testing.T) {
	db, mock := newMockGorm(t)
	repo := NewLedgerRepository(db, newStoreTestConfig())

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "transaction_id", "type", "amount", "balance_before", "balance_after", "created_at"}).
		AddRow(2, "tx-b", "purchase", "9.99", "50.00", "40.01", to).
		AddRow(1, "tx-a", "purchase", "5.00", "55.00", "50.00", from)
	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE loyalty_username = .+ AND type = .+ AND created_at >= .+ AND created_at <= .+ ORDER BY created_at DESC, id DESC LIMIT`).
		WillReturnRows(rows)

	txs, err := repo.ListTransactions(context.Background(), &entity.TransactionFilter{
		LoyaltyUsername: "alice",
		Type:            "purchase",
		DateFrom:        &from,
		DateTo:          &to,
		Limit:           10,
		Offset:          0,
	})
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "tx-b", txs[0].TransactionID)
	assert.Equal(t, "9.99", txs[0].Amount.StringFixed(2))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_CountTransactions_SharesPredicate(t *testing.T) {
	db, mock := newMockGorm(t)
	repo := NewLedgerRepository(db, newStoreTestConfig())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "transactions" WHERE loyalty_username = .+ AND type = `).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	total, err := repo.CountTransactions(context.Background(), &entity.TransactionFilter{
		LoyaltyUsername: "alice",
		Type:            "refund",
		Limit:           10,
		Offset:          20,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLinkRepository_UpsertLink_SingleStatementConflict(t *testing.T) {
	db, mock := newMockGorm(t)
	repo := NewLinkRepository(db, newStoreTestConfig())

	mock.ExpectQuery(`INSERT INTO "account_links" .+ON CONFLICT \("external_id","loyalty_username"\) DO UPDATE SET`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	link, err := repo.UpsertLink(context.Background(), "ext-1", "alice", entity.LinkMethodSync)
	require.NoError(t, err)
	assert.Equal(t, int64(7), link.ID)
	assert.Equal(t, "ext-1", link.ExternalID)
	assert.Equal(t, "alice", link.LoyaltyUsername)
	assert.True(t, link.IsActive)
	assert.Equal(t, entity.LinkMethodSync, link.LinkMethod)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLinkRepository_FindActiveLinkByExternalID_NotFound(t *testing.T) {
	db, mock := newMockGorm(t)
	repo := NewLinkRepository(db, newStoreTestConfig())

	mock.ExpectQuery(`SELECT \* FROM "account_links" WHERE external_id = .+ AND is_active = .+ ORDER BY linked_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindActiveLinkByExternalID(context.Background(), "ext-missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrLinkNotFound)
}

func TestSessionRepository_FindBySyncID_NotFound(t *testing.T) {
	db, mock := newMockGorm(t)
	repo := NewSessionRepository(db, newStoreTestConfig())

	mock.ExpectQuery(`SELECT \* FROM "sync_sessions" WHERE sync_id = `).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindBySyncID(context.Background(), "sync_missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestSessionRepository_MarkLinked_UnknownToken(t *testing.T) {
	db, mock := newMockGorm(t)
	repo := NewSessionRepository(db, newStoreTestConfig())

	mock.ExpectExec(`UPDATE "sync_sessions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkLinked(context.Background(), "sync_missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestSessionRepository_UpsertSession_ConflictOnSyncID(t *testing.T) {
	db, mock := newMockGorm(t)
	repo := NewSessionRepository(db, newStoreTestConfig())

	mock.ExpectQuery(`INSERT INTO "sync_sessions" .+ON CONFLICT \("sync_id"\) DO UPDATE SET`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	err := repo.UpsertSession(context.Background(), &entity.SyncSession{
		SyncID:     "sync_abc",
		ExternalID: "ext-1",
		Status:     entity.SessionWaiting,
		ExpiresAt:  time.Now().Add(10 * time.Minute),
	})
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}
