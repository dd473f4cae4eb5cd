package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onionboard/backend/internal/database"
	"github.com/onionboard/backend/internal/outbox/domain"
	"github.com/onionboard/backend/internal/testutil"
)

var outboxColumns = []string{
	"id", "event_type", "payload", "status", "retries", "last_error", "processed_at", "created_at", "updated_at",
}

func newTestEvent(t *testing.T, eventType string, payload any) *domain.OutboxEvent {
	t.Helper()
	event, err := domain.NewOutboxEvent(eventType, payload)
	require.NoError(t, err)
	return event
}

func TestPostgreSQLOutboxEventRepository_Create_Mock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck

	repo := NewPostgreSQLOutboxEventRepository(db)
	event := newTestEvent(t, domain.EventUserSignedUp, map[string]string{"username": "alice"})

	t.Run("joins transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
			WithArgs(event.ID, domain.EventUserSignedUp, `{"username":"alice"}`, domain.OutboxEventStatusPending,
				0, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := database.NewTxManager(db).WithTx(context.Background(), func(ctx context.Context) error {
			return repo.Create(ctx, event)
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate id is ignored", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (id) DO NOTHING")).
			WithArgs(event.ID, domain.EventUserSignedUp, `{"username":"alice"}`, domain.OutboxEventStatusPending,
				0, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, repo.Create(context.Background(), event))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps exec error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO outbox_events").WillReturnError(sql.ErrConnDone)

		err := repo.Create(context.Background(), event)

		assert.ErrorIs(t, err, sql.ErrConnDone)
		assert.ErrorContains(t, err, "failed to create outbox event")
	})
}

func TestPostgreSQLOutboxEventRepository_GetPendingEvents_Mock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck

	repo := NewPostgreSQLOutboxEventRepository(db)
	id := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()
	lastError := "smtp down"

	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE SKIP LOCKED")).
		WithArgs(domain.OutboxEventStatusPending, 5).
		WillReturnRows(sqlmock.NewRows(outboxColumns).
			AddRow(id.String(), domain.EventTokensRevoked, `{"username":"alice"}`, "pending", 1, lastError, nil, now, now))

	events, err := repo.GetPendingEvents(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, id, events[0].ID)
	assert.Equal(t, domain.EventTokensRevoked, events[0].EventType)
	assert.Equal(t, domain.OutboxEventStatusPending, events[0].Status)
	assert.Equal(t, 1, events[0].Retries)
	require.NotNil(t, events[0].LastError)
	assert.Equal(t, lastError, *events[0].LastError)
	assert.Nil(t, events[0].ProcessedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLOutboxEventRepository_GetPendingEvents_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck

	mock.ExpectQuery("SELECT id, event_type").WillReturnError(sql.ErrConnDone)

	events, err := NewPostgreSQLOutboxEventRepository(db).GetPendingEvents(context.Background(), 5)

	assert.Nil(t, events)
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestPostgreSQLOutboxEventRepository_Update_Mock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck

	event := newTestEvent(t, domain.EventUserSignedUp, map[string]string{"username": "alice"})
	processedAt := time.Now().UTC()
	event.Status = domain.OutboxEventStatusProcessed
	event.ProcessedAt = &processedAt

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs(domain.OutboxEventStatusProcessed, 0, sqlmock.AnyArg(), processedAt, event.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewPostgreSQLOutboxEventRepository(db).Update(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLOutboxEventRepository_Lifecycle(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLOutboxEventRepository(db)
	ctx := context.Background()

	first := newTestEvent(t, domain.EventUserSignedUp, map[string]string{"username": "alice"})
	require.NoError(t, repo.Create(ctx, first))
	time.Sleep(10 * time.Millisecond)
	second := newTestEvent(t, domain.EventTokensRevoked, map[string]string{"username": "alice"})
	require.NoError(t, repo.Create(ctx, second))

	events, err := repo.GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, first.ID, events[0].ID)
	assert.Equal(t, second.ID, events[1].ID)

	processedAt := time.Now().UTC()
	first.Status = domain.OutboxEventStatusProcessed
	first.ProcessedAt = &processedAt
	require.NoError(t, repo.Update(ctx, first))

	events, err = repo.GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, second.ID, events[0].ID)
}
