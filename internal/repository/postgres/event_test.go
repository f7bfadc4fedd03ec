package postgres_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-events-backend/internal/domain"
	"campus-events-backend/internal/repository/postgres"
)

const eventCols = "id, organizer_id, contact_email, title, description, venue, category, start_time, end_time, capacity, confirmed_count, rulebook_id, status, review_notes, version, created_on, updated_on"

func eventRow(id string, status domain.EventStatus) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "organizer_id", "contact_email", "title", "description", "venue", "category",
		"start_time", "end_time", "capacity", "confirmed_count", "rulebook_id", "status",
		"review_notes", "version", "created_on", "updated_on",
	}).AddRow(id, "org-1", "organizer@campus.test", "Robotics Workshop", "", "Lab 3", "workshop",
		now.Add(24*time.Hour), now.Add(28*time.Hour), int32(30), int32(0), "doc-123", status,
		"", int64(1), now, now)
}

func TestEventRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := postgres.NewEventRepository(db)

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT `+eventCols+` FROM events WHERE id = $1`)).
			WithArgs("evt-1").
			WillReturnRows(eventRow("evt-1", domain.EventStatusDraft))

		event, err := repo.GetByID(context.Background(), "evt-1")
		assert.NoError(t, err)
		assert.Equal(t, "evt-1", event.ID)
		assert.Equal(t, domain.EventStatusDraft, event.Status)
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT .+ FROM events WHERE id").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_TransitionStatus(t *testing.T) {
	update := regexp.QuoteMeta(`UPDATE events SET status=$1, review_notes=$2, version=version+1, updated_on=$3 WHERE id=$4 AND status=$5`)

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := postgres.NewEventRepository(db)

		mock.ExpectExec(update).
			WithArgs(domain.EventStatusApproved, "looks good", sqlmock.AnyArg(), "evt-1", domain.EventStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.TransitionStatus(context.Background(), "evt-1", domain.EventStatusPending, domain.EventStatusApproved, "looks good")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Wrong Current Status", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := postgres.NewEventRepository(db)

		mock.ExpectExec(update).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM events WHERE id = $1`)).
			WithArgs("evt-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(domain.EventStatusApproved))

		err = repo.TransitionStatus(context.Background(), "evt-1", domain.EventStatusPending, domain.EventStatusApproved, "")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "APPROVED")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Event Gone", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := postgres.NewEventRepository(db)

		mock.ExpectExec(update).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT status FROM events").
			WillReturnError(sql.ErrNoRows)

		err = repo.TransitionStatus(context.Background(), "missing", domain.EventStatusPending, domain.EventStatusApproved, "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_ActivateDue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := postgres.NewEventRepository(db)

	mock.ExpectExec(`UPDATE events SET status=\$1, version=version\+1, updated_on=\$2 WHERE status=\$3 AND start_time <= \$2`).
		WithArgs(domain.EventStatusLive, sqlmock.AnyArg(), domain.EventStatusApproved).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.ActivateDue(context.Background(), time.Now())
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_CloseEnded(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := postgres.NewEventRepository(db)

	mock.ExpectExec(`UPDATE events SET status=\$1, version=version\+1, updated_on=\$2 WHERE status=\$3 AND end_time <= \$2`).
		WithArgs(domain.EventStatusClosed, sqlmock.AnyArg(), domain.EventStatusLive).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.CloseEnded(context.Background(), time.Now())
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_ListOpen(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := postgres.NewEventRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM events WHERE status IN ($1, $2)`)).
		WithArgs(domain.EventStatusApproved, domain.EventStatusLive).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int32(1)))
	mock.ExpectQuery("SELECT .+ FROM events WHERE status IN .+ ORDER BY start_time ASC LIMIT").
		WithArgs(domain.EventStatusApproved, domain.EventStatusLive, int32(20), int32(0)).
		WillReturnRows(eventRow("evt-1", domain.EventStatusLive))

	events, count, err := repo.ListOpen(context.Background(), 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), count)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventStatusLive, events[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
