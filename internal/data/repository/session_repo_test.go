package repository

import (
	"context"
	"testing"
	"time"

	"cinema-sessions/internal/data/entity"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	hallLockSQL       = `SELECT id FROM halls WHERE id = \$1 FOR UPDATE`
	sessionRowLockSQL = `SELECT id FROM sessions WHERE id = \$1 FOR UPDATE`
	candidatesSQL     = `WHERE hall_id = \$1 AND start_date <= \$2 AND end_date >= \$3 AND id <> \$4`
	bookedExistsSQL   = `SELECT EXISTS \(SELECT 1 FROM bookings WHERE session_id = \$1\)`
)

func candidateRows(sessions ...*entity.Session) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{
		"id", "hall_id", "start_date", "end_date", "start_time", "end_time", "price", "created_at", "updated_at",
	})
	for _, s := range sessions {
		rows.AddRow(s.ID, s.HallID, s.StartDate, s.EndDate, s.StartTime, s.EndTime, s.Price, s.CreatedAt, s.UpdatedAt)
	}
	return rows
}

func expectHallLock(mock pgxmock.PgxPoolIface, session *entity.Session) {
	mock.ExpectQuery(hallLockSQL).WithArgs(session.HallID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(session.HallID))
}

func TestSave_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSessionRepository(mock, zap.NewNop())
	session := lockableSession(250)
	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt

	mock.ExpectBegin()
	expectHallLock(mock, session)
	mock.ExpectQuery(candidatesSQL).
		WithArgs(session.HallID, session.EndDate, session.StartDate, session.ID).
		WillReturnRows(candidateRows())
	mock.ExpectExec(`INSERT INTO sessions`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err = repo.Save(context.Background(), session, false)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_CreateCollision(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSessionRepository(mock, zap.NewNop())
	session := lockableSession(250)

	// Same hall, overlapping dates and hours.
	other := lockableSession(100)
	other.HallID = session.HallID
	other.StartTime = entity.NewClock(11, 0)
	other.EndTime = entity.NewClock(14, 0)

	mock.ExpectBegin()
	expectHallLock(mock, session)
	mock.ExpectQuery(candidatesSQL).
		WithArgs(session.HallID, session.EndDate, session.StartDate, session.ID).
		WillReturnRows(candidateRows(other))
	mock.ExpectRollback()

	err = repo.Save(context.Background(), session, false)

	assert.ErrorIs(t, err, ErrSessionsCollide)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_CreateBackToBackWindows(t *testing.T) {
	// A candidate ending exactly where the new session starts shares
	// no minute with it.
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSessionRepository(mock, zap.NewNop())
	session := lockableSession(250)

	other := lockableSession(100)
	other.HallID = session.HallID
	other.StartTime = entity.NewClock(8, 0)
	other.EndTime = session.StartTime

	mock.ExpectBegin()
	expectHallLock(mock, session)
	mock.ExpectQuery(candidatesSQL).
		WithArgs(session.HallID, session.EndDate, session.StartDate, session.ID).
		WillReturnRows(candidateRows(other))
	mock.ExpectExec(`INSERT INTO sessions`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err = repo.Save(context.Background(), session, false)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_CreateHallMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSessionRepository(mock, zap.NewNop())
	session := lockableSession(250)

	mock.ExpectBegin()
	mock.ExpectQuery(hallLockSQL).WithArgs(session.HallID).WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err = repo.Save(context.Background(), session, false)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_UpdateLocksSessionBeforeBookingCheck(t *testing.T) {
	// The session row lock queues the update behind any in-flight
	// booking, so the bookings check sees its committed row.
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSessionRepository(mock, zap.NewNop())
	session := lockableSession(250)

	mock.ExpectBegin()
	expectHallLock(mock, session)
	mock.ExpectQuery(sessionRowLockSQL).WithArgs(session.ID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(session.ID))
	mock.ExpectQuery(bookedExistsSQL).WithArgs(session.ID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	err = repo.Save(context.Background(), session, true)

	assert.ErrorIs(t, err, ErrBookedSessionExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_UpdateSessionMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSessionRepository(mock, zap.NewNop())
	session := lockableSession(250)

	mock.ExpectBegin()
	expectHallLock(mock, session)
	mock.ExpectQuery(sessionRowLockSQL).WithArgs(session.ID).WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err = repo.Save(context.Background(), session, true)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_Update(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSessionRepository(mock, zap.NewNop())
	session := lockableSession(250)
	session.UpdatedAt = time.Now()

	mock.ExpectBegin()
	expectHallLock(mock, session)
	mock.ExpectQuery(sessionRowLockSQL).WithArgs(session.ID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(session.ID))
	mock.ExpectQuery(bookedExistsSQL).WithArgs(session.ID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(candidatesSQL).
		WithArgs(session.HallID, session.EndDate, session.StartDate, session.ID).
		WillReturnRows(candidateRows())
	mock.ExpectExec(`UPDATE sessions`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err = repo.Save(context.Background(), session, true)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
