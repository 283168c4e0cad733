package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentlite/internal/domain/rentcheck"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PostgresRentCheckRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRentCheckRepository(db), mock
}

func TestRentCheckCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	check := &rentcheck.RentCheck{
		ID:           uuid.New(),
		PropertyID:   uuid.New(),
		CheckDate:    time.Date(2026, time.January, 10, 8, 0, 0, 0, time.UTC),
		RentDueDate:  time.Date(2026, time.January, 9, 0, 0, 0, 0, time.UTC),
		RentReceived: true,
		Amount:       decimal.NullDecimal{Decimal: decimal.RequireFromString("650.00"), Valid: true},
	}

	createdAt := time.Now()
	mock.ExpectQuery(`INSERT INTO rent_checks`).
		WithArgs(check.ID, check.PropertyID, check.CheckDate, check.RentDueDate,
			check.RentReceived, check.Amount, check.LandlordNotified, check.TenantNotified).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	err := repo.Create(context.Background(), check)

	require.NoError(t, err)
	assert.Equal(t, createdAt, check.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentCheckUpdateNotified(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec(`UPDATE rent_checks`).
		WithArgs(true, false, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateNotified(context.Background(), id, true, false)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentCheckUpdateNotified_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec(`UPDATE rent_checks`).
		WithArgs(true, true, id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateNotified(context.Background(), id, true, true)

	assert.ErrorIs(t, err, ErrCheckNotFound)
}

func TestFindRecentForProperty(t *testing.T) {
	repo, mock := newMockRepo(t)
	propertyID := uuid.New()
	checkID := uuid.New()
	since := time.Date(2026, time.January, 9, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "property_id", "check_date", "rent_due_date", "rent_received",
		"amount", "landlord_notified", "tenant_notified", "created_at",
	}).AddRow(checkID, propertyID, since.Add(8*time.Hour), since, true, "650.00", true, false, time.Now())

	mock.ExpectQuery(`SELECT (.+) FROM rent_checks`).
		WithArgs(propertyID, since).
		WillReturnRows(rows)

	check, err := repo.FindRecentForProperty(context.Background(), propertyID, since)

	require.NoError(t, err)
	assert.Equal(t, checkID, check.ID)
	assert.True(t, check.RentReceived)
	assert.True(t, check.Amount.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindRecentForProperty_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	propertyID := uuid.New()
	since := time.Date(2026, time.January, 9, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM rent_checks`).
		WithArgs(propertyID, since).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	check, err := repo.FindRecentForProperty(context.Background(), propertyID, since)

	assert.Nil(t, check)
	assert.ErrorIs(t, err, ErrCheckNotFound)
}

func TestFindRecentForProperty_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)
	propertyID := uuid.New()
	since := time.Date(2026, time.January, 9, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM rent_checks`).
		WithArgs(propertyID, since).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FindRecentForProperty(context.Background(), propertyID, since)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCheckNotFound)
}
