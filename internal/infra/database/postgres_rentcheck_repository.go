// internal/infra/database/postgres_rentcheck_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rentlite/internal/domain/rentcheck"

	"github.com/google/uuid"
)

var ErrCheckNotFound = fmt.Errorf("rent check not found")

type PostgresRentCheckRepository struct {
	db *sql.DB
}

func NewPostgresRentCheckRepository(db *sql.DB) *PostgresRentCheckRepository {
	return &PostgresRentCheckRepository{db: db}
}

func (r *PostgresRentCheckRepository) Create(ctx context.Context, check *rentcheck.RentCheck) error {
	query := `INSERT INTO rent_checks (id, property_id, check_date, rent_due_date, rent_received, amount, landlord_notified, tenant_notified)
               VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
               RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query,
		check.ID, check.PropertyID, check.CheckDate, check.RentDueDate,
		check.RentReceived, check.Amount, check.LandlordNotified, check.TenantNotified,
	).Scan(&check.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating rent check: %w", err)
	}
	return nil
}

func (r *PostgresRentCheckRepository) UpdateNotified(ctx context.Context, id uuid.UUID, landlordNotified, tenantNotified bool) error {
	query := `UPDATE rent_checks
               SET landlord_notified = $1, tenant_notified = $2
               WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, landlordNotified, tenantNotified, id)
	if err != nil {
		return fmt.Errorf("error updating rent check notification flags: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected for rent check update: %w", err)
	}
	if affected == 0 {
		return ErrCheckNotFound
	}
	return nil
}

func (r *PostgresRentCheckRepository) FindRecentForProperty(ctx context.Context, propertyID uuid.UUID, since time.Time) (*rentcheck.RentCheck, error) {
	query := `SELECT id, property_id, check_date, rent_due_date, rent_received, amount, landlord_notified, tenant_notified, created_at
               FROM rent_checks
               WHERE property_id = $1 AND check_date >= $2
               ORDER BY check_date DESC LIMIT 1`
	check := rentcheck.RentCheck{}
	err := r.db.QueryRowContext(ctx, query, propertyID, since).Scan(
		&check.ID, &check.PropertyID, &check.CheckDate, &check.RentDueDate,
		&check.RentReceived, &check.Amount, &check.LandlordNotified, &check.TenantNotified,
		&check.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCheckNotFound
		}
		return nil, fmt.Errorf("error finding recent rent check: %w", err)
	}
	return &check, nil
}
