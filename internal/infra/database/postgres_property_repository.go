// internal/infra/database/postgres_property_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"rentlite/internal/domain/property"

	"github.com/google/uuid"
)

var ErrPropertyNotFound = fmt.Errorf("property not found")

type PostgresPropertyRepository struct {
	db *sql.DB
}

func NewPostgresPropertyRepository(db *sql.DB) *PostgresPropertyRepository {
	return &PostgresPropertyRepository{db: db}
}

func (r *PostgresPropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	query := `SELECT id, user_id, address, tenant_name, tenant_email, rent_due_day, rent_frequency, keyword_match, notify_tenant_on_missed, created_at, updated_at
               FROM properties WHERE id = $1`
	p := property.Property{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.UserID, &p.Address, &p.TenantName, &p.TenantEmail,
		&p.RentDueDay, &p.RentFrequency, &p.KeywordMatch, &p.NotifyTenantOnMissed,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("error getting property by ID: %w", err)
	}
	return &p, nil
}

func (r *PostgresPropertyRepository) ListAll(ctx context.Context) ([]*property.Property, error) {
	query := `SELECT id, user_id, address, tenant_name, tenant_email, rent_due_day, rent_frequency, keyword_match, notify_tenant_on_missed, created_at, updated_at
               FROM properties ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying properties: %w", err)
	}
	defer rows.Close()
	return scanProperties(rows)
}

// Helper to scan multiple rows
func scanProperties(rows *sql.Rows) ([]*property.Property, error) {
	properties := make([]*property.Property, 0)
	for rows.Next() {
		p := property.Property{}
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Address, &p.TenantName, &p.TenantEmail,
			&p.RentDueDay, &p.RentFrequency, &p.KeywordMatch, &p.NotifyTenantOnMissed,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning property row: %w", err)
		}
		properties = append(properties, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property rows: %w", err)
	}
	return properties, nil
}
