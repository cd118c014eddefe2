package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicore/attendance-backend-go/internal/domain/organization"
	"github.com/clinicore/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type organizationRepository struct {
	db *database.DB
}

func NewOrganizationRepository(db *database.DB) organization.OrganizationRepository {
	return &organizationRepository{db: db}
}

// Create implements organization.OrganizationRepository.
func (r *organizationRepository) Create(ctx context.Context, org organization.Organization) (organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO organizations (id, name, type, record_type, network_id, logo_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		org.ID, org.Name, org.Type, org.RecordType, org.NetworkID, org.LogoURL,
	).Scan(&org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		return organization.Organization{}, fmt.Errorf("failed to create organization: %w", err)
	}

	return org, nil
}

// GetByID implements organization.OrganizationRepository.
func (r *organizationRepository) GetByID(ctx context.Context, id string) (organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, type, record_type, network_id, logo_url, created_at, updated_at
		FROM organizations WHERE id = $1
	`

	var org organization.Organization
	err := q.QueryRow(ctx, query, id).Scan(
		&org.ID, &org.Name, &org.Type, &org.RecordType, &org.NetworkID,
		&org.LogoURL, &org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.Organization{}, organization.ErrOrganizationNotFound
		}
		return organization.Organization{}, fmt.Errorf("failed to get organization: %w", err)
	}

	return org, nil
}

// List implements organization.OrganizationRepository.
func (r *organizationRepository) List(ctx context.Context) ([]organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, type, record_type, network_id, logo_url, created_at, updated_at
		FROM organizations ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var result []organization.Organization
	for rows.Next() {
		var org organization.Organization
		if err := rows.Scan(
			&org.ID, &org.Name, &org.Type, &org.RecordType, &org.NetworkID,
			&org.LogoURL, &org.CreatedAt, &org.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan organization row: %w", err)
		}
		result = append(result, org)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate organization rows: %w", err)
	}

	return result, nil
}

// Update implements organization.OrganizationRepository.
func (r *organizationRepository) Update(ctx context.Context, org organization.Organization) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE organizations
		SET name = $2, type = $3, record_type = $4, network_id = $5,
		    logo_url = $6, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		org.ID, org.Name, org.Type, org.RecordType, org.NetworkID, org.LogoURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update organization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return organization.ErrOrganizationNotFound
	}

	return nil
}

// Delete implements organization.OrganizationRepository. Attendance
// history is untouched: records denormalize the organization name.
func (r *organizationRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return organization.ErrOrganizationNotFound
	}

	return nil
}
