package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicore/attendance-backend-go/internal/domain/organization"
	"github.com/clinicore/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type networkRepository struct {
	db *database.DB
}

func NewNetworkRepository(db *database.DB) organization.NetworkRepository {
	return &networkRepository{db: db}
}

// Create implements organization.NetworkRepository.
func (r *networkRepository) Create(ctx context.Context, nw organization.NetworkBinding) (organization.NetworkBinding, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO networks (id, name, ip_address)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, nw.ID, nw.Name, nw.IPAddress).Scan(&nw.CreatedAt, &nw.UpdatedAt)
	if err != nil {
		return organization.NetworkBinding{}, fmt.Errorf("failed to create network: %w", err)
	}

	return nw, nil
}

// GetByID implements organization.NetworkRepository.
func (r *networkRepository) GetByID(ctx context.Context, id string) (organization.NetworkBinding, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, ip_address, created_at, updated_at FROM networks WHERE id = $1`

	var nw organization.NetworkBinding
	err := q.QueryRow(ctx, query, id).Scan(&nw.ID, &nw.Name, &nw.IPAddress, &nw.CreatedAt, &nw.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.NetworkBinding{}, organization.ErrNetworkNotFound
		}
		return organization.NetworkBinding{}, fmt.Errorf("failed to get network: %w", err)
	}

	return nw, nil
}

// List implements organization.NetworkRepository.
func (r *networkRepository) List(ctx context.Context) ([]organization.NetworkBinding, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, ip_address, created_at, updated_at FROM networks ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list networks: %w", err)
	}
	defer rows.Close()

	var result []organization.NetworkBinding
	for rows.Next() {
		var nw organization.NetworkBinding
		if err := rows.Scan(&nw.ID, &nw.Name, &nw.IPAddress, &nw.CreatedAt, &nw.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan network row: %w", err)
		}
		result = append(result, nw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate network rows: %w", err)
	}

	return result, nil
}

// Update implements organization.NetworkRepository.
func (r *networkRepository) Update(ctx context.Context, nw organization.NetworkBinding) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE networks SET name = $2, ip_address = $3, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, nw.ID, nw.Name, nw.IPAddress)
	if err != nil {
		return fmt.Errorf("failed to update network: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return organization.ErrNetworkNotFound
	}

	return nil
}

// Delete implements organization.NetworkRepository.
func (r *networkRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM networks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete network: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return organization.ErrNetworkNotFound
	}

	return nil
}
