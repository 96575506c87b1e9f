package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shiftpay/payroll-engine-go/internal/domain/payrate"
	"github.com/shiftpay/payroll-engine-go/internal/pkg/database"
)

type rateTierRepository struct {
	db *database.DB
}

func NewRateTierRepository(db *database.DB) payrate.RateTierRepository {
	return &rateTierRepository{db: db}
}

func (r *rateTierRepository) Create(ctx context.Context, tier payrate.RateTier) (payrate.RateTier, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO rate_tiers (company_id, kind, multiplier, hours_threshold, description, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, company_id, kind, multiplier, hours_threshold, description, is_active, created_at, updated_at
	`

	var t payrate.RateTier
	err := q.QueryRow(ctx, query,
		tier.CompanyID, tier.Kind, tier.Multiplier, tier.HoursThreshold, tier.Description, tier.IsActive,
	).Scan(
		&t.ID, &t.CompanyID, &t.Kind, &t.Multiplier, &t.HoursThreshold, &t.Description, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_rate_tier_kind") {
			return payrate.RateTier{}, payrate.ErrRateTierExists
		}
		return payrate.RateTier{}, fmt.Errorf("failed to create rate tier: %w", err)
	}

	return t, nil
}

func (r *rateTierRepository) GetByID(ctx context.Context, id string, companyID string) (payrate.RateTier, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, kind, multiplier, hours_threshold, description, is_active, created_at, updated_at
		FROM rate_tiers
		WHERE id = $1 AND company_id = $2
	`

	var t payrate.RateTier
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&t.ID, &t.CompanyID, &t.Kind, &t.Multiplier, &t.HoursThreshold, &t.Description, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payrate.RateTier{}, payrate.ErrRateTierNotFound
		}
		return payrate.RateTier{}, fmt.Errorf("failed to get rate tier: %w", err)
	}

	return t, nil
}

func (r *rateTierRepository) GetActiveByCompanyID(ctx context.Context, companyID string) ([]payrate.RateTier, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, kind, multiplier, hours_threshold, description, is_active, created_at, updated_at
		FROM rate_tiers
		WHERE company_id = $1 AND is_active = TRUE
		ORDER BY kind
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate tiers: %w", err)
	}
	defer rows.Close()

	var tiers []payrate.RateTier
	for rows.Next() {
		var t payrate.RateTier
		if err := rows.Scan(
			&t.ID, &t.CompanyID, &t.Kind, &t.Multiplier, &t.HoursThreshold, &t.Description, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rate tier: %w", err)
		}
		tiers = append(tiers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rate tiers: %w", err)
	}

	return tiers, nil
}

func (r *rateTierRepository) Update(ctx context.Context, companyID string, req payrate.UpdateRateTierRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID, companyID}
	argIdx := 3

	if req.Multiplier != nil {
		setParts = append(setParts, fmt.Sprintf("multiplier = $%d", argIdx))
		args = append(args, *req.Multiplier)
		argIdx++
	}
	if req.HoursThreshold != nil {
		setParts = append(setParts, fmt.Sprintf("hours_threshold = $%d", argIdx))
		args = append(args, *req.HoursThreshold)
		argIdx++
	}
	if req.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", argIdx))
		args = append(args, *req.Description)
		argIdx++
	}
	if req.IsActive != nil {
		setParts = append(setParts, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *req.IsActive)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE rate_tiers
		SET %s
		WHERE id = $1 AND company_id = $2
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payrate.ErrRateTierNotFound
		}
		return fmt.Errorf("failed to update rate tier: %w", err)
	}

	return nil
}

func (r *rateTierRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	// Historical breakdowns reference tiers by id, so rows are
	// deactivated instead of removed.
	query := `
		UPDATE rate_tiers
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING id
	`

	var deletedID string
	err := q.QueryRow(ctx, query, id, companyID).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payrate.ErrRateTierNotFound
		}
		return fmt.Errorf("failed to delete rate tier: %w", err)
	}

	return nil
}
