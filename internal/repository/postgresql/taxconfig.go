package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shiftpay/payroll-engine-go/internal/domain/taxconfig"
	"github.com/shiftpay/payroll-engine-go/internal/pkg/database"
)

type taxConfigRepository struct {
	db *database.DB
}

func NewTaxConfigRepository(db *database.DB) taxconfig.TaxConfigRepository {
	return &taxConfigRepository{db: db}
}

func (r *taxConfigRepository) Create(ctx context.Context, config taxconfig.TaxConfig) (taxconfig.TaxConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tax_configs (company_id, tax_name, country_code, currency, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, company_id, tax_name, country_code, currency, is_active, created_at, updated_at
	`

	var c taxconfig.TaxConfig
	err := q.QueryRow(ctx, query,
		config.CompanyID, config.TaxName, config.CountryCode, config.Currency, config.IsActive,
	).Scan(
		&c.ID, &c.CompanyID, &c.TaxName, &c.CountryCode, &c.Currency, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_tax_config_active_country") {
			return taxconfig.TaxConfig{}, taxconfig.ErrActiveTaxConfigExists
		}
		return taxconfig.TaxConfig{}, fmt.Errorf("failed to create tax config: %w", err)
	}

	if err := r.replaceChildren(ctx, c.ID, config.Brackets, config.OtherTaxes); err != nil {
		return taxconfig.TaxConfig{}, err
	}

	return r.GetByID(ctx, c.ID, c.CompanyID)
}

// replaceChildren rewrites the bracket and other-tax rows of a config.
func (r *taxConfigRepository) replaceChildren(ctx context.Context, configID string, brackets []taxconfig.TaxBracket, otherTaxes []taxconfig.OtherTax) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM tax_brackets WHERE tax_config_id = $1`, configID); err != nil {
		return fmt.Errorf("failed to clear tax brackets: %w", err)
	}
	if _, err := q.Exec(ctx, `DELETE FROM other_taxes WHERE tax_config_id = $1`, configID); err != nil {
		return fmt.Errorf("failed to clear other taxes: %w", err)
	}

	for i, b := range brackets {
		_, err := q.Exec(ctx, `
			INSERT INTO tax_brackets (tax_config_id, bracket_limit, rate, position)
			VALUES ($1, $2, $3, $4)
		`, configID, b.Limit, b.Rate, i)
		if err != nil {
			return fmt.Errorf("failed to insert tax bracket: %w", err)
		}
	}
	for _, t := range otherTaxes {
		_, err := q.Exec(ctx, `
			INSERT INTO other_taxes (tax_config_id, name, rate, fixed_amount)
			VALUES ($1, $2, $3, $4)
		`, configID, t.Name, t.Rate, t.FixedAmount)
		if err != nil {
			return fmt.Errorf("failed to insert other tax: %w", err)
		}
	}
	return nil
}

func (r *taxConfigRepository) loadChildren(ctx context.Context, config *taxconfig.TaxConfig) error {
	q := GetQuerier(ctx, r.db)

	bracketRows, err := q.Query(ctx, `
		SELECT id, tax_config_id, bracket_limit, rate, position
		FROM tax_brackets
		WHERE tax_config_id = $1
		ORDER BY position
	`, config.ID)
	if err != nil {
		return fmt.Errorf("failed to list tax brackets: %w", err)
	}
	defer bracketRows.Close()

	for bracketRows.Next() {
		var b taxconfig.TaxBracket
		if err := bracketRows.Scan(&b.ID, &b.TaxConfigID, &b.Limit, &b.Rate, &b.Position); err != nil {
			return fmt.Errorf("failed to scan tax bracket: %w", err)
		}
		config.Brackets = append(config.Brackets, b)
	}
	if err := bracketRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate tax brackets: %w", err)
	}

	otherRows, err := q.Query(ctx, `
		SELECT id, tax_config_id, name, rate, fixed_amount
		FROM other_taxes
		WHERE tax_config_id = $1
		ORDER BY name
	`, config.ID)
	if err != nil {
		return fmt.Errorf("failed to list other taxes: %w", err)
	}
	defer otherRows.Close()

	for otherRows.Next() {
		var t taxconfig.OtherTax
		if err := otherRows.Scan(&t.ID, &t.TaxConfigID, &t.Name, &t.Rate, &t.FixedAmount); err != nil {
			return fmt.Errorf("failed to scan other tax: %w", err)
		}
		config.OtherTaxes = append(config.OtherTaxes, t)
	}
	if err := otherRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate other taxes: %w", err)
	}

	return nil
}

func (r *taxConfigRepository) GetByID(ctx context.Context, id string, companyID string) (taxconfig.TaxConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, tax_name, country_code, currency, is_active, created_at, updated_at
		FROM tax_configs
		WHERE id = $1 AND company_id = $2
	`

	var c taxconfig.TaxConfig
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&c.ID, &c.CompanyID, &c.TaxName, &c.CountryCode, &c.Currency, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return taxconfig.TaxConfig{}, taxconfig.ErrTaxConfigNotFound
		}
		return taxconfig.TaxConfig{}, fmt.Errorf("failed to get tax config: %w", err)
	}

	if err := r.loadChildren(ctx, &c); err != nil {
		return taxconfig.TaxConfig{}, err
	}
	return c, nil
}

func (r *taxConfigRepository) GetActiveByCountry(ctx context.Context, companyID string, countryCode string) (taxconfig.TaxConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, tax_name, country_code, currency, is_active, created_at, updated_at
		FROM tax_configs
		WHERE company_id = $1 AND country_code = $2 AND is_active = TRUE
	`

	var c taxconfig.TaxConfig
	err := q.QueryRow(ctx, query, companyID, countryCode).Scan(
		&c.ID, &c.CompanyID, &c.TaxName, &c.CountryCode, &c.Currency, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return taxconfig.TaxConfig{}, taxconfig.ErrTaxConfigNotFound
		}
		return taxconfig.TaxConfig{}, fmt.Errorf("failed to get active tax config: %w", err)
	}

	if err := r.loadChildren(ctx, &c); err != nil {
		return taxconfig.TaxConfig{}, err
	}
	return c, nil
}

func (r *taxConfigRepository) GetByCompanyID(ctx context.Context, companyID string) ([]taxconfig.TaxConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, tax_name, country_code, currency, is_active, created_at, updated_at
		FROM tax_configs
		WHERE company_id = $1
		ORDER BY country_code, created_at
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax configs: %w", err)
	}
	defer rows.Close()

	var configs []taxconfig.TaxConfig
	for rows.Next() {
		var c taxconfig.TaxConfig
		if err := rows.Scan(
			&c.ID, &c.CompanyID, &c.TaxName, &c.CountryCode, &c.Currency, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tax config: %w", err)
		}
		configs = append(configs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tax configs: %w", err)
	}

	for i := range configs {
		if err := r.loadChildren(ctx, &configs[i]); err != nil {
			return nil, err
		}
	}

	return configs, nil
}

func (r *taxConfigRepository) Update(ctx context.Context, companyID string, req taxconfig.UpdateTaxConfigRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID, companyID}
	argIdx := 3

	if req.TaxName != nil {
		setParts = append(setParts, fmt.Sprintf("tax_name = $%d", argIdx))
		args = append(args, *req.TaxName)
		argIdx++
	}
	if req.Currency != nil {
		setParts = append(setParts, fmt.Sprintf("currency = $%d", argIdx))
		args = append(args, *req.Currency)
		argIdx++
	}
	if req.IsActive != nil {
		setParts = append(setParts, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *req.IsActive)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE tax_configs
		SET %s
		WHERE id = $1 AND company_id = $2
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return taxconfig.ErrTaxConfigNotFound
		}
		if strings.Contains(err.Error(), "uk_tax_config_active_country") {
			return taxconfig.ErrActiveTaxConfigExists
		}
		return fmt.Errorf("failed to update tax config: %w", err)
	}

	if req.Brackets != nil || req.OtherTaxes != nil {
		current, err := r.GetByID(ctx, req.ID, companyID)
		if err != nil {
			return err
		}

		brackets := current.Brackets
		if req.Brackets != nil {
			brackets = brackets[:0]
			for i, b := range req.Brackets {
				brackets = append(brackets, taxconfig.TaxBracket{Limit: b.Limit, Rate: b.Rate, Position: i})
			}
		}
		otherTaxes := current.OtherTaxes
		if req.OtherTaxes != nil {
			otherTaxes = otherTaxes[:0]
			for _, t := range req.OtherTaxes {
				otherTaxes = append(otherTaxes, taxconfig.OtherTax{Name: t.Name, Rate: t.Rate, FixedAmount: t.FixedAmount})
			}
		}

		if err := r.replaceChildren(ctx, req.ID, brackets, otherTaxes); err != nil {
			return err
		}
	}

	return nil
}

func (r *taxConfigRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM tax_configs
		WHERE id = $1 AND company_id = $2
		RETURNING id
	`

	var deletedID string
	err := q.QueryRow(ctx, query, id, companyID).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return taxconfig.ErrTaxConfigNotFound
		}
		if strings.Contains(err.Error(), "fk_automation_default_tax_config") {
			return taxconfig.ErrTaxConfigInUse
		}
		return fmt.Errorf("failed to delete tax config: %w", err)
	}

	return nil
}
