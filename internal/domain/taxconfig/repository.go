package taxconfig

import "context"

// TaxConfigRepository defines data access methods for tax configurations.
// All methods include companyID parameter to prevent cross-company data access.
type TaxConfigRepository interface {
	Create(ctx context.Context, config TaxConfig) (TaxConfig, error)
	GetByID(ctx context.Context, id string, companyID string) (TaxConfig, error)
	GetActiveByCountry(ctx context.Context, companyID string, countryCode string) (TaxConfig, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]TaxConfig, error)
	Update(ctx context.Context, companyID string, req UpdateTaxConfigRequest) error
	Delete(ctx context.Context, id string, companyID string) error
}
