package payrate

import "context"

// RateTierRepository defines data access methods for rate tiers.
// All methods include companyID parameter to prevent cross-company data access.
type RateTierRepository interface {
	Create(ctx context.Context, tier RateTier) (RateTier, error)
	GetByID(ctx context.Context, id string, companyID string) (RateTier, error)
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]RateTier, error)
	Update(ctx context.Context, companyID string, req UpdateRateTierRequest) error
	Delete(ctx context.Context, id string, companyID string) error
}
