package taxconfig

import "context"

type TaxConfigService interface {
	CreateTaxConfig(ctx context.Context, req CreateTaxConfigRequest) (TaxConfigResponse, error)
	GetTaxConfig(ctx context.Context, id string) (TaxConfigResponse, error)
	ListTaxConfigs(ctx context.Context) ([]TaxConfigResponse, error)
	UpdateTaxConfig(ctx context.Context, req UpdateTaxConfigRequest) error
	DeleteTaxConfig(ctx context.Context, id string) error
}
