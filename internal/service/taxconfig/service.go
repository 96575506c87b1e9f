package taxconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftpay/payroll-engine-go/internal/domain/taxconfig"
	"github.com/shiftpay/payroll-engine-go/internal/pkg/database"
)

type TaxConfigServiceImpl struct {
	db      *database.DB
	taxRepo taxconfig.TaxConfigRepository
}

func NewTaxConfigService(db *database.DB, taxRepo taxconfig.TaxConfigRepository) taxconfig.TaxConfigService {
	return &TaxConfigServiceImpl{db: db, taxRepo: taxRepo}
}

func companyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

func (s *TaxConfigServiceImpl) CreateTaxConfig(ctx context.Context, req taxconfig.CreateTaxConfigRequest) (taxconfig.TaxConfigResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return taxconfig.TaxConfigResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return taxconfig.TaxConfigResponse{}, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	// At most one active configuration per (company, country).
	if isActive {
		_, err := s.taxRepo.GetActiveByCountry(ctx, companyID, req.CountryCode)
		if err == nil {
			return taxconfig.TaxConfigResponse{}, taxconfig.ErrActiveTaxConfigExists
		}
		if !errors.Is(err, taxconfig.ErrTaxConfigNotFound) {
			return taxconfig.TaxConfigResponse{}, err
		}
	}

	config := taxconfig.TaxConfig{
		CompanyID:   companyID,
		TaxName:     req.TaxName,
		CountryCode: req.CountryCode,
		Currency:    req.Currency,
		IsActive:    isActive,
	}
	for i, b := range req.Brackets {
		config.Brackets = append(config.Brackets, taxconfig.TaxBracket{Limit: b.Limit, Rate: b.Rate, Position: i})
	}
	for _, t := range req.OtherTaxes {
		config.OtherTaxes = append(config.OtherTaxes, taxconfig.OtherTax{Name: t.Name, Rate: t.Rate, FixedAmount: t.FixedAmount})
	}

	created, err := s.taxRepo.Create(ctx, config)
	if err != nil {
		return taxconfig.TaxConfigResponse{}, err
	}

	return taxconfig.ToTaxConfigResponse(created), nil
}

func (s *TaxConfigServiceImpl) GetTaxConfig(ctx context.Context, id string) (taxconfig.TaxConfigResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return taxconfig.TaxConfigResponse{}, err
	}

	config, err := s.taxRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return taxconfig.TaxConfigResponse{}, err
	}
	return taxconfig.ToTaxConfigResponse(config), nil
}

func (s *TaxConfigServiceImpl) ListTaxConfigs(ctx context.Context) ([]taxconfig.TaxConfigResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	configs, err := s.taxRepo.GetByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]taxconfig.TaxConfigResponse, 0, len(configs))
	for _, config := range configs {
		responses = append(responses, taxconfig.ToTaxConfigResponse(config))
	}
	return responses, nil
}

func (s *TaxConfigServiceImpl) UpdateTaxConfig(ctx context.Context, req taxconfig.UpdateTaxConfigRequest) error {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		return err
	}

	// Re-activating a config must not break the one-active-per-country
	// invariant.
	if req.IsActive != nil && *req.IsActive {
		current, err := s.taxRepo.GetByID(ctx, req.ID, companyID)
		if err != nil {
			return err
		}
		active, err := s.taxRepo.GetActiveByCountry(ctx, companyID, current.CountryCode)
		if err == nil && active.ID != req.ID {
			return taxconfig.ErrActiveTaxConfigExists
		}
		if err != nil && !errors.Is(err, taxconfig.ErrTaxConfigNotFound) {
			return err
		}
	}

	return s.taxRepo.Update(ctx, companyID, req)
}

func (s *TaxConfigServiceImpl) DeleteTaxConfig(ctx context.Context, id string) error {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.taxRepo.Delete(ctx, id, companyID)
}
