package payrate

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftpay/payroll-engine-go/internal/domain/payrate"
	"github.com/shiftpay/payroll-engine-go/internal/pkg/database"
)

type RateTierServiceImpl struct {
	db       *database.DB
	rateRepo payrate.RateTierRepository
}

func NewRateTierService(db *database.DB, rateRepo payrate.RateTierRepository) payrate.RateTierService {
	return &RateTierServiceImpl{db: db, rateRepo: rateRepo}
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

func (s *RateTierServiceImpl) CreateRateTier(ctx context.Context, req payrate.CreateRateTierRequest) (payrate.RateTierResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return payrate.RateTierResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return payrate.RateTierResponse{}, err
	}

	// One active tier per kind is consulted at pricing time.
	existing, err := s.rateRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return payrate.RateTierResponse{}, err
	}
	for _, tier := range existing {
		if tier.Kind == payrate.Kind(req.Kind) {
			return payrate.RateTierResponse{}, payrate.ErrRateTierExists
		}
	}

	created, err := s.rateRepo.Create(ctx, payrate.RateTier{
		CompanyID:      companyID,
		Kind:           payrate.Kind(req.Kind),
		Multiplier:     req.Multiplier,
		HoursThreshold: req.HoursThreshold,
		Description:    req.Description,
		IsActive:       true,
	})
	if err != nil {
		return payrate.RateTierResponse{}, err
	}

	return payrate.ToRateTierResponse(created), nil
}

func (s *RateTierServiceImpl) GetRateTier(ctx context.Context, id string) (payrate.RateTierResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return payrate.RateTierResponse{}, err
	}

	tier, err := s.rateRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return payrate.RateTierResponse{}, err
	}
	return payrate.ToRateTierResponse(tier), nil
}

func (s *RateTierServiceImpl) ListRateTiers(ctx context.Context) ([]payrate.RateTierResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tiers, err := s.rateRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]payrate.RateTierResponse, 0, len(tiers))
	for _, tier := range tiers {
		responses = append(responses, payrate.ToRateTierResponse(tier))
	}
	return responses, nil
}

func (s *RateTierServiceImpl) UpdateRateTier(ctx context.Context, req payrate.UpdateRateTierRequest) error {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		return err
	}

	return s.rateRepo.Update(ctx, companyID, req)
}

func (s *RateTierServiceImpl) DeleteRateTier(ctx context.Context, id string) error {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.rateRepo.Delete(ctx, id, companyID)
}
