package payrate

import "context"

type RateTierService interface {
	CreateRateTier(ctx context.Context, req CreateRateTierRequest) (RateTierResponse, error)
	GetRateTier(ctx context.Context, id string) (RateTierResponse, error)
	ListRateTiers(ctx context.Context) ([]RateTierResponse, error)
	UpdateRateTier(ctx context.Context, req UpdateRateTierRequest) error
	DeleteRateTier(ctx context.Context, id string) error
}
