package automation

import "context"

type AutomationService interface {
	GetSettings(ctx context.Context) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)

	// RunSweep walks every automation-enabled company and runs the stages
	// whose configured day of month has arrived.
	RunSweep(ctx context.Context) error
}
