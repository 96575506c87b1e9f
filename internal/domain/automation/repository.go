package automation

import "context"

type SettingsRepository interface {
	GetSettings(ctx context.Context, companyID string) (Settings, error)
	UpsertSettings(ctx context.Context, settings Settings) (Settings, error)

	// ListEnabled returns settings for every company with the sweep
	// enabled, for the scheduler.
	ListEnabled(ctx context.Context) ([]Settings, error)
}
