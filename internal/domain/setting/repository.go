package setting

import "context"

// SettingRepository - interface for the general_settings table
type SettingRepository interface {
	GetByCode(ctx context.Context, code string) (Setting, error)
}
