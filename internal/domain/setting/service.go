package setting

import (
	"context"
	"time"
)

// Service provides typed access to string-keyed settings. Values are parsed
// by code at the call site; a missing code is an error, not a default.
type Service interface {
	Get(ctx context.Context, code string) (string, error)
	Int(ctx context.Context, code string) (int, error)
	TimeOfDay(ctx context.Context, code string) (TimeOfDay, error)

	// DateSet parses a comma-separated list of YYYY-MM-DD dates
	DateSet(ctx context.Context, code string) (map[string]struct{}, error)

	// DaySet parses a comma-separated list of weekday numbers (Monday=1)
	DaySet(ctx context.Context, code string) (map[int]struct{}, error)

	// Location resolves the configured TIMEZONE, falling back to
	// DefaultTimezone when the configured id is invalid
	Location(ctx context.Context) (*time.Location, error)
}
