package workday

import (
	"context"
	"time"
)

// Calendar resolves working-day policy for calendar dates. Dates are
// interpreted in the organization's configured time zone.
type Calendar interface {
	// ResolveToday resolves the current date and additionally classifies
	// the current instant against the open/close window
	ResolveToday(ctx context.Context) (Info, error)

	// Resolve describes an arbitrary date without window classification
	Resolve(ctx context.Context, date time.Time) (Info, error)

	IsWorkingDay(ctx context.Context, date time.Time) (bool, error)
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
	WorkingHours(ctx context.Context, date time.Time) (Hours, error)

	// Location returns the organization's zone, already resolved with the
	// configured-then-default fallback
	Location(ctx context.Context) (*time.Location, error)
}
