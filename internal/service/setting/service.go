package setting

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/katalis-hr/attendance-backend-go/internal/domain/setting"
)

type SettingServiceImpl struct {
	setting.SettingRepository
}

func NewSettingService(settingRepo setting.SettingRepository) setting.Service {
	return &SettingServiceImpl{SettingRepository: settingRepo}
}

// Get implements setting.Service.
func (s *SettingServiceImpl) Get(ctx context.Context, code string) (string, error) {
	row, err := s.SettingRepository.GetByCode(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to get setting %q: %w", code, err)
	}
	return row.Value, nil
}

// Int implements setting.Service.
func (s *SettingServiceImpl) Int(ctx context.Context, code string) (int, error) {
	value, err := s.Get(ctx, code)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("setting %q is not an integer: %w", code, err)
	}
	return n, nil
}

// TimeOfDay implements setting.Service.
func (s *SettingServiceImpl) TimeOfDay(ctx context.Context, code string) (setting.TimeOfDay, error) {
	value, err := s.Get(ctx, code)
	if err != nil {
		return setting.TimeOfDay{}, err
	}
	t, err := setting.ParseTimeOfDay(strings.TrimSpace(value))
	if err != nil {
		return setting.TimeOfDay{}, fmt.Errorf("setting %q: %w", code, err)
	}
	return t, nil
}

// DateSet implements setting.Service.
func (s *SettingServiceImpl) DateSet(ctx context.Context, code string) (map[string]struct{}, error) {
	value, err := s.Get(ctx, code)
	if err != nil {
		return nil, err
	}

	dates := make(map[string]struct{})
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := time.Parse("2006-01-02", part)
		if err != nil {
			return nil, fmt.Errorf("setting %q has invalid date %q: %w", code, part, err)
		}
		dates[d.Format("2006-01-02")] = struct{}{}
	}
	return dates, nil
}

// DaySet implements setting.Service.
func (s *SettingServiceImpl) DaySet(ctx context.Context, code string) (map[int]struct{}, error) {
	value, err := s.Get(ctx, code)
	if err != nil {
		return nil, err
	}

	days := make(map[int]struct{})
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("setting %q has invalid day %q: %w", code, part, err)
		}
		days[n] = struct{}{}
	}
	return days, nil
}

// Location implements setting.Service. An invalid configured zone falls back
// to the default zone instead of failing; the fallback is logged as a
// warning so operators notice the broken configuration.
func (s *SettingServiceImpl) Location(ctx context.Context) (*time.Location, error) {
	zoneID, err := s.Get(ctx, setting.CodeTimezone)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(strings.TrimSpace(zoneID))
	if err != nil {
		slog.Warn("Configured timezone is invalid, falling back to default",
			"timezone", zoneID,
			"default", setting.DefaultTimezone,
			"error", err)
		loc, err = time.LoadLocation(setting.DefaultTimezone)
		if err != nil {
			return nil, fmt.Errorf("failed to load default timezone: %w", err)
		}
	}
	return loc, nil
}
