package clock

import (
	"context"
	"fmt"
	"time"

	"github.com/katalis-hr/attendance-backend-go/internal/domain/setting"
	"github.com/katalis-hr/attendance-backend-go/internal/pkg/validator"
)

// Clock supplies the current instant in UTC. The settings-backed
// implementation can be switched to a mocked instant for demos and tests.
type Clock interface {
	Now(ctx context.Context) (time.Time, error)
}

type settingClock struct {
	settings setting.Service
}

// NewSettingClock returns a Clock driven by the TIME_MODE setting: "MOCK"
// reads MOCK_DATETIME, anything else is the real wall clock.
func NewSettingClock(settings setting.Service) Clock {
	return &settingClock{settings: settings}
}

func (c *settingClock) Now(ctx context.Context) (time.Time, error) {
	mode, err := c.settings.Get(ctx, setting.CodeTimeMode)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to resolve time mode: %w", err)
	}

	if mode == "MOCK" {
		raw, err := c.settings.Get(ctx, setting.CodeMockDatetime)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to resolve mock datetime: %w", err)
		}
		t, ok := validator.IsValidDateTime(raw)
		if !ok {
			return time.Time{}, fmt.Errorf("invalid mock datetime %q", raw)
		}
		return t.UTC(), nil
	}

	return time.Now().UTC(), nil
}

// Fixed is a Clock pinned to a single instant.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now(ctx context.Context) (time.Time, error) {
	return f.Instant.UTC(), nil
}
