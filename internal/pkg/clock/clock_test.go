package clock

import (
	"context"
	"testing"
	"time"

	"github.com/katalis-hr/attendance-backend-go/internal/domain/setting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettings struct {
	values map[string]string
}

func (f *fakeSettings) Get(ctx context.Context, code string) (string, error) {
	value, ok := f.values[code]
	if !ok {
		return "", setting.ErrSettingNotFound
	}
	return value, nil
}

func (f *fakeSettings) Int(ctx context.Context, code string) (int, error) { return 0, nil }
func (f *fakeSettings) TimeOfDay(ctx context.Context, code string) (setting.TimeOfDay, error) {
	return setting.TimeOfDay{}, nil
}
func (f *fakeSettings) DateSet(ctx context.Context, code string) (map[string]struct{}, error) {
	return nil, nil
}
func (f *fakeSettings) DaySet(ctx context.Context, code string) (map[int]struct{}, error) {
	return nil, nil
}
func (f *fakeSettings) Location(ctx context.Context) (*time.Location, error) {
	return time.UTC, nil
}

func TestSettingClock_MockMode(t *testing.T) {
	clk := NewSettingClock(&fakeSettings{values: map[string]string{
		setting.CodeTimeMode:     "MOCK",
		setting.CodeMockDatetime: "2026-08-31T08:10:00+07:00",
	}})

	now, err := clk.Now(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.UTC, now.Location())
	assert.Equal(t, time.Date(2026, 8, 31, 1, 10, 0, 0, time.UTC), now)
}

func TestSettingClock_MockModeInvalidDatetime(t *testing.T) {
	clk := NewSettingClock(&fakeSettings{values: map[string]string{
		setting.CodeTimeMode:     "MOCK",
		setting.CodeMockDatetime: "yesterday",
	}})

	_, err := clk.Now(context.Background())
	assert.Error(t, err)
}

func TestSettingClock_RealMode(t *testing.T) {
	clk := NewSettingClock(&fakeSettings{values: map[string]string{
		setting.CodeTimeMode: "REAL",
	}})

	before := time.Now().UTC()
	now, err := clk.Now(context.Background())
	require.NoError(t, err)
	after := time.Now().UTC()

	assert.False(t, now.Before(before))
	assert.False(t, now.After(after))
}

func TestFixed(t *testing.T) {
	instant := time.Date(2026, 8, 31, 1, 0, 0, 0, time.UTC)
	clk := Fixed{Instant: instant}

	now, err := clk.Now(context.Background())
	require.NoError(t, err)
	assert.Equal(t, instant, now)
}
