package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/setting"
	"github.com/katalis-hr/attendance-backend-go/internal/pkg/database"
)

type settingRepository struct {
	db *database.DB
}

func NewSettingRepository(db *database.DB) setting.SettingRepository {
	return &settingRepository{db: db}
}

// GetByCode implements setting.SettingRepository.
func (s *settingRepository) GetByCode(ctx context.Context, code string) (setting.Setting, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, code, value, description, created_at, updated_at
		FROM general_settings
		WHERE code = $1
	`

	var row setting.Setting
	err := q.QueryRow(ctx, query, code).Scan(
		&row.ID, &row.Code, &row.Value, &row.Description,
		&row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return setting.Setting{}, setting.ErrSettingNotFound
		}
		return setting.Setting{}, fmt.Errorf("failed to get setting %s: %w", code, err)
	}

	return row, nil
}
