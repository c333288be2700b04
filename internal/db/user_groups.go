package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"letibot/internal/models"
)

// UserGroups хранит группу, выбранную каждым пользователем.
type UserGroups struct {
	db  *sql.DB
	now func() time.Time
}

func NewUserGroups(conn *sql.DB) *UserGroups {
	return &UserGroups{db: conn, now: time.Now}
}

// Get возвращает номер группы пользователя; ok=false, если группа ещё не выбрана.
func (s *UserGroups) Get(ctx context.Context, telegramID int64) (string, bool, error) {
	var group string
	err := s.db.QueryRowContext(ctx, `
		SELECT group_number
		FROM user_groups
		WHERE telegram_id = ?
	`, telegramID).Scan(&group)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return group, true, nil
}

// Set сохраняет или заменяет группу пользователя.
func (s *UserGroups) Set(ctx context.Context, telegramID int64, group string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_groups (telegram_id, group_number, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(telegram_id) DO UPDATE SET
			group_number = excluded.group_number,
			updated_at = excluded.updated_at
	`, telegramID, group, s.now().UTC().Format(time.RFC3339))
	return err
}

// List возвращает все привязки, отсортированные по ID пользователя.
func (s *UserGroups) List(ctx context.Context) ([]models.UserGroup, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT telegram_id, group_number, updated_at
		FROM user_groups
		ORDER BY telegram_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.UserGroup
	for rows.Next() {
		var ug models.UserGroup
		var updatedAt string
		if err := rows.Scan(&ug.TelegramID, &ug.GroupNumber, &updatedAt); err != nil {
			return nil, err
		}
		ug.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		result = append(result, ug)
	}
	return result, rows.Err()
}
