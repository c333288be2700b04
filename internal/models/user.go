package models

import "time"

// UserGroup связывает пользователя Telegram с выбранной группой.
type UserGroup struct {
	TelegramID  int64
	GroupNumber string
	UpdatedAt   time.Time
}
