package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIBaseURL       = "https://digital.etu.ru/api/mobile"
	DefaultDirectoryTTL     = 6 * time.Hour
	DefaultDirectoryTimeout = 15 * time.Second
	DefaultScheduleTimeout  = 30 * time.Second
	DefaultDatabaseDSN      = "file:letibot?mode=memory&cache=shared"
)

var ErrMissingToken = errors.New("TELEGRAM_BOT_TOKEN не найден в переменных окружения")

// Config — настройки процесса, собранные из окружения и файла .env.
type Config struct {
	BotToken    string
	BotDebug    bool
	DeveloperID int64

	APIBaseURL       string
	DirectoryTTL     time.Duration
	DirectoryTimeout time.Duration
	ScheduleTimeout  time.Duration
	WeekRetention    int

	DatabaseDSN string
	LogMode     string
}

// Load подгружает .env (если файл есть) и читает переменные окружения.
// Файлы передаются в godotenv.Load; без аргументов читается ./.env.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}
	return FromEnv(), nil
}

// FromEnv читает конфигурацию только из окружения.
func FromEnv() Config {
	token := String("TELEGRAM_BOT_TOKEN", "")
	if token == "" {
		token = String("BOT_TOKEN", "")
	}
	return Config{
		BotToken:         token,
		BotDebug:         Bool("BOT_DEBUG", false),
		DeveloperID:      Int64("DEVELOPER_ID", 0),
		APIBaseURL:       strings.TrimRight(String("ETU_API_BASE_URL", DefaultAPIBaseURL), "/"),
		DirectoryTTL:     Duration("DIRECTORY_TTL", DefaultDirectoryTTL),
		DirectoryTimeout: Duration("DIRECTORY_TIMEOUT", DefaultDirectoryTimeout),
		ScheduleTimeout:  Duration("SCHEDULE_TIMEOUT", DefaultScheduleTimeout),
		WeekRetention:    Int("SCHEDULE_WEEK_RETENTION", 0),
		DatabaseDSN:      String("DATABASE_DSN", DefaultDatabaseDSN),
		LogMode:          String("LOG_MODE", "dev"),
	}
}

// Validate проверяет то, без чего бот не запустится.
func (c Config) Validate() error {
	if c.BotToken == "" {
		return ErrMissingToken
	}
	return nil
}

func String(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

func Int(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func Int64(name string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return i
}

func Bool(name string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// Duration понимает как "6h", так и голое число секунд.
func Duration(name string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return def
}
