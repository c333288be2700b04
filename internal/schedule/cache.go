package schedule

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"letibot/internal/logger"
	"letibot/internal/models"
)

// Source отдаёт данные для кэша. В бою это *etu.Client.
type Source interface {
	FetchDirectory(ctx context.Context) (models.Directory, error)
	FetchSchedule(ctx context.Context, from, to time.Time) (models.WeeklySnapshot, error)
}

const (
	DefaultDirectoryTTL = 6 * time.Hour
	weekKeyLayout       = "2006-01-02"
	directoryFlightKey  = "directory"
)

type CacheOptions struct {
	// DirectoryTTL — сколько живёт справочник групп. По умолчанию 6 часов.
	DirectoryTTL time.Duration
	// WeekRetention — сколько последних недель держать в памяти; 0 — не удалять ничего.
	WeekRetention int
	Now           func() time.Time
}

type directoryEntry struct {
	dir       models.Directory
	fetchedAt time.Time
}

// Cache хранит справочник групп (с TTL) и недельные снимки расписания
// (ключ — дата понедельника). Запись делается целиком под мьютексом, так что
// читатель никогда не увидит наполовину заполненную запись. Одновременные
// промахи по одному ключу объединяются в один запрос.
type Cache struct {
	log       *logger.Logger
	src       Source
	now       func() time.Time
	ttl       time.Duration
	retention int

	mu        sync.RWMutex
	directory *directoryEntry
	weeks     map[string]models.WeeklySnapshot

	flight singleflight.Group
}

func NewCache(log *logger.Logger, src Source, opts CacheOptions) *Cache {
	if log == nil {
		log = logger.Nop()
	}
	if opts.DirectoryTTL <= 0 {
		opts.DirectoryTTL = DefaultDirectoryTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.WeekRetention < 0 {
		opts.WeekRetention = 0
	}
	return &Cache{
		log:       log.With("service", "ScheduleCache"),
		src:       src,
		now:       opts.Now,
		ttl:       opts.DirectoryTTL,
		retention: opts.WeekRetention,
		weeks:     make(map[string]models.WeeklySnapshot),
	}
}

// Directory возвращает справочник групп, загружая его при отсутствии или устаревании.
func (c *Cache) Directory(ctx context.Context) (models.Directory, error) {
	c.mu.RLock()
	entry := c.directory
	c.mu.RUnlock()
	if entry != nil && c.now().Sub(entry.fetchedAt) < c.ttl {
		c.log.Debug("Используем кэшированные данные групп")
		return entry.dir, nil
	}

	// Загрузка общая для всех ожидающих, поэтому отмена одного вызова её не прерывает.
	// Время ограничено таймаутами клиента.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(directoryFlightKey, func() (interface{}, error) {
		dir, err := c.src.FetchDirectory(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.directory = &directoryEntry{dir: dir, fetchedAt: c.now()}
		c.mu.Unlock()
		return dir, nil
	})
	res, err := waitFlight(ctx, ch)
	if err != nil {
		return nil, err
	}
	return res.(models.Directory), nil
}

// WeekSnapshot возвращает расписание текущей недели (понедельник..воскресенье).
// Снимок загружается один раз на неделю и по времени не устаревает.
func (c *Cache) WeekSnapshot(ctx context.Context) (models.WeeklySnapshot, error) {
	monday := WeekStart(c.now())
	key := monday.Format(weekKeyLayout)

	c.mu.RLock()
	snap, ok := c.weeks[key]
	c.mu.RUnlock()
	if ok {
		c.log.Debug("Используем кэшированное расписание", "week", key)
		return snap, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.flight.DoChan("week:"+key, func() (interface{}, error) {
		c.log.Info("Загружаю полное расписание", "week", key)
		snap, err := c.src.FetchSchedule(fetchCtx, monday, monday.AddDate(0, 0, 6))
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.weeks[key] = snap
		c.evictLocked()
		c.mu.Unlock()
		return snap, nil
	})
	res, err := waitFlight(ctx, ch)
	if err != nil {
		return nil, err
	}
	return res.(models.WeeklySnapshot), nil
}

// waitFlight ждёт общую загрузку или отмену своего контекста.
func waitFlight(ctx context.Context, ch <-chan singleflight.Result) (interface{}, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

// Invalidate сбрасывает оба набора данных.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.directory = nil
	c.weeks = make(map[string]models.WeeklySnapshot)
	c.mu.Unlock()
}

// WeekKeys возвращает ключи закэшированных недель по возрастанию.
func (c *Cache) WeekKeys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.weeks))
	for k := range c.weeks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// evictLocked оставляет только retention самых свежих недель. Ключи в формате
// YYYY-MM-DD сортируются как строки.
func (c *Cache) evictLocked() {
	if c.retention <= 0 || len(c.weeks) <= c.retention {
		return
	}
	keys := make([]string, 0, len(c.weeks))
	for k := range c.weeks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys[:len(keys)-c.retention] {
		delete(c.weeks, k)
		c.log.Debug("Удалено устаревшее расписание", "week", k)
	}
}

// WeekStart возвращает полночь понедельника недели, содержащей t, в часовом поясе t.
func WeekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -WeekdayIndex(t))
}
