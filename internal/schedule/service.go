package schedule

import (
	"context"
	"errors"
	"strings"
	"time"

	"letibot/internal/logger"
	"letibot/internal/models"
)

// ErrGroupNotFound — номера группы нет в справочнике. Это не сбой API.
var ErrGroupNotFound = errors.New("group not found")

// Service отвечает на вопросы «сегодня», «завтра», «неделя», «ближайшая пара».
// Своего состояния не хранит: день недели и время каждый раз берутся из часов.
type Service struct {
	log   *logger.Logger
	cache *Cache
	now   func() time.Time
}

func NewService(log *logger.Logger, cache *Cache, now func() time.Time) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if now == nil {
		now = time.Now
	}
	return &Service{log: log.With("service", "ScheduleService"), cache: cache, now: now}
}

// ResolveGroup находит группу в справочнике.
func (s *Service) ResolveGroup(ctx context.Context, number string) (models.GroupDirectoryEntry, error) {
	dir, err := s.cache.Directory(ctx)
	if err != nil {
		return models.GroupDirectoryEntry{}, err
	}
	entry, ok := dir.Find(number)
	if !ok {
		return models.GroupDirectoryEntry{}, ErrGroupNotFound
	}
	return entry, nil
}

// groupSchedule проверяет группу и достаёт её расписание из недельного снимка.
// Группа есть в справочнике, но отсутствует в снимке — значит, на неделе пар нет.
func (s *Service) groupSchedule(ctx context.Context, number string) (models.GroupDirectoryEntry, models.GroupSchedule, error) {
	entry, err := s.ResolveGroup(ctx, number)
	if err != nil {
		return models.GroupDirectoryEntry{}, models.GroupSchedule{}, err
	}
	snap, err := s.cache.WeekSnapshot(ctx)
	if err != nil {
		return entry, models.GroupSchedule{}, err
	}
	gs, ok := snap[entry.Number]
	if !ok {
		s.log.Warn("Расписание для группы не найдено", "group", entry.Number)
		return entry, models.GroupSchedule{}, nil
	}
	return entry, gs, nil
}

// Today возвращает расписание на сегодня.
func (s *Service) Today(ctx context.Context, group string) (string, error) {
	return s.dayText(ctx, group, WeekdayIndex(s.now()))
}

// Tomorrow возвращает расписание на завтра; после воскресенья идёт понедельник.
func (s *Service) Tomorrow(ctx context.Context, group string) (string, error) {
	return s.dayText(ctx, group, (WeekdayIndex(s.now())+1)%models.DaysInWeek)
}

func (s *Service) dayText(ctx context.Context, group string, weekday int) (string, error) {
	_, gs, err := s.groupSchedule(ctx, group)
	if err != nil {
		return "", err
	}
	lessons, _ := gs.Days.Lessons(weekday)
	lessons = Dedupe(lessons)
	if len(lessons) == 0 {
		return noLessonsText(weekday), nil
	}
	return FormatDay(lessons, DayName(weekday)), nil
}

// Week возвращает по одному блоку на каждый день с парами, с понедельника по воскресенье.
func (s *Service) Week(ctx context.Context, group string) ([]string, error) {
	_, gs, err := s.groupSchedule(ctx, group)
	if err != nil {
		return nil, err
	}
	var result []string
	for weekday := 0; weekday < models.DaysInWeek; weekday++ {
		lessons, ok := gs.Days.Lessons(weekday)
		if !ok {
			continue
		}
		lessons = Dedupe(lessons)
		if len(lessons) == 0 {
			continue
		}
		result = append(result, FormatDay(lessons, DayName(weekday)))
	}
	if len(result) == 0 {
		return []string{noLessonsThisWeekText}, nil
	}
	return result, nil
}

// NextLesson находит ближайшую пару сегодня, которая ещё не началась.
func (s *Service) NextLesson(ctx context.Context, group string) (string, error) {
	_, gs, err := s.groupSchedule(ctx, group)
	if err != nil {
		return "", err
	}
	now := s.now()
	weekday := WeekdayIndex(now)

	lessons, _ := gs.Days.Lessons(weekday)
	if len(lessons) == 0 {
		return noLessonsText(weekday), nil
	}
	next, ok := NextAfter(lessons, now)
	if !ok {
		return noMoreLessonsText(weekday), nil
	}
	return FormatSingleLesson(next, now), nil
}

// NextAfter выбирает пару с самым ранним началом строго позже now.
// Пары с неразбираемым временем пропускаются; при равном времени побеждает первая.
func NextAfter(lessons []models.Lesson, now time.Time) (models.Lesson, bool) {
	var (
		best   models.Lesson
		bestAt time.Time
		found  bool
	)
	for _, l := range lessons {
		startAt, ok := lessonStart(l, now)
		if !ok || !startAt.After(now) {
			continue
		}
		if !found || startAt.Before(bestAt) {
			best, bestAt, found = l, startAt, true
		}
	}
	return best, found
}

// Invalidate сбрасывает кэш справочника и расписаний.
func (s *Service) Invalidate() {
	weeks := s.cache.WeekKeys()
	s.cache.Invalidate()
	s.log.Info("Кэш сброшен", "weeks", weeks)
}

// GroupWeek отдаёт сырьё для недельного отчёта: группу, её расписание и понедельник недели.
func (s *Service) GroupWeek(ctx context.Context, group string) (models.GroupDirectoryEntry, models.GroupSchedule, time.Time, error) {
	entry, gs, err := s.groupSchedule(ctx, strings.TrimSpace(group))
	return entry, gs, WeekStart(s.now()), err
}
