package schedule

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"letibot/internal/models"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock(t time.Time) *fakeClock { return &fakeClock{now: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func (c *fakeClock) Advance(d time.Duration) { c.Set(c.Now().Add(d)) }

type scheduleCall struct {
	from, to time.Time
}

type fakeSource struct {
	mu            sync.Mutex
	dir           models.Directory
	dirErr        error
	snap          models.WeeklySnapshot
	snapErr       error
	dirCalls      int
	scheduleCalls []scheduleCall
}

func (f *fakeSource) FetchDirectory(ctx context.Context) (models.Directory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dirCalls++
	if f.dirErr != nil {
		return nil, f.dirErr
	}
	return f.dir, nil
}

func (f *fakeSource) FetchSchedule(ctx context.Context, from, to time.Time) (models.WeeklySnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduleCalls = append(f.scheduleCalls, scheduleCall{from: from, to: to})
	if f.snapErr != nil {
		return nil, f.snapErr
	}
	return f.snap, nil
}

func (f *fakeSource) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirCalls, len(f.scheduleCalls)
}

func testDirectory() models.Directory {
	return models.Directory{
		{Title: "ФКТИ", Departments: []models.Department{
			{Title: "Д1", Groups: []models.Group{{ID: 1, Number: "9301", Course: 2, StudyingType: "очная"}}},
		}},
		{Title: "ФЭЛ", Departments: []models.Department{
			{Title: "Д2", Groups: []models.Group{{ID: 2, Number: "4353", Course: 1}}},
		}},
	}
}

// snapshotJSON собирает снимок так же, как его разобрал бы клиент API.
func snapshotJSON(t *testing.T, raw string) models.WeeklySnapshot {
	t.Helper()
	var snap models.WeeklySnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		t.Fatalf("snapshot json: %v", err)
	}
	return snap
}

// 2026-10-14 — среда (индекс 2).
func wednesday(hour, min int) time.Time {
	return time.Date(2026, 10, 14, hour, min, 0, 0, time.Local)
}
