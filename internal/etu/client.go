package etu

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"letibot/internal/logger"
	"letibot/internal/models"
)

// DateLayout: формат параметров from/to.
const DateLayout = "2006-01-02"

const maxBodySize = 64 << 20

type Options struct {
	BaseURL          string
	DirectoryTimeout time.Duration
	ScheduleTimeout  time.Duration
	HTTPClient       *http.Client
}

// Client ходит в мобильное API ЛЭТИ. Повторов нет: любая ошибка сразу возвращается вызывающему.
type Client struct {
	log              *logger.Logger
	baseURL          string
	httpClient       *http.Client
	directoryTimeout time.Duration
	scheduleTimeout  time.Duration
}

func NewClient(log *logger.Logger, opts Options) *Client {
	if log == nil {
		log = logger.Nop()
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	if opts.DirectoryTimeout <= 0 {
		opts.DirectoryTimeout = 15 * time.Second
	}
	if opts.ScheduleTimeout <= 0 {
		opts.ScheduleTimeout = 30 * time.Second
	}
	return &Client{
		log:              log.With("service", "ETUClient"),
		baseURL:          strings.TrimRight(opts.BaseURL, "/"),
		httpClient:       hc,
		directoryTimeout: opts.DirectoryTimeout,
		scheduleTimeout:  opts.ScheduleTimeout,
	}
}

// FetchDirectory загружает дерево факультетов, кафедр и групп.
func (c *Client) FetchDirectory(ctx context.Context) (models.Directory, error) {
	var dir models.Directory
	if err := c.getJSON(ctx, "groups", "/groups", nil, c.directoryTimeout, &dir); err != nil {
		c.log.Error("Ошибка при загрузке списка групп", "error", err)
		return nil, err
	}
	c.log.Info("Загружен справочник групп", "faculties", len(dir), "groups", dir.GroupCount())
	return dir, nil
}

// FetchSchedule загружает расписание всех групп за период [from, to].
func (c *Client) FetchSchedule(ctx context.Context, from, to time.Time) (models.WeeklySnapshot, error) {
	q := url.Values{}
	q.Set("from", from.Format(DateLayout))
	q.Set("to", to.Format(DateLayout))

	var snap models.WeeklySnapshot
	if err := c.getJSON(ctx, "schedule", "/schedule", q, c.scheduleTimeout, &snap); err != nil {
		c.log.Error("Ошибка при загрузке расписания", "from", q.Get("from"), "to", q.Get("to"), "error", err)
		return nil, err
	}
	if snap == nil {
		snap = models.WeeklySnapshot{}
	}
	c.log.Info("Загружено расписание", "from", q.Get("from"), "to", q.Get("to"), "groups", len(snap))
	return snap, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, timeout time.Duration, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return networkError(op, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return networkError(op, err)
	}
	defer resp.Body.Close()
	c.log.Debug("GET", "url", endpoint, "status", resp.StatusCode, "took", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return upstreamError(op, resp.StatusCode, nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return networkError(op, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return upstreamError(op, 0, fmt.Errorf("decode: %w", err))
	}
	return nil
}
