// Команда schedulecli печатает недельный отчёт по расписанию группы.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"letibot/internal/config"
	"letibot/internal/etu"
	"letibot/internal/logger"
	"letibot/internal/schedule"
)

func main() {
	group := flag.String("group", "", "номер группы, например 4353")
	out := flag.String("out", "", "файл для отчёта (по умолчанию stdout)")
	timeout := flag.Duration("timeout", time.Minute, "общее время на загрузку")
	flag.Parse()

	if *group == "" {
		fmt.Fprintln(os.Stderr, "usage: schedulecli -group 4353 [-out report.txt]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	client := etu.NewClient(log, etu.Options{
		BaseURL:          cfg.APIBaseURL,
		DirectoryTimeout: cfg.DirectoryTimeout,
		ScheduleTimeout:  cfg.ScheduleTimeout,
	})
	svc := schedule.NewService(log, schedule.NewCache(log, client, schedule.CacheOptions{}), nil)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	entry, gs, monday, err := svc.GroupWeek(ctx, *group)
	if err != nil {
		log.Error("Не удалось получить расписание", "group", *group, "error", err)
		os.Exit(1)
	}
	report := schedule.FormatReport(entry, gs, monday)

	if *out == "" {
		fmt.Print(report)
		return
	}
	if err := os.WriteFile(*out, []byte(report), 0o644); err != nil {
		log.Error("Ошибка записи отчёта", "file", *out, "error", err)
		os.Exit(1)
	}
	log.Info("Отчёт сохранён", "file", *out, "group", entry.Number)
}
