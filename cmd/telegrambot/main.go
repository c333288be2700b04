package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"letibot/internal/config"
	"letibot/internal/db"
	"letibot/internal/etu"
	"letibot/internal/handlers"
	"letibot/internal/logger"
	"letibot/internal/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("Не задан токен бота", "error", err)
	}

	conn, err := db.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("Ошибка подключения к базе", "dsn", cfg.DatabaseDSN, "error", err)
	}
	defer conn.Close()

	groups := db.NewUserGroups(conn)
	known, err := groups.List(context.Background())
	if err != nil {
		log.Fatal("Не удалось прочитать группы пользователей", "error", err)
	}
	log.Info("База готова", "users", len(known))

	client := etu.NewClient(log, etu.Options{
		BaseURL:          cfg.APIBaseURL,
		DirectoryTimeout: cfg.DirectoryTimeout,
		ScheduleTimeout:  cfg.ScheduleTimeout,
	})
	cache := schedule.NewCache(log, client, schedule.CacheOptions{
		DirectoryTTL:  cfg.DirectoryTTL,
		WeekRetention: cfg.WeekRetention,
	})
	svc := schedule.NewService(log, cache, nil)

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatal("Ошибка авторизации бота", "error", err)
	}
	api.Debug = cfg.BotDebug
	log.Info("Бот авторизован", "account", api.Self.UserName, "api", cfg.APIBaseURL)

	bot := handlers.New(api, svc, groups, log, handlers.Options{DeveloperID: cfg.DeveloperID})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := handlers.DropPendingUpdates(api); err != nil {
		log.Warn("Не удалось сбросить накопившиеся обновления", "error", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		log.Info("Остановка бота")
		api.StopReceivingUpdates()
	}()

	// Каждое обновление обрабатывается отдельно: медленный запрос к API
	// не задерживает остальных пользователей.
	var wg sync.WaitGroup
	for update := range updates {
		wg.Add(1)
		go func(update tgbotapi.Update) {
			defer wg.Done()
			bot.ProcessUpdate(ctx, update)
		}(update)
	}
	wg.Wait()
}
