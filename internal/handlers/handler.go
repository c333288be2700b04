package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"letibot/internal/logger"
	"letibot/internal/models"
)

// Sender: та часть *tgbotapi.BotAPI, которая нужна обработчикам.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// ScheduleService реализуется *schedule.Service.
type ScheduleService interface {
	ResolveGroup(ctx context.Context, number string) (models.GroupDirectoryEntry, error)
	Today(ctx context.Context, group string) (string, error)
	Tomorrow(ctx context.Context, group string) (string, error)
	Week(ctx context.Context, group string) ([]string, error)
	NextLesson(ctx context.Context, group string) (string, error)
	Invalidate()
}

// GroupStore хранит выбранные пользователями группы (*db.UserGroups).
type GroupStore interface {
	Get(ctx context.Context, telegramID int64) (string, bool, error)
	Set(ctx context.Context, telegramID int64, group string) error
}

type Options struct {
	// DeveloperID — чат, куда отправляются отчёты об ошибках. 0 отключает отчёты.
	DeveloperID int64
}

// Bot связывает Telegram с сервисом расписания.
type Bot struct {
	api         Sender
	schedule    ScheduleService
	groups      GroupStore
	log         *logger.Logger
	developerID int64
	awaiting    *awaitingGroup
}

func New(api Sender, svc ScheduleService, groups GroupStore, log *logger.Logger, opts Options) *Bot {
	if log == nil {
		log = logger.Nop()
	}
	return &Bot{
		api:         api,
		schedule:    svc,
		groups:      groups,
		log:         log.With("service", "TelegramBot"),
		developerID: opts.DeveloperID,
		awaiting:    newAwaitingGroup(),
	}
}

// request: контекст обработки одного сообщения.
type request struct {
	chatID    int64
	userID    int64
	username  string
	firstName string
	text      string
	log       *logger.Logger
}

// ProcessUpdate обрабатывает одно входящее обновление.
func (b *Bot) ProcessUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	msg := update.Message
	req := &request{
		chatID: msg.Chat.ID,
		userID: msg.Chat.ID,
		text:   strings.TrimSpace(msg.Text),
	}
	if msg.From != nil {
		req.userID = msg.From.ID
		req.username = msg.From.UserName
		req.firstName = msg.From.FirstName
	}
	req.log = b.log.With("request_id", uuid.NewString(), "user_id", req.userID)

	defer func() {
		if r := recover(); r != nil {
			b.reportError(req, fmt.Errorf("panic: %v", r))
		}
	}()

	if msg.IsCommand() {
		b.processCommand(ctx, req, msg.Command())
		return
	}
	if req.text == "" {
		return
	}
	if b.awaiting.Get(req.userID) {
		b.handleGroupInput(ctx, req)
		return
	}
	b.handleButtons(ctx, req)
}

func (b *Bot) processCommand(ctx context.Context, req *request, command string) {
	req.log.Info("Команда", "command", command, "username", req.username)
	switch command {
	case "start":
		b.startCommand(ctx, req)
	case "help":
		b.helpCommand(req)
	case "menu":
		b.startCommand(ctx, req)
	case "myid":
		b.myIDCommand(req)
	case "refresh":
		b.refreshCommand(req)
	default:
		b.send(req, newHTMLMessage(req.chatID, "Команда не распознана. Используйте /help.", mainKeyboard()))
	}
}

// handleButtons обрабатывает нажатия кнопок меню.
func (b *Bot) handleButtons(ctx context.Context, req *request) {
	req.log.Info("Нажата кнопка", "text", req.text)

	group, ok, err := b.groups.Get(ctx, req.userID)
	if err != nil {
		b.reportError(req, fmt.Errorf("get user group: %w", err))
		return
	}
	if !ok {
		b.askForGroup(req)
		return
	}

	switch req.text {
	case BtnSchedule:
		b.showScheduleOptions(req, group)
	case BtnToday:
		b.showToday(ctx, req, group)
	case BtnNextLesson:
		b.showNextLesson(ctx, req, group)
	case BtnTomorrow:
		b.showTomorrow(ctx, req, group)
	case BtnWeek:
		b.showWeek(ctx, req, group)
	case BtnHelp:
		b.helpCommand(req)
	case BtnChangeGroup:
		b.askForGroup(req)
	case BtnBack:
		b.send(req, newHTMLMessage(req.chatID, chooseActionText, mainKeyboard()))
	default:
		b.send(req, newHTMLMessage(req.chatID, chooseActionText, mainKeyboard()))
	}
}
