package handlers

import (
	"context"
	"errors"
	"fmt"
	"html"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"letibot/internal/etu"
	"letibot/internal/schedule"
)

// askForGroup просит номер группы и переводит пользователя в режим ожидания ввода.
func (b *Bot) askForGroup(req *request) {
	b.awaiting.Set(req.userID, true)
	b.send(req, newHTMLMessage(req.chatID, askGroupText, tgbotapi.NewRemoveKeyboard(false)))
}

// handleGroupInput проверяет введённый номер группы по справочнику и сохраняет его.
func (b *Bot) handleGroupInput(ctx context.Context, req *request) {
	number := req.text
	req.log.Info("Пользователь ввел группу", "group", number)

	entry, err := b.schedule.ResolveGroup(ctx, number)
	switch {
	case errors.Is(err, schedule.ErrGroupNotFound):
		text := fmt.Sprintf("❌ Группа <b>%s</b> не найдена.\nПожалуйста, проверьте номер и попробуйте еще раз.",
			html.EscapeString(number))
		b.send(req, newHTMLMessage(req.chatID, text, nil))
		return
	case etu.IsFailure(err):
		req.log.Warn("Справочник групп недоступен", "error", err)
		b.send(req, newHTMLMessage(req.chatID, failedGroupsText, nil))
		return
	case err != nil:
		b.reportError(req, fmt.Errorf("resolve group: %w", err))
		return
	}

	if err := b.groups.Set(ctx, req.userID, entry.Number); err != nil {
		b.reportError(req, fmt.Errorf("save user group: %w", err))
		return
	}
	b.awaiting.Set(req.userID, false)

	text := fmt.Sprintf("✅ Группа <b>%s</b> сохранена!\n📋 Факультет: %s\n🎓 Курс: %d\n\nТеперь вы можете использовать все функции бота!",
		html.EscapeString(entry.Number), html.EscapeString(entry.Faculty), entry.Course)
	b.send(req, newHTMLMessage(req.chatID, text, mainKeyboard()))
}

func (b *Bot) showScheduleOptions(req *request, group string) {
	text := fmt.Sprintf("📊 <b>Расписание группы %s</b>\nВыберите период:", html.EscapeString(group))
	b.send(req, newHTMLMessage(req.chatID, text, scheduleKeyboard()))
}

func (b *Bot) showToday(ctx context.Context, req *request, group string) {
	b.typing(req)
	text, err := b.schedule.Today(ctx, group)
	if b.handleQueryError(req, group, err) {
		return
	}
	b.sendLong(req, text, mainKeyboard())
}

func (b *Bot) showTomorrow(ctx context.Context, req *request, group string) {
	b.typing(req)
	text, err := b.schedule.Tomorrow(ctx, group)
	if b.handleQueryError(req, group, err) {
		return
	}
	b.sendLong(req, text, mainKeyboard())
}

func (b *Bot) showNextLesson(ctx context.Context, req *request, group string) {
	b.typing(req)
	text, err := b.schedule.NextLesson(ctx, group)
	if b.handleQueryError(req, group, err) {
		return
	}
	b.sendLong(req, text, mainKeyboard())
}

// showWeek отправляет каждый день отдельным сообщением.
func (b *Bot) showWeek(ctx context.Context, req *request, group string) {
	b.typing(req)
	days, err := b.schedule.Week(ctx, group)
	if b.handleQueryError(req, group, err) {
		return
	}
	for _, day := range days {
		b.sendLong(req, day, nil)
	}
	b.send(req, newHTMLMessage(req.chatID, weekLoadedText, mainKeyboard()))
}

// handleQueryError отвечает пользователю на ошибку запроса и возвращает true, если ошибка была.
// Сбой API и «группа пропала из справочника» различаются: во втором случае
// просим ввести группу заново.
func (b *Bot) handleQueryError(req *request, group string, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, schedule.ErrGroupNotFound):
		text := fmt.Sprintf("❌ Группа <b>%s</b> больше не найдена в справочнике.", html.EscapeString(group))
		b.send(req, newHTMLMessage(req.chatID, text, nil))
		b.askForGroup(req)
	case etu.IsFailure(err):
		req.log.Warn("Не удалось загрузить расписание", "group", group, "error", err)
		b.send(req, newHTMLMessage(req.chatID, failedToLoadText, mainKeyboard()))
	default:
		b.reportError(req, err)
	}
	return true
}
