package handlers

import (
	"context"
	"fmt"
	"html"
)

func (b *Bot) startCommand(ctx context.Context, req *request) {
	group, ok, err := b.groups.Get(ctx, req.userID)
	if err != nil {
		b.reportError(req, fmt.Errorf("get user group: %w", err))
		return
	}
	if !ok {
		b.askForGroup(req)
		return
	}

	text := fmt.Sprintf("👋 <b>Привет, %s!</b>\n\nВаша группа: <b>%s</b>\n\n%s",
		html.EscapeString(req.firstName), html.EscapeString(group), chooseActionText)
	b.send(req, newHTMLMessage(req.chatID, text, mainKeyboard()))
}

func (b *Bot) helpCommand(req *request) {
	text := "🆘 <b>Помощь по использованию бота</b>\n\n" +
		"<b>Основные функции:</b>\n" +
		"• 📅 Расписание — расписание на сегодня, завтра или неделю\n" +
		"• ⏱ Ближайшая пара — следующая пара сегодня\n" +
		"• 🌅 Завтра — расписание на следующий день\n" +
		"• 🗓 Неделя — расписание на всю неделю\n\n" +
		"<b>Команды:</b>\n" +
		"/start — начать работу с ботом\n" +
		"/help — показать эту справку\n" +
		"/menu — показать главное меню\n" +
		"/myid — показать ваш Telegram ID\n\n" +
		"<b>Работа с расписанием:</b>\n" +
		"1. При первом запуске введите номер группы\n" +
		"2. Выберите нужную функцию в меню\n" +
		"3. Для смены группы нажмите '" + BtnChangeGroup + "'\n\n" +
		"<i>Данные загружаются из официального API ЛЭТИ</i>"
	b.send(req, newHTMLMessage(req.chatID, text, mainKeyboard()))
}

func (b *Bot) myIDCommand(req *request) {
	text := fmt.Sprintf("👤 <b>Ваш Telegram ID:</b> <code>%d</code>\n📛 <b>Имя пользователя:</b> @%s\n👋 <b>Имя:</b> %s",
		req.userID, html.EscapeString(req.username), html.EscapeString(req.firstName))
	b.send(req, newHTMLMessage(req.chatID, text, mainKeyboard()))
}

// refreshCommand сбрасывает кэш расписаний. Доступна только разработчику.
func (b *Bot) refreshCommand(req *request) {
	if b.developerID == 0 || req.userID != b.developerID {
		b.send(req, newHTMLMessage(req.chatID, "Команда не распознана. Используйте /help.", mainKeyboard()))
		return
	}
	b.schedule.Invalidate()
	b.send(req, newHTMLMessage(req.chatID, "🔄 Кэш расписаний сброшен.", mainKeyboard()))
}
