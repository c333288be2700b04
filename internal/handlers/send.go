package handlers

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func newHTMLMessage(chatID int64, text string, keyboard interface{}) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}
	return msg
}

func (b *Bot) send(req *request, msg tgbotapi.MessageConfig) {
	if _, err := b.api.Send(msg); err != nil {
		req.log.Error("Ошибка отправки сообщения", "chat_id", msg.ChatID, "error", err)
	}
}

// DropPendingUpdates отбрасывает обновления, накопившиеся, пока бот был выключен.
func DropPendingUpdates(api Sender) error {
	_, err := api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true})
	return err
}

// typing показывает «печатает...», пока идёт запрос к API.
func (b *Bot) typing(req *request) {
	if _, err := b.api.Request(tgbotapi.NewChatAction(req.chatID, tgbotapi.ChatTyping)); err != nil {
		req.log.Debug("Не удалось отправить chat action", "error", err)
	}
}

// sendLong режет длинный текст на части; клавиатура прикрепляется к последней.
func (b *Bot) sendLong(req *request, text string, keyboard interface{}) {
	parts := splitMessage(text, MaxMessageLen)
	for i, part := range parts {
		var kb interface{}
		if i == len(parts)-1 {
			kb = keyboard
		}
		b.send(req, newHTMLMessage(req.chatID, part, kb))
	}
}

// splitMessage делит текст на куски не длиннее limit символов,
// по возможности по переводу строки.
func splitMessage(text string, limit int) []string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}
	var parts []string
	runes := []rune(text)
	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		cut = htmlSafeCut(runes, cut)
		parts = append(parts, strings.TrimRight(string(runes[:cut]), "\n"))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}

// htmlSafeCut сдвигает разрез левее незакрытой сущности (&amp;) или тега (<b>),
// иначе Telegram не примет кусок в режиме HTML.
func htmlSafeCut(runes []rune, cut int) int {
	for i := cut - 1; i >= 0; i-- {
		switch runes[i] {
		case ';', '>':
			return cut
		case '&', '<':
			if i == 0 {
				return cut
			}
			return i
		}
	}
	return cut
}

// reportError логирует ошибку, сообщает о ней разработчику и извиняется перед пользователем.
func (b *Bot) reportError(req *request, err error) {
	req.log.Error("Ошибка обработки запроса", "error", err)

	if b.developerID != 0 {
		report := fmt.Sprintf("⚠️ <b>Ошибка в %s</b>\n👤 Пользователь: %d (@%s)\n💬 Текст: %s\n\n<code>%s</code>",
			BotName, req.userID, html.EscapeString(req.username),
			html.EscapeString(req.text), html.EscapeString(err.Error()))
		if _, sendErr := b.api.Send(newHTMLMessage(b.developerID, report, nil)); sendErr != nil {
			req.log.Warn("Не удалось отправить отчёт разработчику", "error", sendErr)
		}
	}
	b.send(req, newHTMLMessage(req.chatID, internalErrorText, mainKeyboard()))
}
