package handlers

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// mainKeyboard возвращает постоянную клавиатуру главного меню.
func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(BtnSchedule)),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnNextLesson),
			tgbotapi.NewKeyboardButton(BtnTomorrow),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnWeek),
			tgbotapi.NewKeyboardButton(BtnHelp),
		),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(BtnChangeGroup)),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = false
	kb.InputFieldPlaceholder = "Выберите действие..."
	return kb
}

// Выбор периода расписания.
func scheduleKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnToday),
			tgbotapi.NewKeyboardButton(BtnTomorrow),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnWeek),
			tgbotapi.NewKeyboardButton(BtnNextLesson),
		),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(BtnBack)),
	)
	kb.ResizeKeyboard = true
	return kb
}
