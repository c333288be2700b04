package handlers

import "sync"

// Кнопки главного меню и меню расписания.
const (
	BtnSchedule    = "📅 Расписание"
	BtnNextLesson  = "⏱ Ближайшая пара"
	BtnTomorrow    = "🌅 Завтра"
	BtnWeek        = "🗓 Неделя"
	BtnHelp        = "❓ Помощь"
	BtnChangeGroup = "🔧 Сменить группу"
	BtnToday       = "📅 Сегодня"
	BtnBack        = "⬅️ Назад"
)

const (
	BotName = "ЛЭТИ Бот"

	// После MaxMessageLen символов текст режется на несколько сообщений.
	MaxMessageLen = 4000

	failedToLoadText  = "❌ Не удалось загрузить расписание. Попробуйте позже."
	failedGroupsText  = "❌ Не удалось загрузить список групп. Попробуйте позже."
	internalErrorText = "❌ Произошла ошибка при обработке запроса.\nПожалуйста, попробуйте еще раз."
	askGroupText      = "🔢 <b>Введите номер вашей группы:</b>\nНапример: <code>4353</code>, <code>2702</code>, <code>5495</code>"
	chooseActionText  = "Выберите действие в меню ниже:"
	weekLoadedText    = "📊 <b>Расписание на неделю загружено!</b>"
)

// awaitingGroup помнит пользователей, от которых ждём номер группы.
type awaitingGroup struct {
	mu    sync.Mutex
	chats map[int64]bool
}

func newAwaitingGroup() *awaitingGroup {
	return &awaitingGroup{chats: make(map[int64]bool)}
}

func (a *awaitingGroup) Set(userID int64, waiting bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if waiting {
		a.chats[userID] = true
		return
	}
	delete(a.chats, userID)
}

func (a *awaitingGroup) Get(userID int64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.chats[userID]
}
