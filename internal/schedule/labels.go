package schedule

import (
	"strings"
	"time"
)

var dayNames = [7]string{"Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота", "Воскресенье"}

// DayName возвращает название дня по индексу 0 (понедельник) .. 6.
func DayName(weekday int) string {
	if weekday < 0 || weekday >= len(dayNames) {
		return ""
	}
	return dayNames[weekday]
}

// WeekdayIndex переводит time.Weekday (воскресенье = 0) в индекс API (понедельник = 0).
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

var lessonTypes = map[string]string{
	"Лек":  "Лекция",
	"Пр":   "Практика",
	"Лаб":  "Лабораторная",
	"Сем":  "Семинар",
	"Конс": "Консультация",
	"Зач":  "Зачет",
	"Экз":  "Экзамен",
}

var lessonForms = map[string]string{
	"online":   "Онлайн",
	"offline":  "Очно",
	"hybrid":   "Смешанный формат",
	"standard": "Стандартно",
	"distant":  "Дистанционно",
}

// LessonTypeLabel возвращает название типа занятия; неизвестный код выводится как есть.
func LessonTypeLabel(code string) string {
	if label, ok := lessonTypes[code]; ok {
		return label
	}
	return code
}

// LessonFormLabel возвращает формат проведения; неизвестное значение выводится как есть.
func LessonFormLabel(form string) string {
	if label, ok := lessonForms[form]; ok {
		return label
	}
	return form
}

func noLessonsText(weekday int) string {
	return "На " + strings.ToLower(DayName(weekday)) + " пар нет 🎉"
}

func noMoreLessonsText(weekday int) string {
	return "На " + strings.ToLower(DayName(weekday)) + " больше пар нет 🎉"
}

const noLessonsThisWeekText = "На эту неделю пар нет 🎉"
