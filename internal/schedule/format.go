package schedule

import (
	"fmt"
	"html"
	"strings"
	"time"

	"letibot/internal/models"
)

const (
	unknownSubject = "Неизвестный предмет"
	noTime         = "Время не указано"
	noRoom         = "Аудитория не указана"
	lessonTimeForm = "15:04"
)

var rule = strings.Repeat("─", 30)

// FormatDay форматирует расписание на один день (HTML для Telegram).
// Пары сортируются по времени начала, нумерация с единицы.
func FormatDay(lessons []models.Lesson, dayName string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 <b>%s</b>\n", html.EscapeString(dayName)))
	sb.WriteString(rule + "\n\n")

	for i, l := range SortByStart(lessons) {
		sb.WriteString(fmt.Sprintf("<b>#%d 🕐 %s</b>\n", i+1, timeRange(l)))
		writeLessonFields(&sb, l, "   ")
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatSingleLesson форматирует ближайшую пару. Строка обратного отсчёта
// добавляется, только если начало пары ещё впереди относительно now.
func FormatSingleLesson(l models.Lesson, now time.Time) string {
	var sb strings.Builder
	sb.WriteString("⏱ <b>Ближайшая пара:</b>\n")
	sb.WriteString(rule + "\n\n")
	sb.WriteString(fmt.Sprintf("🕐 <b>%s</b>\n", timeRange(l)))
	writeLessonFields(&sb, l, "")

	if startAt, ok := lessonStart(l, now); ok && startAt.After(now) {
		sb.WriteString("\n⏳ До пары: " + formatCountdown(startAt.Sub(now)))
	}
	return sb.String()
}

func writeLessonFields(sb *strings.Builder, l models.Lesson, indent string) {
	subject := l.Name
	if subject == "" {
		subject = unknownSubject
	}
	sb.WriteString(indent + "📚 " + html.EscapeString(subject) + "\n")

	if l.SubjectType != "" {
		sb.WriteString(indent + "📝 " + html.EscapeString(LessonTypeLabel(l.SubjectType)) + "\n")
	}
	if w := l.Week.String(); w != "" && w != "0" {
		sb.WriteString(indent + "📆 Неделя: " + html.EscapeString(w) + "\n")
	}
	if l.Teacher != "" {
		sb.WriteString(indent + "👨‍🏫 " + html.EscapeString(l.Teacher) + "\n")
	}
	if l.Room != "" {
		sb.WriteString(indent + "🏫 " + html.EscapeString(l.Room) + "\n")
	} else {
		sb.WriteString(indent + "🏫 " + noRoom + "\n")
	}
	if l.Form != "" {
		sb.WriteString(indent + "💻 Формат: " + html.EscapeString(LessonFormLabel(l.Form)) + "\n")
	}
}

func timeRange(l models.Lesson) string {
	switch {
	case l.StartTime != "" && l.EndTime != "":
		return html.EscapeString(l.StartTime + "–" + l.EndTime)
	case l.StartTime != "":
		return html.EscapeString(l.StartTime)
	default:
		return noTime
	}
}

// lessonStart переносит время начала HH:MM на дату day.
func lessonStart(l models.Lesson, day time.Time) (time.Time, bool) {
	if l.StartTime == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(lessonTimeForm, strings.TrimSpace(l.StartTime))
	if err != nil {
		return time.Time{}, false
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, day.Location()), true
}

func formatCountdown(d time.Duration) string {
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	if hours > 0 {
		return fmt.Sprintf("%d ч %d мин", hours, minutes)
	}
	return fmt.Sprintf("%d мин", minutes)
}
