package schedule

import (
	"fmt"
	"strings"
	"time"

	"letibot/internal/models"
)

// FormatReport печатает подробное расписание группы на неделю с итоговой статистикой.
// В отличие от FormatDay это простой текст без HTML: отчёт идёт в консоль или в файл.
func FormatReport(entry models.GroupDirectoryEntry, gs models.GroupSchedule, monday time.Time) string {
	var sb strings.Builder

	stars := strings.Repeat("⭐", 30)
	sb.WriteString(stars + "\n")
	sb.WriteString(fmt.Sprintf("📅 РАСПИСАНИЕ ГРУППЫ %s\n", entry.Number))
	sb.WriteString(stars + "\n")
	sb.WriteString(fmt.Sprintf("👥 Факультет: %s\n", entry.Faculty))
	sb.WriteString(fmt.Sprintf("🏛 Кафедра: %s\n", entry.Department))
	sb.WriteString(fmt.Sprintf("🎓 Курс: %d | Форма: %s\n", entry.Course, entry.StudyingType))
	sb.WriteString(strings.Repeat("─", 60) + "\n")

	if gs.Days.Len() == 0 {
		sb.WriteString("📭 Нет запланированных занятий на этот период\n")
		return sb.String()
	}

	totalLessons, daysWithLessons := 0, 0
	for weekday := 0; weekday < models.DaysInWeek; weekday++ {
		lessons, _ := gs.Days.Lessons(weekday)
		lessons = Dedupe(lessons)
		if len(lessons) == 0 {
			continue
		}
		daysWithLessons++
		totalLessons += len(lessons)

		date := monday.AddDate(0, 0, weekday)
		sb.WriteString("\n" + strings.Repeat("═", 60) + "\n")
		sb.WriteString(fmt.Sprintf("📅 %s, %s (День %d)\n", DayName(weekday), date.Format("02.01.2006"), weekday+1))
		sb.WriteString(strings.Repeat("─", 60) + "\n")

		for i, l := range SortByStart(lessons) {
			writeReportLesson(&sb, i+1, l)
		}
	}

	sb.WriteString("\n" + strings.Repeat("═", 60) + "\n")
	sb.WriteString("📊 ИТОГО:\n")
	sb.WriteString(fmt.Sprintf("   📅 Дней с занятиями: %d\n", daysWithLessons))
	sb.WriteString(fmt.Sprintf("   📚 Всего уникальных пар: %d\n", totalLessons))
	if daysWithLessons > 0 {
		sb.WriteString(fmt.Sprintf("   📈 Среднее пар в день: %.1f\n", float64(totalLessons)/float64(daysWithLessons)))
	}
	return sb.String()
}

func writeReportLesson(sb *strings.Builder, n int, l models.Lesson) {
	start := l.StartTime
	if l.EndTime != "" && start != "" {
		start += "–" + l.EndTime
	}
	if start == "" {
		start = noTime
	}
	subject := l.Name
	if subject == "" {
		subject = unknownSubject
	}

	sb.WriteString(fmt.Sprintf("\n#%d 🕐 %s\n", n, start))
	sb.WriteString("   📚 " + subject + "\n")
	if l.SubjectType != "" {
		sb.WriteString("   📝 " + LessonTypeLabel(l.SubjectType) + "\n")
	}
	if w := l.Week.String(); w != "" && w != "0" {
		sb.WriteString("   📆 Неделя: " + w + "\n")
	}
	if l.Teacher != "" {
		sb.WriteString("   👨‍🏫 " + l.Teacher + "\n")
	}
	if l.SecondTeacher != "" {
		sb.WriteString("   👨‍🏫 " + l.SecondTeacher + " (второй преподаватель)\n")
	}
	if sg := l.Subgroup.String(); sg != "" {
		sb.WriteString("   👥 Подгруппа: " + sg + "\n")
	}
	if l.Room != "" {
		sb.WriteString("   🏫 Аудитория: " + l.Room + "\n")
	} else {
		sb.WriteString("   🏫 " + noRoom + "\n")
	}
	if l.Form != "" {
		sb.WriteString("   💻 Формат: " + LessonFormLabel(l.Form) + "\n")
	}
}
