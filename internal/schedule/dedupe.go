package schedule

import (
	"sort"

	"letibot/internal/models"
)

// API дублирует одну и ту же пару для каждой подгруппы и второго преподавателя.
// Ключ сравнения игнорирует эти поля; пары с полностью пустыми полями ключа
// тоже схлопнутся в одну, это известное приближение.
type lessonKey struct {
	start, end, name, teacher, room string
}

func keyOf(l models.Lesson) lessonKey {
	return lessonKey{start: l.StartTime, end: l.EndTime, name: l.Name, teacher: l.Teacher, room: l.Room}
}

// Dedupe удаляет дублирующиеся пары, оставляя первое вхождение и сохраняя порядок.
func Dedupe(lessons []models.Lesson) []models.Lesson {
	if len(lessons) == 0 {
		return []models.Lesson{}
	}
	seen := make(map[lessonKey]struct{}, len(lessons))
	unique := make([]models.Lesson, 0, len(lessons))
	for _, l := range lessons {
		k := keyOf(l)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, l)
	}
	return unique
}

// Пары без времени начала уходят в конец.
const missingStartSentinel = "99:99"

func sortKey(l models.Lesson) string {
	if l.StartTime == "" {
		return missingStartSentinel
	}
	return l.StartTime
}

// SortByStart возвращает копию, устойчиво отсортированную по времени начала.
func SortByStart(lessons []models.Lesson) []models.Lesson {
	sorted := make([]models.Lesson, len(lessons))
	copy(sorted, lessons)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sortKey(sorted[i]) < sortKey(sorted[j])
	})
	return sorted
}
