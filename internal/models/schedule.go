package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elliotchance/orderedmap/v2"
)

// Индексы дней недели: 0 (понедельник) .. 6 (воскресенье).
const DaysInWeek = 7

// DaySchedule хранит занятия по дням недели в порядке добавления.
// Нулевое значение готово к использованию.
type DaySchedule struct {
	days *orderedmap.OrderedMap[int, []Lesson]
}

func NewDaySchedule() DaySchedule {
	return DaySchedule{days: orderedmap.NewOrderedMap[int, []Lesson]()}
}

// Set записывает занятия для дня недели. Индексы вне 0..6 игнорируются.
func (d *DaySchedule) Set(weekday int, lessons []Lesson) {
	if weekday < 0 || weekday >= DaysInWeek {
		return
	}
	if d.days == nil {
		d.days = orderedmap.NewOrderedMap[int, []Lesson]()
	}
	d.days.Set(weekday, lessons)
}

// Lessons возвращает занятия дня; ok=false, если такого дня в расписании нет.
func (d DaySchedule) Lessons(weekday int) ([]Lesson, bool) {
	if d.days == nil {
		return nil, false
	}
	return d.days.Get(weekday)
}

func (d DaySchedule) Len() int {
	if d.days == nil {
		return 0
	}
	return d.days.Len()
}

// Weekdays возвращает индексы дней в порядке добавления.
func (d DaySchedule) Weekdays() []int {
	if d.days == nil {
		return nil
	}
	return d.days.Keys()
}

// UnmarshalJSON разбирает объект days потокенно, чтобы сохранить порядок ключей.
// Ключи, не являющиеся индексом дня 0..6, пропускаются. Массив тоже принимается:
// индекс элемента считается днём недели.
func (d *DaySchedule) UnmarshalJSON(data []byte) error {
	*d = NewDaySchedule()

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return fmt.Errorf("days: unexpected token %v", tok)
	}

	switch delim {
	case '{':
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return err
			}
			key, _ := keyTok.(string)
			var day dayPayload
			if err := dec.Decode(&day); err != nil {
				return fmt.Errorf("days[%s]: %w", key, err)
			}
			idx, err := strconv.Atoi(key)
			if err != nil {
				continue
			}
			d.Set(idx, day.Lessons)
		}
	case '[':
		for idx := 0; dec.More(); idx++ {
			var day dayPayload
			if err := dec.Decode(&day); err != nil {
				return fmt.Errorf("days[%d]: %w", idx, err)
			}
			d.Set(idx, day.Lessons)
		}
	default:
		return fmt.Errorf("days: unexpected delimiter %v", delim)
	}

	_, err = dec.Token()
	return err
}

type dayPayload struct {
	Lessons []Lesson `json:"lessons"`
}

// GroupSchedule: недельное расписание одной группы.
type GroupSchedule struct {
	Days DaySchedule `json:"days"`
}

// WeeklySnapshot — ответ GET /schedule: расписание всех групп за неделю, ключ — номер группы.
type WeeklySnapshot map[string]GroupSchedule
