package models

import (
	"bytes"
	"encoding/json"
)

// Lesson — одно занятие из расписания ЛЭТИ в том виде, как его отдаёт API.
// Значения по умолчанию (неизвестный предмет, аудитория не указана) подставляются
// при форматировании, а не здесь.
type Lesson struct {
	StartTime     string     `json:"start_time"`
	EndTime       string     `json:"end_time"`
	Name          string     `json:"name"`
	SubjectType   string     `json:"subjectType"`
	Teacher       string     `json:"teacher"`
	SecondTeacher string     `json:"second_teacher,omitempty"`
	Room          string     `json:"room,omitempty"`
	Subgroup      FlexString `json:"subgroup,omitempty"`
	Week          FlexString `json:"week,omitempty"`
	Form          string     `json:"form,omitempty"`
}

// FlexString принимает из JSON строку, число или null.
// API отдаёт подгруппу и чётность недели то строкой, то числом.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }
