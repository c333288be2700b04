package models

import "strings"

// Directory — дерево факультет → кафедра → группа из GET /groups.
type Directory []Faculty

type Faculty struct {
	Title       string       `json:"title"`
	Departments []Department `json:"departments"`
}

type Department struct {
	Title  string  `json:"title"`
	Groups []Group `json:"groups"`
}

type Group struct {
	ID             int64  `json:"id"`
	Number         string `json:"number"`
	Course         int    `json:"course"`
	StudyingType   string `json:"studyingType"`
	EducationLevel string `json:"educationLevel"`
}

// GroupDirectoryEntry — полная информация о группе вместе с факультетом и кафедрой.
type GroupDirectoryEntry struct {
	ID             int64
	Number         string
	Course         int
	StudyingType   string
	EducationLevel string
	Faculty        string
	Department     string
}

// Find ищет группу по точному совпадению номера. Номера считаются уникальными,
// поэтому возвращается первое совпадение.
func (d Directory) Find(number string) (GroupDirectoryEntry, bool) {
	number = strings.TrimSpace(number)
	if number == "" {
		return GroupDirectoryEntry{}, false
	}
	for _, faculty := range d {
		for _, department := range faculty.Departments {
			for _, g := range department.Groups {
				if g.Number != number {
					continue
				}
				return GroupDirectoryEntry{
					ID:             g.ID,
					Number:         g.Number,
					Course:         g.Course,
					StudyingType:   g.StudyingType,
					EducationLevel: g.EducationLevel,
					Faculty:        faculty.Title,
					Department:     department.Title,
				}, true
			}
		}
	}
	return GroupDirectoryEntry{}, false
}

// GroupCount возвращает общее число групп в справочнике.
func (d Directory) GroupCount() int {
	n := 0
	for _, faculty := range d {
		for _, department := range faculty.Departments {
			n += len(department.Groups)
		}
	}
	return n
}
