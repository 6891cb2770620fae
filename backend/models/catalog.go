package models

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// Categories without an explicit display order sort after every ordered one.
const UnorderedDisplayOrder = 999

const Uncategorized = "Uncategorized"

type Category struct {
	gorm.Model
	Name         string     `gorm:"not null" json:"category_name"`
	Description  *string    `json:"description"`
	DisplayOrder *int       `json:"display_order"`
	Tutorials    []Tutorial `json:"tutorials,omitempty"`
}

func (c Category) Order() int {
	if c.DisplayOrder == nil {
		return UnorderedDisplayOrder
	}
	return *c.DisplayOrder
}

type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// ParseDifficulty normalises user input like "beginner" or " ADVANCED ".
// The second return value is false for anything outside the three levels.
func ParseDifficulty(raw string) (Difficulty, bool) {
	d := Difficulty(cases.Title(language.English).String(strings.TrimSpace(raw)))
	switch d {
	case Beginner, Intermediate, Advanced:
		return d, true
	}
	return "", false
}

type Tutorial struct {
	gorm.Model
	CategoryID        uint       `gorm:"index" json:"category_id"`
	Category          *Category  `json:"category,omitempty"`
	Title             string     `gorm:"not null" json:"title"`
	Description       string     `json:"description"`
	Difficulty        Difficulty `gorm:"type:varchar(16);default:Beginner" json:"difficulty_level"`
	EstimatedDuration *int       `json:"estimated_duration"` // minutes
	VideoURL          *string    `json:"video_url"`
}

func (t Tutorial) DurationMinutes() int {
	if t.EstimatedDuration == nil {
		return 0
	}
	return *t.EstimatedDuration
}

func (t Tutorial) DurationLabel() string {
	if t.EstimatedDuration == nil {
		return "N/A"
	}
	return strconv.Itoa(*t.EstimatedDuration) + " min"
}

func (t Tutorial) CategoryName() string {
	if t.Category == nil || t.Category.Name == "" {
		return Uncategorized
	}
	return t.Category.Name
}
