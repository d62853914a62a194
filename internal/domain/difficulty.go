package domain

import (
	"fmt"
	"strings"
)

// DifficultyLevel is the vocabulary tier used when generating words
type DifficultyLevel string

const (
	Elementary   DifficultyLevel = "ELEMENTARY"
	MiddleSchool DifficultyLevel = "MIDDLE_SCHOOL"
	HighSchool   DifficultyLevel = "HIGH_SCHOOL"
	University   DifficultyLevel = "UNIVERSITY"

	DefaultDifficulty = HighSchool
)

// DifficultyLevels lists all levels from easiest to hardest
func DifficultyLevels() []DifficultyLevel {
	return []DifficultyLevel{Elementary, MiddleSchool, HighSchool, University}
}

// ParseDifficulty converts a stored or user supplied name into a level
func ParseDifficulty(s string) (DifficultyLevel, error) {
	level := DifficultyLevel(strings.ToUpper(strings.TrimSpace(s)))
	if !level.Valid() {
		return "", fmt.Errorf("unknown difficulty level %q", s)
	}
	return level, nil
}

// Valid reports whether the level is one of the known levels
func (d DifficultyLevel) Valid() bool {
	switch d {
	case Elementary, MiddleSchool, HighSchool, University:
		return true
	}
	return false
}

// DisplayName returns the short Chinese name of the level
func (d DifficultyLevel) DisplayName() string {
	switch d {
	case Elementary:
		return "小学"
	case MiddleSchool:
		return "中学"
	case HighSchool:
		return "高中"
	case University:
		return "大学"
	}
	return string(d)
}

// Description returns a one-line explanation of the level
func (d DifficultyLevel) Description() string {
	switch d {
	case Elementary:
		return "基础词汇，适合初学者"
	case MiddleSchool:
		return "常用词汇，日常交流"
	case HighSchool:
		return "进阶词汇，学术基础"
	case University:
		return "高级词汇，专业表达"
	}
	return ""
}
