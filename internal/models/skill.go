package models

import (
	"time"
)

// SkillLevel represents the proficiency level of a person in a skill
type SkillLevel string

const (
	SkillLevelNovice       SkillLevel = "NOVICE"
	SkillLevelPractitioner SkillLevel = "PRACTITIONER"
	SkillLevelExpert       SkillLevel = "EXPERT"
)

// Valid reports whether the level is one of the known proficiency tiers
func (l SkillLevel) Valid() bool {
	switch l {
	case SkillLevelNovice, SkillLevelPractitioner, SkillLevelExpert:
		return true
	}
	return false
}

// Skill represents a named competency
type Skill struct {
	ID        int64     `json:"-" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
