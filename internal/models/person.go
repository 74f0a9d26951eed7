package models

import (
	"time"
)

// Person represents a staff member
type Person struct {
	ID          int64     `json:"-" db:"id"`
	Name        string    `json:"name" db:"name"`
	StaffNumber string    `json:"staff_number" db:"staff_number"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// PersonSkill represents the association between a person and a skill.
// At most one association exists per (person, skill) pair.
type PersonSkill struct {
	PersonID int64      `json:"-" db:"person_id"`
	SkillID  int64      `json:"-" db:"skill_id"`
	Level    SkillLevel `json:"level" db:"level"`
}

// PersonSkillDetail is a person's skill association joined with the skill name
type PersonSkillDetail struct {
	SkillName string     `db:"skill_name"`
	Level     SkillLevel `db:"level"`
}
