package models

// PersonSkillDTO is the transfer shape for one skill of a person
type PersonSkillDTO struct {
	SkillName  string     `json:"skillName"`
	SkillLevel SkillLevel `json:"skillLevel"`
}

// PersonDTO is the transfer shape for a person with their skills.
// The surrogate id is never exposed; staffNumber is the external key.
type PersonDTO struct {
	Name         string           `json:"name" binding:"required"`
	StaffNumber  string           `json:"staffNumber" binding:"required"`
	PersonSkills []PersonSkillDTO `json:"personSkills,omitempty"`
}

// SkillDTO is the transfer shape for a skill
type SkillDTO struct {
	Name string `json:"name" binding:"required"`
}
