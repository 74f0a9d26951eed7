package database

import (
	"database/sql"
	"fmt"

	"github.com/stafftrack/skills-backend/internal/models"
)

// SkillRepository handles database operations for the skill table
type SkillRepository struct {
	q Querier
}

// NewSkillRepository creates a new SkillRepository. Pass a Tx to bind the
// repository to a transaction.
func NewSkillRepository(q Querier) *SkillRepository {
	return &SkillRepository{q: q}
}

// GetByName retrieves a skill by name. Returns nil without an error when no
// skill matches.
func (r *SkillRepository) GetByName(name string) (*models.Skill, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM skill
		WHERE name = $1
	`

	skill := &models.Skill{}
	err := r.q.QueryRow(query, name).Scan(
		&skill.ID, &skill.Name, &skill.CreatedAt, &skill.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch skill: %w", err)
	}

	return skill, nil
}

// GetAll retrieves all skills
func (r *SkillRepository) GetAll() ([]*models.Skill, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM skill
	`

	rows, err := r.q.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch skills: %w", err)
	}
	defer rows.Close()

	skills := []*models.Skill{}
	for rows.Next() {
		skill := &models.Skill{}
		if err := rows.Scan(&skill.ID, &skill.Name, &skill.CreatedAt, &skill.UpdatedAt); err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}

	return skills, rows.Err()
}

// Create inserts a new skill and assigns its surrogate id
func (r *SkillRepository) Create(skill *models.Skill) error {
	query := `
		INSERT INTO skill (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(query, skill.Name).Scan(
		&skill.ID, &skill.CreatedAt, &skill.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create skill: %w", err)
	}

	return nil
}

// Update updates an existing skill
func (r *SkillRepository) Update(skill *models.Skill) error {
	query := `
		UPDATE skill
		SET name = $2,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.q.QueryRow(query, skill.ID, skill.Name).Scan(&skill.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("skill not found")
		}
		return fmt.Errorf("failed to update skill: %w", err)
	}

	return nil
}

// Delete removes a skill and all associations referencing it. People who
// held the skill are left intact.
func (r *SkillRepository) Delete(skill *models.Skill) error {
	if _, err := r.q.Exec(`DELETE FROM person_skill WHERE skill_id = $1`, skill.ID); err != nil {
		return fmt.Errorf("failed to delete skill associations: %w", err)
	}

	if _, err := r.q.Exec(`DELETE FROM skill WHERE id = $1`, skill.ID); err != nil {
		return fmt.Errorf("failed to delete skill: %w", err)
	}

	return nil
}
