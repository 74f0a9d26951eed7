package database

import (
	"database/sql"
	"fmt"

	"github.com/stafftrack/skills-backend/internal/models"
)

// PersonRepository handles database operations for the person table and the
// person_skill associations owned by a person
type PersonRepository struct {
	q Querier
}

// NewPersonRepository creates a new PersonRepository. Pass a Tx to bind the
// repository to a transaction.
func NewPersonRepository(q Querier) *PersonRepository {
	return &PersonRepository{q: q}
}

// GetByStaffNumber retrieves a person by staff number. Returns nil without
// an error when no person matches.
func (r *PersonRepository) GetByStaffNumber(staffNumber string) (*models.Person, error) {
	query := `
		SELECT id, name, staff_number, created_at, updated_at
		FROM person
		WHERE staff_number = $1
	`

	person := &models.Person{}
	err := r.q.QueryRow(query, staffNumber).Scan(
		&person.ID, &person.Name, &person.StaffNumber,
		&person.CreatedAt, &person.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch person: %w", err)
	}

	return person, nil
}

// GetAll retrieves all people
func (r *PersonRepository) GetAll() ([]*models.Person, error) {
	query := `
		SELECT id, name, staff_number, created_at, updated_at
		FROM person
	`

	rows, err := r.q.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch people: %w", err)
	}
	defer rows.Close()

	people := []*models.Person{}
	for rows.Next() {
		person := &models.Person{}
		err := rows.Scan(
			&person.ID, &person.Name, &person.StaffNumber,
			&person.CreatedAt, &person.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		people = append(people, person)
	}

	return people, rows.Err()
}

// Create inserts a new person and assigns its surrogate id
func (r *PersonRepository) Create(person *models.Person) error {
	query := `
		INSERT INTO person (name, staff_number)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(query, person.Name, person.StaffNumber).Scan(
		&person.ID, &person.CreatedAt, &person.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create person: %w", err)
	}

	return nil
}

// Update updates an existing person's name and staff number
func (r *PersonRepository) Update(person *models.Person) error {
	query := `
		UPDATE person
		SET name = $2,
		    staff_number = $3,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.q.QueryRow(query, person.ID, person.Name, person.StaffNumber).
		Scan(&person.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("person not found")
		}
		return fmt.Errorf("failed to update person: %w", err)
	}

	return nil
}

// Delete removes a person and all of its skill associations. Skills the
// person held are left intact.
func (r *PersonRepository) Delete(person *models.Person) error {
	if _, err := r.q.Exec(`DELETE FROM person_skill WHERE person_id = $1`, person.ID); err != nil {
		return fmt.Errorf("failed to delete person skills: %w", err)
	}

	if _, err := r.q.Exec(`DELETE FROM person WHERE id = $1`, person.ID); err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}

	return nil
}

// ListSkills retrieves a person's skill associations with the skill names
func (r *PersonRepository) ListSkills(personID int64) ([]models.PersonSkillDetail, error) {
	query := `
		SELECT s.name, ps.level
		FROM person_skill ps
		JOIN skill s ON s.id = ps.skill_id
		WHERE ps.person_id = $1
	`

	rows, err := r.q.Query(query, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch person skills: %w", err)
	}
	defer rows.Close()

	details := []models.PersonSkillDetail{}
	for rows.Next() {
		var detail models.PersonSkillDetail
		if err := rows.Scan(&detail.SkillName, &detail.Level); err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	return details, rows.Err()
}

// ReplaceSkills replaces a person's entire association set with the given
// one. Associations not in the new set are dropped.
func (r *PersonRepository) ReplaceSkills(personID int64, associations []models.PersonSkill) error {
	if _, err := r.q.Exec(`DELETE FROM person_skill WHERE person_id = $1`, personID); err != nil {
		return fmt.Errorf("failed to clear person skills: %w", err)
	}

	for _, assoc := range associations {
		_, err := r.q.Exec(
			`INSERT INTO person_skill (person_id, skill_id, level) VALUES ($1, $2, $3)`,
			personID, assoc.SkillID, assoc.Level,
		)
		if err != nil {
			return fmt.Errorf("failed to create person skill: %w", err)
		}
	}

	return nil
}
