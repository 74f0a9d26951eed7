package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/stafftrack/skills-backend/internal/database"
	"github.com/stafftrack/skills-backend/internal/models"
)

// PeopleManagementService orchestrates fetch, create, update and delete for
// people and skills, including reconciliation of a person's skill
// associations. Every mutating operation runs inside one transaction; the
// callers (the HTTP boundary) are responsible for existence and conflict
// checks before invoking a mutation.
type PeopleManagementService struct {
	db     database.DB
	people *database.PersonRepository
	skills *database.SkillRepository
	logger *logrus.Logger
}

// NewPeopleManagementService creates a new PeopleManagementService
func NewPeopleManagementService(db database.DB, logger *logrus.Logger) *PeopleManagementService {
	return &PeopleManagementService{
		db:     db,
		people: database.NewPersonRepository(db),
		skills: database.NewSkillRepository(db),
		logger: logger,
	}
}

// FetchPersonByStaffNumber returns a person with their skills, or nil when
// no person matches the staff number
func (s *PeopleManagementService) FetchPersonByStaffNumber(staffNumber string) (*models.PersonDTO, error) {
	person, err := s.people.GetByStaffNumber(staffNumber)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, nil
	}

	dto, err := s.toPersonDTO(s.people, person)
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// FetchPeople returns all people with their skills
func (s *PeopleManagementService) FetchPeople() ([]models.PersonDTO, error) {
	people, err := s.people.GetAll()
	if err != nil {
		return nil, err
	}

	dtos := []models.PersonDTO{}
	for _, person := range people {
		dto, err := s.toPersonDTO(s.people, person)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *dto)
	}
	return dtos, nil
}

// FetchSkillByName returns a skill, or nil when no skill matches the name
func (s *PeopleManagementService) FetchSkillByName(name string) (*models.SkillDTO, error) {
	skill, err := s.skills.GetByName(name)
	if err != nil {
		return nil, err
	}
	if skill == nil {
		return nil, nil
	}
	return &models.SkillDTO{Name: skill.Name}, nil
}

// FetchSkills returns all skills
func (s *PeopleManagementService) FetchSkills() ([]models.SkillDTO, error) {
	skills, err := s.skills.GetAll()
	if err != nil {
		return nil, err
	}

	dtos := []models.SkillDTO{}
	for _, skill := range skills {
		dtos = append(dtos, models.SkillDTO{Name: skill.Name})
	}
	return dtos, nil
}

// CreateOrUpdatePersonWithSkills creates a new person (update=false) or
// updates an existing one looked up by staff number (update=true). When the
// incoming skill list is non-empty, the person's entire association set is
// replaced: each skill is looked up by name and created first if missing,
// and duplicate skill names in the input collapse to the last entry. An
// empty or absent skill list leaves existing associations untouched.
func (s *PeopleManagementService) CreateOrUpdatePersonWithSkills(dto *models.PersonDTO, update bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	people := database.NewPersonRepository(tx)
	skills := database.NewSkillRepository(tx)

	var person *models.Person
	if update {
		person, err = people.GetByStaffNumber(dto.StaffNumber)
		if err != nil {
			return err
		}
		if person == nil {
			return fmt.Errorf("person with staff number %s not found", dto.StaffNumber)
		}
		person.Name = dto.Name
	} else {
		// Persist the skeleton first so the person has a surrogate id
		// before associations are built.
		person = &models.Person{Name: dto.Name, StaffNumber: dto.StaffNumber}
		if err := people.Create(person); err != nil {
			return err
		}
	}

	if len(dto.PersonSkills) > 0 {
		associations, err := s.buildAssociations(skills, person, dto.PersonSkills)
		if err != nil {
			return err
		}
		if err := people.ReplaceSkills(person.ID, associations); err != nil {
			return err
		}
	}

	// Final save regardless of whether skills were present, so name changes
	// stick even when the skill list is empty.
	if err := people.Update(person); err != nil {
		return err
	}

	return tx.Commit()
}

// buildAssociations resolves each requested skill to a persisted row and
// builds the replacement association set, keyed by skill id so the last
// entry for a given skill wins.
func (s *PeopleManagementService) buildAssociations(skills *database.SkillRepository, person *models.Person, requested []models.PersonSkillDTO) ([]models.PersonSkill, error) {
	bySkill := map[int64]models.PersonSkill{}
	order := []int64{}

	for _, entry := range requested {
		skill, err := skills.GetByName(entry.SkillName)
		if err != nil {
			return nil, err
		}
		if skill != nil {
			s.logger.Infof("Skill with name %s already exists, so creating the association with person", skill.Name)
		} else {
			s.logger.Infof("Skill with name %s doesn't exist, so creating it first", entry.SkillName)
			skill = &models.Skill{Name: entry.SkillName}
			if err := skills.Create(skill); err != nil {
				return nil, err
			}
		}

		if _, seen := bySkill[skill.ID]; !seen {
			order = append(order, skill.ID)
		}
		bySkill[skill.ID] = models.PersonSkill{
			PersonID: person.ID,
			SkillID:  skill.ID,
			Level:    entry.SkillLevel,
		}
	}

	associations := make([]models.PersonSkill, 0, len(order))
	for _, skillID := range order {
		associations = append(associations, bySkill[skillID])
	}
	return associations, nil
}

// CreateOrUpdateSkill creates a new skill, or re-persists an existing one
// looked up by the incoming name. Renaming a skill is not supported: the
// lookup key and the new value are the same field.
func (s *PeopleManagementService) CreateOrUpdateSkill(dto *models.SkillDTO, update bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	skills := database.NewSkillRepository(tx)

	if update {
		skill, err := skills.GetByName(dto.Name)
		if err != nil {
			return err
		}
		if skill == nil {
			return fmt.Errorf("skill with name %s not found", dto.Name)
		}
		if err := skills.Update(skill); err != nil {
			return err
		}
	} else {
		skill := &models.Skill{Name: dto.Name}
		if err := skills.Create(skill); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeletePerson removes the person matching the DTO's staff number along
// with all of their skill associations
func (s *PeopleManagementService) DeletePerson(dto *models.PersonDTO) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	people := database.NewPersonRepository(tx)

	person, err := people.GetByStaffNumber(dto.StaffNumber)
	if err != nil {
		return err
	}
	if person == nil {
		return fmt.Errorf("person with staff number %s not found", dto.StaffNumber)
	}

	if err := people.Delete(person); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteSkill removes the skill matching the DTO's name along with every
// association referencing it
func (s *PeopleManagementService) DeleteSkill(dto *models.SkillDTO) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	skills := database.NewSkillRepository(tx)

	skill, err := skills.GetByName(dto.Name)
	if err != nil {
		return err
	}
	if skill == nil {
		return fmt.Errorf("skill with name %s not found", dto.Name)
	}

	if err := skills.Delete(skill); err != nil {
		return err
	}

	return tx.Commit()
}

// toPersonDTO maps a person and their stored associations to the transfer
// shape
func (s *PeopleManagementService) toPersonDTO(people *database.PersonRepository, person *models.Person) (*models.PersonDTO, error) {
	details, err := people.ListSkills(person.ID)
	if err != nil {
		return nil, err
	}

	personSkills := make([]models.PersonSkillDTO, 0, len(details))
	for _, detail := range details {
		personSkills = append(personSkills, models.PersonSkillDTO{
			SkillName:  detail.SkillName,
			SkillLevel: detail.Level,
		})
	}

	return &models.PersonDTO{
		Name:         person.Name,
		StaffNumber:  person.StaffNumber,
		PersonSkills: personSkills,
	}, nil
}
